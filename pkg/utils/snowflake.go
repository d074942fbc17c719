package utils

import (
	"github.com/bwmarrin/snowflake"
)

var node, _ = snowflake.NewNode(1)

// InitSnowflake 设置当前进程的节点号，多实例部署时各实例必须不同
func InitSnowflake(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// NextID 生成实体主键
func NextID() int64 {
	return node.Generate().Int64()
}
