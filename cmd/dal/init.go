package dal

import (
	"gorm.io/gorm"

	interactiondb "xTube.com/cmd/interaction/dal/db"
	relationdb "xTube.com/cmd/relation/dal/db"
	userdb "xTube.com/cmd/user/dal/db"
	videodb "xTube.com/cmd/video/dal/db"
)

// Init 各业务 dal 共用同一个连接池
func Init(db *gorm.DB) {
	userdb.Init(db)
	videodb.Init(db)
	interactiondb.Init(db)
	relationdb.Init(db)
}
