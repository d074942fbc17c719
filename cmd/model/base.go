package model

import (
	"time"

	"gorm.io/gorm"

	"xTube.com/pkg/utils"
)

// Base 所有实体共有的主键与时间戳，主键为雪花 ID
type Base struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == 0 {
		b.ID = utils.NextID()
	}
	return nil
}

// Asset 对象存储中的文件
type Asset struct {
	URL       string `gorm:"size:512" json:"url"`
	StorageID string `gorm:"size:255" json:"storageId"`
}

func (a Asset) Empty() bool {
	return a.StorageID == ""
}
