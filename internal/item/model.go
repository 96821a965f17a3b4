package item

import (
	"time"
)

// Item 定义了批次中单个条目在数据库中的持久化模型。
// 媒体文件本身托管在外部CDN，这里只保存指向它的URL。
type Item struct {
	// ID 是条目的主键，UUID字符串
	ID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	// BatchID 是所属批次的ID
	BatchID string `gorm:"index;not null;type:varchar(36)" json:"batch_id"`

	// MediaURL 是原图地址
	MediaURL string `json:"media_url"`

	// ThumbURL 是缩略图地址
	ThumbURL string `json:"thumb_url"`

	CreatedAt time.Time `json:"created_at"`
}
