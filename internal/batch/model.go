package batch

import (
	"time"
)

// Batch 定义了一个批次在数据库中的持久化模型。
// 一个批次是一组接受keep/cut投票的照片，通过分享令牌对外可达。
type Batch struct {
	// ID 是批次的内部主键，UUID字符串
	ID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	// Title 是可选的批次标题
	Title string `json:"title"`

	// MaxSelect 表示结果页最多突出展示多少个头部条目，0表示不限制
	MaxSelect int `json:"max_select"`

	// Token 是对外分享用的公开标识，与内部ID相互独立。
	// 唯一、URL安全，字母表不含易混淆字形，见 pkg/token。
	Token string `gorm:"uniqueIndex;not null;type:varchar(24)" json:"token"`

	// ExpiresAt 是可选的过期时间，过期的批次拒绝新的投票
	ExpiresAt *time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}

// Expired 判断批次在给定时刻是否已过期。未设置过期时间的批次永不过期。
func (b *Batch) Expired(now time.Time) bool {
	return b.ExpiresAt != nil && b.ExpiresAt.Before(now)
}
