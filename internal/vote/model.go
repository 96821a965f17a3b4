package vote

import (
	"time"
)

// Choice 定义了投票选项的枚举类型
type Choice string

const (
	// ChoiceKeep 表示投票者希望保留这张照片
	ChoiceKeep Choice = "keep"
	// ChoiceCut 表示投票者希望淘汰这张照片
	ChoiceCut Choice = "cut"
)

// Valid 判断选项是否合法
func (c Choice) Valid() bool {
	return c == ChoiceKeep || c == ChoiceCut
}

// Delta 返回用于广播事件的增量描述
func (c Choice) Delta() string {
	if c == ChoiceKeep {
		return "+1 keep"
	}
	return "+1 cut"
}

// Vote 定义了单次投票记录的数据结构。
// (item_id, voter_key) 上的唯一索引保证同一投票者对同一条目至多
// 保留一条记录，后到的投票覆盖先到的（upsert语义）。
type Vote struct {
	ID uint `gorm:"primarykey" json:"id"`

	// BatchID 是所属批次的ID
	BatchID string `gorm:"index;not null;type:varchar(36)" json:"batch_id"`

	// ItemID 是被投票条目的ID
	ItemID string `gorm:"uniqueIndex:idx_votes_item_voter;not null;type:varchar(36)" json:"item_id"`

	// VoterKey 是投票者的不透明标识，来自客户端Cookie
	VoterKey string `gorm:"uniqueIndex:idx_votes_item_voter;not null;type:varchar(64)" json:"voter_key"`

	// Choice 记录本次投票的选择
	Choice Choice `gorm:"not null;type:varchar(8)" json:"choice"`

	CreatedAt time.Time `json:"created_at"`
}
