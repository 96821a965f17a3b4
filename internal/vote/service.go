package vote

import (
	"fmt"

	"github.com/keepcut/keepcut-backend/internal/platform/database"
	"gorm.io/gorm/clause"
)

// UpsertVote 写入或覆盖一条投票记录。
// 以 (item_id, voter_key) 唯一索引为冲突目标的原子upsert：同一投票者
// 对同一条目的并发投票最终只保留最后一次应用的那条，不会产生竞态重复。
func UpsertVote(batchID, itemID, voterKey string, choice Choice) error {
	newVote := Vote{
		BatchID:  batchID,
		ItemID:   itemID,
		VoterKey: voterKey,
		Choice:   choice,
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "voter_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"choice", "created_at"}),
	}).Create(&newVote).Error
	if err != nil {
		return fmt.Errorf("无法持久化投票记录: %w", err)
	}
	return nil
}

// GetVotesByBatch 返回指定批次的全部投票记录。
// 票数统计永远从这份原始投票即时汇总，不落库。
func GetVotesByBatch(batchID string) ([]Vote, error) {
	var votes []Vote
	err := database.DB.Where("batch_id = ?", batchID).Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("查询投票记录失败: %w", err)
	}
	return votes, nil
}
