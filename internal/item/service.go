package item

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/keepcut/keepcut-backend/internal/platform/database"
	"gorm.io/gorm"
)

// NewItemInput 是批量添加条目时单个条目的输入
type NewItemInput struct {
	MediaURL string
	ThumbURL string
}

// AddItems 向指定批次批量添加条目，返回实际插入的数量。
// 批次是否存在由调用方（handler层）预先校验。
func AddItems(batchID string, inputs []NewItemInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	items := make([]Item, 0, len(inputs))
	for _, in := range inputs {
		id, err := uuid.NewV7()
		if err != nil {
			return 0, fmt.Errorf("无法生成条目ID: %w", err)
		}
		items = append(items, Item{
			ID:       id.String(),
			BatchID:  batchID,
			MediaURL: in.MediaURL,
			ThumbURL: in.ThumbURL,
		})
	}

	if err := database.DB.Create(&items).Error; err != nil {
		return 0, fmt.Errorf("无法插入条目: %w", err)
	}
	return len(items), nil
}

// GetItemsByBatch 返回指定批次的全部条目，按创建时间升序。
func GetItemsByBatch(batchID string) ([]Item, error) {
	var items []Item
	err := database.DB.Where("batch_id = ?", batchID).Order("created_at asc").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询条目失败: %w", err)
	}
	return items, nil
}

// GetItemInBatch 查询条目并校验其归属于指定批次，不存在时返回 (nil, nil)。
func GetItemInBatch(itemID, batchID string) (*Item, error) {
	var it Item
	err := database.DB.Where("id = ? AND batch_id = ?", itemID, batchID).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询条目失败: %w", err)
	}
	return &it, nil
}
