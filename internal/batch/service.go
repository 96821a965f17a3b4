package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/keepcut/keepcut-backend/internal/platform/database"
	"github.com/keepcut/keepcut-backend/pkg/token"
	"gorm.io/gorm"
)

// maxTokenAttempts 是令牌碰撞时的重试上限。
// 58^12的空间下碰撞几乎不会发生，重试只是对唯一索引冲突的兜底。
const maxTokenAttempts = 5

var tokenLength = token.DefaultLength

// ConfigureModule 注入batch模块的配置项
func ConfigureModule(length int) {
	if length > 0 {
		tokenLength = length
	}
}

// CreateBatch 创建一个新的批次并持久化。
// 令牌由 pkg/token 生成，遇到唯一索引冲突时重新生成并重试。
func CreateBatch(title string, maxSelect int, expiresAt *time.Time) (*Batch, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成批次ID: %w", err)
	}

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		shareToken, err := token.New(tokenLength)
		if err != nil {
			return nil, fmt.Errorf("无法生成分享令牌: %w", err)
		}

		newBatch := Batch{
			ID:        id.String(),
			Title:     title,
			MaxSelect: maxSelect,
			Token:     shareToken,
			ExpiresAt: expiresAt,
		}
		err = database.DB.Create(&newBatch).Error
		if err == nil {
			return &newBatch, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("无法创建批次: %w", err)
		}
		// 令牌撞上了唯一索引，换一个再试
	}
	return nil, errors.New("分享令牌多次碰撞，放弃创建批次")
}

// GetBatchByID 根据内部ID查询批次，不存在时返回 (nil, nil)。
func GetBatchByID(id string) (*Batch, error) {
	var b Batch
	err := database.DB.Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询批次失败: %w", err)
	}
	return &b, nil
}

// GetBatchByToken 根据分享令牌查询批次，不存在时返回 (nil, nil)。
func GetBatchByToken(shareToken string) (*Batch, error) {
	var b Batch
	err := database.DB.Where("token = ?", shareToken).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询批次失败: %w", err)
	}
	return &b, nil
}
