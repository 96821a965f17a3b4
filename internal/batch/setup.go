package batch

import (
	"fmt"

	"github.com/keepcut/keepcut-backend/internal/platform/database"
)

// PrimeDB 负责初始化batch模块的数据库表结构
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Batch{}); err != nil {
		return fmt.Errorf("无法迁移batch表: %w", err)
	}
	fmt.Println("Batch数据库表迁移成功。")
	return nil
}
