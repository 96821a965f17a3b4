package item

import (
	"fmt"

	"github.com/keepcut/keepcut-backend/internal/platform/database"
)

// PrimeDB 负责初始化item模块的数据库表结构
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Item{}); err != nil {
		return fmt.Errorf("无法迁移item表: %w", err)
	}
	fmt.Println("Item数据库表迁移成功。")
	return nil
}
