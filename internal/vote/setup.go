package vote

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/keepcut/keepcut-backend/internal/platform/config"
	"github.com/keepcut/keepcut-backend/internal/platform/database"
	"github.com/keepcut/keepcut-backend/pkg/lifecycle"
)

// memoryLimiter 是全进程唯一的兜底限流器实例，由ConfigureModule构造。
// 它是进程内状态，多实例部署时各实例独立计数。
var memoryLimiter = NewMemoryLimiter(5, time.Second, clockwork.NewRealClock())

// ConfigureModule 注入vote模块的配置项并构造兜底限流器
func ConfigureModule(cfg config.VoteConfig) {
	ConfigureRateLimit(cfg.IPBurstLimit, cfg.IPBurstWindowSeconds, cfg.DailyLimit, cfg.DailyWindowSeconds)

	limit := cfg.MemoryLimit
	if limit <= 0 {
		limit = 5
	}
	window := time.Duration(cfg.MemoryWindowMillis) * time.Millisecond
	if window <= 0 {
		window = time.Second
	}
	memoryLimiter = NewMemoryLimiter(limit, window, clockwork.NewRealClock())
}

// PrimeDB 负责初始化vote模块的数据库表结构
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Vote{}); err != nil {
		return fmt.Errorf("无法迁移vote表: %w", err)
	}
	fmt.Println("Vote数据库表迁移成功。")
	return nil
}

// StartJanitor 启动兜底限流器的后台清扫循环
func StartJanitor(handle *lifecycle.Handle) {
	go memoryLimiter.RunJanitor(handle)
}
