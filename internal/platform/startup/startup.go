package startup

import (
	"fmt"

	"github.com/keepcut/keepcut-backend/internal/batch"
	"github.com/keepcut/keepcut-backend/internal/item"
	"github.com/keepcut/keepcut-backend/internal/platform/config"
	"github.com/keepcut/keepcut-backend/internal/vote"
	"github.com/keepcut/keepcut-backend/internal/voter"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 按依赖顺序完成各模块的配置注入和数据库迁移。
func InitializeApplication(cfg *config.Config) error {
	fmt.Println("开始应用初始化...")

	batch.ConfigureModule(cfg.Batch.TokenLength)
	voter.ConfigureModule(cfg.Vote.CookieMaxAgeDays)
	vote.ConfigureModule(cfg.Vote)

	if err := batch.PrimeDB(); err != nil {
		return err
	}
	if err := item.PrimeDB(); err != nil {
		return err
	}
	if err := vote.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
