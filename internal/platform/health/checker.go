package health

import (
	"context"
	"fmt"
	"time"

	"github.com/keepcut/keepcut-backend/internal/platform/database"
	"github.com/keepcut/keepcut-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// PerformCheck 执行一次Redis健康检查并更新全局状态。
// Redis在本系统中只承载限流计数和广播，重启丢失数据是可接受的，
// 因此检查只关心连通性，不做缓存重建。
func PerformCheck() {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()

	if err := database.RDB.Ping(ctx).Err(); err != nil {
		database.UpdateStatus(false)
		return
	}
	database.UpdateStatus(true)
}

// StartRedisHealthCheck 启动一个后台Goroutine来定期执行健康检查。
// 它通过生命周期句柄响应优雅停机。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("Redis健康检查器已退出。")
			return
		}
		PerformCheck()
	}
}
