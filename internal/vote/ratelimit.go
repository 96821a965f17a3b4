package vote

import (
	"context"
	"fmt"
	"time"

	"github.com/keepcut/keepcut-backend/internal/platform/database"
)

// 分布式限流层：两个相互独立的固定窗口计数器，都由Redis的原子INCR承载。
// INCR在并发调用下的原子性是这里的正确性前提——非原子的读改写会让两个
// 几乎同时到达的请求都观察到未超限的计数并双双放行。
//
// 该层的失败策略是放行（fail-open）：投票可用性比严格限流更重要，
// Redis不可达时由进程内的兜底限流器独自扛住突发流量。
const (
	// ipBurstKeyPrefix 是单IP突发窗口计数器的键名前缀
	ipBurstKeyPrefix = "vote:"
	// dailyKeyPrefix 是单投票者日配额计数器的键名前缀
	dailyKeyPrefix = "daily:"

	// rateLimitTimeout 是限流检查允许的最长Redis往返时间，
	// 超时按放行处理
	rateLimitTimeout = 2 * time.Second
)

var (
	ipBurstLimit  = 5
	ipBurstWindow = time.Second

	// dailyLimit 目前是一个与批次条目数无关的固定配额。
	// 按需求它或许应该随批次大小缩放（例如条目数的两倍），
	// 在需求确认之前保持为可配置常量，不擅自修改。
	dailyLimit  = 100
	dailyWindow = 24 * time.Hour
)

// ConfigureRateLimit 注入分布式限流层的配置项
func ConfigureRateLimit(burstLimit, burstWindowSeconds, daily, dailyWindowSeconds int) {
	if burstLimit > 0 {
		ipBurstLimit = burstLimit
	}
	if burstWindowSeconds > 0 {
		ipBurstWindow = time.Duration(burstWindowSeconds) * time.Second
	}
	if daily > 0 {
		dailyLimit = daily
	}
	if dailyWindowSeconds > 0 {
		dailyWindow = time.Duration(dailyWindowSeconds) * time.Second
	}
}

// windowCounter 是分布式限流层的计数后端抽象。
// Incr 原子地递增key对应的计数并返回递增后的值；窗口内的首次命中
// 同时启动窗口，窗口结束后计数作废。
type windowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// redisCounter 用Redis的原子INCR实现计数，首次命中时设置键的过期时间。
type redisCounter struct{}

func (redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := database.RDB.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := database.RDB.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// counter 是分布式层使用的计数后端，生产环境下始终是Redis
var counter windowCounter = redisCounter{}

// incrWithWindow 记入一次命中，返回递增后的计数是否仍在限额内。
func incrWithWindow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := counter.Incr(ctx, key, window)
	if err != nil {
		return false, err
	}
	return count <= int64(limit), nil
}

// CheckVoteRateLimit 执行分布式限流检查，返回本次投票是否放行。
// 两个计数器相互独立、先后检查：
//  1. 单IP突发窗口（默认1秒内5次）；
//  2. 单投票者在单批次内的日配额（默认24小时内100次）。
//
// Redis不健康、出错或超时都按放行处理，只记录日志。
func CheckVoteRateLimit(shareToken, ip, voterKey string) bool {
	if !database.IsRedisHealthy() {
		return true
	}

	ctx, cancel := context.WithTimeout(database.Ctx, rateLimitTimeout)
	defer cancel()

	burstKey := ipBurstKeyPrefix + shareToken + ":" + ip
	allowed, err := incrWithWindow(ctx, burstKey, ipBurstLimit, ipBurstWindow)
	if err != nil {
		fmt.Printf("警告: IP突发限流检查失败，本次放行: %v\n", err)
		return true
	}
	if !allowed {
		return false
	}

	dailyKey := dailyKeyPrefix + shareToken + ":" + voterKey
	allowed, err = incrWithWindow(ctx, dailyKey, dailyLimit, dailyWindow)
	if err != nil {
		fmt.Printf("警告: 日配额限流检查失败，本次放行: %v\n", err)
		return true
	}
	return allowed
}
