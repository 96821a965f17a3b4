package database

import (
	"context"
	"fmt"

	"github.com/keepcut/keepcut-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是一个全局的Redis客户端实例，供项目其他部分使用
var RDB *redis.Client

// Ctx 是一个全局的上下文，用于Redis操作
var Ctx = context.Background()

// InitRedis 初始化与Redis的连接。
// 与关系数据库不同，Redis只承载限流计数和事件广播这类可丢弃的数据，
// 连接失败不会中止启动，只将健康状态标记为不可用，由限流层按放行策略降级。
func InitRedis(cfg config.RedisConfig) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		fmt.Printf("警告: 无法连接到Redis (%v)，限流进入降级模式\n", err)
		UpdateStatus(false)
		return
	}

	UpdateStatus(true)
	fmt.Println("Redis 连接成功！")
}
