package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/keepcut/keepcut-backend/api"
	"github.com/keepcut/keepcut-backend/internal/platform/config"
	"github.com/keepcut/keepcut-backend/internal/platform/database"
	"github.com/keepcut/keepcut-backend/internal/platform/health"
	"github.com/keepcut/keepcut-backend/internal/platform/shutdown"
	"github.com/keepcut/keepcut-backend/internal/platform/startup"
	"github.com/keepcut/keepcut-backend/internal/vote"
	"github.com/keepcut/keepcut-backend/pkg/lifecycle"
)

func main() {
	// .env 仅用于本地开发，缺失时忽略
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)

	// 执行应用初始化流程（配置注入 + 数据库迁移）
	if err := startup.InitializeApplication(cfg); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 启动前做一次健康检查，之后由后台检查器持续巡检
	health.PerformCheck()

	// 后台服务统一挂在生命周期管理器上
	manager := lifecycle.NewManager()

	healthHandle, err := manager.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	janitorHandle, err := manager.NewServiceHandle("memory-limiter-janitor")
	if err != nil {
		panic(err)
	}
	vote.StartJanitor(janitorHandle)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(manager)
	coordinator.ListenForSignalsAndShutdown(server)
}
