package api

import (
	"github.com/gin-gonic/gin"
	"github.com/keepcut/keepcut-backend/internal/batch"
	"github.com/keepcut/keepcut-backend/internal/broadcast"
	"github.com/keepcut/keepcut-backend/internal/item"
	"github.com/keepcut/keepcut-backend/internal/report"
	"github.com/keepcut/keepcut-backend/internal/vote"
	"github.com/keepcut/keepcut-backend/internal/voter"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 批次相关的路由组
		batches := api.Group("/batches")
		{
			batches.POST("", batch.HandleCreateBatch)
			batches.POST("/:id/items", item.HandleAddItems)
			batches.GET("/:id/results", report.HandleGetResults)
			batches.GET("/:id/events", broadcast.HandleStreamBatchEvents)
		}

		// 投票页数据：确保访问者持有投票者Cookie，条目按个人顺序洗牌
		api.GET("/view/:token", voter.EnsureVoterCookieMiddleware(), item.HandleGetVotingView)

		// 投票提交
		api.POST("/vote", voter.LoadVoterMiddleware(), vote.HandleSubmitVote)
	}
}
