package broadcast

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keepcut/keepcut-backend/internal/batch"
	"github.com/keepcut/keepcut-backend/internal/platform/database"
)

// HandleStreamBatchEvents 以Server-Sent Events的形式转发批次频道上的投票事件。
// 结果页订阅该流以获知何时需要重新拉取排名。
func HandleStreamBatchEvents(c *gin.Context) {
	batchID := c.Param("id")

	b, err := batch.GetBatchByID(batchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的批次"})
		return
	}
	if !database.IsRedisHealthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "实时推送暂时不可用"})
		return
	}

	sub := database.RDB.Subscribe(c.Request.Context(), ChannelForBatch(b.ID))
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events := sub.Channel()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("vote", msg.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
