package report

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleGetResults 处理结果页数据请求，返回批次和实时排名后的条目
func HandleGetResults(c *gin.Context) {
	batchID := c.Param("id")

	results, err := BuildResults(batchID)
	if errors.Is(err, ErrBatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的批次"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取排名结果失败"})
		return
	}

	c.JSON(http.StatusOK, results)
}
