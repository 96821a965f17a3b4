package batch

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CreateBatchRequestBody 定义了创建批次请求体的JSON结构
type CreateBatchRequestBody struct {
	Title     string     `json:"title"`
	MaxSelect int        `json:"maxSelect"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// CreateBatchResponse 定义了创建批次的响应结构
type CreateBatchResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// HandleCreateBatch 处理创建批次的请求
func HandleCreateBatch(c *gin.Context) {
	var body CreateBatchRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	newBatch, err := CreateBatch(body.Title, body.MaxSelect, body.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建批次失败"})
		return
	}

	c.JSON(http.StatusOK, CreateBatchResponse{
		ID:    newBatch.ID,
		Token: newBatch.Token,
	})
}
