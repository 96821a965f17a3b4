package item

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/keepcut/keepcut-backend/internal/batch"
	"github.com/keepcut/keepcut-backend/internal/voter"
	"github.com/keepcut/keepcut-backend/pkg/shuffle"
)

// AddItemsRequestBody 定义了批量添加条目请求体的JSON结构
type AddItemsRequestBody struct {
	Items []struct {
		MediaURL string `json:"mediaUrl" binding:"required"`
		ThumbURL string `json:"thumbUrl"`
	} `json:"items" binding:"required"`
}

// HandleAddItems 处理向批次批量添加条目的请求
func HandleAddItems(c *gin.Context) {
	batchID := c.Param("id")

	var body AddItemsRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	b, err := batch.GetBatchByID(batchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的批次"})
		return
	}

	inputs := make([]NewItemInput, 0, len(body.Items))
	for _, it := range body.Items {
		inputs = append(inputs, NewItemInput{MediaURL: it.MediaURL, ThumbURL: it.ThumbURL})
	}

	inserted, err := AddItems(b.ID, inputs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "插入条目失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"inserted": inserted})
}

// VotingViewResponse 是投票页数据的响应结构。
// 条目顺序对每位投票者确定且稳定：洗牌种子为 投票者标识+批次ID。
type VotingViewResponse struct {
	Batch VotingViewBatch `json:"batch"`
	Items []Item          `json:"items"`
}

type VotingViewBatch struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	MaxSelect int        `json:"max_select"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// HandleGetVotingView 处理投票页数据请求：按令牌解析批次，
// 返回批次信息和按投票者个人顺序洗牌后的条目列表。
func HandleGetVotingView(c *gin.Context) {
	shareToken := c.Param("token")

	b, err := batch.GetBatchByToken(shareToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的批次"})
		return
	}
	if b.Expired(time.Now()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "批次已过期"})
		return
	}

	items, err := GetItemsByBatch(b.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询条目失败"})
		return
	}

	// 同一投票者在同一批次内总是看到同一份顺序，不同批次之间互不相同
	voterKey := voter.VoterKeyFromContext(c)
	shuffled := shuffle.WithSeed(items, voterKey+b.ID)

	c.JSON(http.StatusOK, VotingViewResponse{
		Batch: VotingViewBatch{
			ID:        b.ID,
			Title:     b.Title,
			MaxSelect: b.MaxSelect,
			ExpiresAt: b.ExpiresAt,
		},
		Items: shuffled,
	})
}
