package vote

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/keepcut/keepcut-backend/internal/batch"
	"github.com/keepcut/keepcut-backend/internal/broadcast"
	"github.com/keepcut/keepcut-backend/internal/item"
	"github.com/keepcut/keepcut-backend/internal/voter"
)

// VoteRequestBody 定义了前端提交投票时，请求体的JSON结构
type VoteRequestBody struct {
	Token  string `json:"token" binding:"required"`
	ItemID string `json:"itemId" binding:"required"`
	Choice Choice `json:"choice" binding:"required"`
}

// HandleSubmitVote 处理前端提交的投票。
// 前置条件按固定顺序检查，每一项都是独立的拒绝：
// 字段缺失(400) → 选项非法(400) → 任一层限流超限(429) →
// 令牌无法解析(404) → 批次已过期(403) → 条目不属于该批次(404)。
func HandleSubmitVote(c *gin.Context) {
	var body VoteRequestBody

	// 1. 绑定并验证请求体
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if !body.Choice.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的投票选项"})
		return
	}

	// 2. 确定投票者标识；没有Cookie的首次投票者当场分配一个
	voterKey := voter.VoterKeyFromContext(c)
	isNewVoter := voterKey == ""
	if isNewVoter {
		newKey, err := voter.NewVoterKey()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "无法生成投票者标识"})
			return
		}
		voterKey = newKey
	}

	// 3. 限流：先过分布式层，再过进程内兜底层。
	// 兜底层在分布式层放行（包括fail-open放行）时必定执行。
	ip := c.ClientIP()
	if !CheckVoteRateLimit(body.Token, ip, voterKey) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "投票过于频繁，请稍后再试"})
		return
	}
	if !memoryLimiter.Allow("vote:" + ip) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "投票过于频繁，请稍后再试"})
		return
	}

	// 4. 解析令牌并校验批次状态
	b, err := batch.GetBatchByToken(body.Token)
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

	// 5. 校验条目归属
	it, err := item.GetItemInBatch(body.ItemID, b.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if it == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的条目"})
		return
	}

	// 6. 落库：同一投票者对同一条目的旧投票被覆盖
	if err := UpsertVote(b.ID, it.ID, voterKey, body.Choice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "处理投票失败"})
		return
	}

	// 7. 尽力而为地广播事件，失败不影响本次投票
	broadcast.PublishVoteEvent(b.ID, it.ID, body.Choice.Delta())

	// 8. 首次投票者在响应中获得长期Cookie
	if isNewVoter {
		voter.SetVoterCookie(c, voterKey)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
