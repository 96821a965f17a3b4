package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/keepcut/keepcut-backend/internal/platform/database"
)

// VoteEvent 是投票发生后在批次频道上发布的事件
type VoteEvent struct {
	ItemID string `json:"itemId"`
	Delta  string `json:"delta"`
}

const publishTimeout = 2 * time.Second

// ChannelForBatch 返回批次对应的Redis发布订阅频道名
func ChannelForBatch(batchID string) string {
	return "batch:" + batchID + ":events"
}

// PublishVoteEvent 在批次频道上发布一条投票事件。
// 尽力而为：已经落库的投票绝不因为通知失败而回滚，
// 所以这里的任何失败都只记录日志，不向上返回。
func PublishVoteEvent(batchID, itemID, delta string) {
	if !database.IsRedisHealthy() {
		return
	}

	payload, err := json.Marshal(VoteEvent{ItemID: itemID, Delta: delta})
	if err != nil {
		fmt.Printf("警告: 序列化投票事件失败: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(database.Ctx, publishTimeout)
	defer cancel()

	if err := database.RDB.Publish(ctx, ChannelForBatch(batchID), payload).Err(); err != nil {
		fmt.Printf("警告: 发布投票事件失败: %v\n", err)
	}
}
