package report

import (
	"errors"
	"time"

	"github.com/keepcut/keepcut-backend/internal/batch"
	"github.com/keepcut/keepcut-backend/internal/item"
	"github.com/keepcut/keepcut-backend/internal/ranking"
	"github.com/keepcut/keepcut-backend/internal/vote"
)

// ErrBatchNotFound 表示指定的批次不存在
var ErrBatchNotFound = errors.New("找不到指定的批次")

// RankedItemDTO 是结果页中单个条目的数据，条目信息加上即时汇总的票数
type RankedItemDTO struct {
	ID          string    `json:"id"`
	BatchID     string    `json:"batch_id"`
	MediaURL    string    `json:"media_url"`
	ThumbURL    string    `json:"thumb_url"`
	CreatedAt   time.Time `json:"created_at"`
	Keep        int       `json:"keep"`
	Cut         int       `json:"cut"`
	Total       int       `json:"total"`
	KeepRate    float64   `json:"keepRate"`
	WilsonLower float64   `json:"wilsonLower"`
}

// ResultsDTO 是结果页的完整数据
type ResultsDTO struct {
	Batch *batch.Batch    `json:"batch"`
	Items []RankedItemDTO `json:"items"`
}

// BuildResults 组装一个批次的实时排名结果。
// 票数统计在每次读取时从原始投票重新汇总——它是派生视图，从不落库，
// 排序由 ranking 包的Wilson下界策略给出。
func BuildResults(batchID string) (*ResultsDTO, error) {
	b, err := batch.GetBatchByID(batchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBatchNotFound
	}

	items, err := item.GetItemsByBatch(b.ID)
	if err != nil {
		return nil, err
	}

	votes, err := vote.GetVotesByBatch(b.ID)
	if err != nil {
		return nil, err
	}

	// 按条目汇总keep/cut票数
	type tally struct{ keep, cut int }
	tallies := make(map[string]*tally, len(items))
	for i := range items {
		tallies[items[i].ID] = &tally{}
	}
	for i := range votes {
		t, ok := tallies[votes[i].ItemID]
		if !ok {
			// 投给已不存在条目的历史票，直接忽略
			continue
		}
		switch votes[i].Choice {
		case vote.ChoiceKeep:
			t.keep++
		case vote.ChoiceCut:
			t.cut++
		}
	}

	rankingInput := make([]ranking.Item, 0, len(items))
	for i := range items {
		t := tallies[items[i].ID]
		total := t.keep + t.cut
		keepRate := 0.0
		if total > 0 {
			keepRate = float64(t.keep) / float64(total)
		}
		rankingInput = append(rankingInput, ranking.Item{
			ID:        items[i].ID,
			CreatedAt: items[i].CreatedAt,
			Keep:      t.keep,
			Cut:       t.cut,
			Total:     total,
			KeepRate:  keepRate,
		})
	}

	ranked := ranking.Rank(rankingInput)

	itemsByID := make(map[string]*item.Item, len(items))
	for i := range items {
		itemsByID[items[i].ID] = &items[i]
	}

	dtos := make([]RankedItemDTO, 0, len(ranked))
	for _, r := range ranked {
		it := itemsByID[r.ID]
		dtos = append(dtos, RankedItemDTO{
			ID:          it.ID,
			BatchID:     it.BatchID,
			MediaURL:    it.MediaURL,
			ThumbURL:    it.ThumbURL,
			CreatedAt:   it.CreatedAt,
			Keep:        r.Keep,
			Cut:         r.Cut,
			Total:       r.Total,
			KeepRate:    r.KeepRate,
			WilsonLower: r.WilsonLower,
		})
	}

	return &ResultsDTO{Batch: b, Items: dtos}, nil
}
