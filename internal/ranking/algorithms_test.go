package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWilsonScoreBounds(t *testing.T) {
	cases := []struct {
		keep, total int
	}{
		{0, 0}, {0, 1}, {1, 1}, {1, 2}, {5, 10}, {10, 10}, {99, 100}, {1, 1000},
	}
	for _, tc := range cases {
		score := WilsonScore(tc.keep, tc.total)
		assert.GreaterOrEqual(t, score, 0.0, "keep=%d total=%d", tc.keep, tc.total)
		assert.LessOrEqual(t, score, 1.0, "keep=%d total=%d", tc.keep, tc.total)
	}
}

func TestWilsonScoreZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, WilsonScore(0, 0))
}

func TestWilsonScoreConservativeUnderSparseData(t *testing.T) {
	// 1/1的"满分"在Wilson下界意义上必须不敌10/10
	assert.Less(t, WilsonScore(1, 1), WilsonScore(10, 10))
	// 同比例下样本越大下界越高
	assert.Less(t, WilsonScore(5, 10), WilsonScore(50, 100))
}

func TestWilsonScoreKnownValue(t *testing.T) {
	// phat=0.5, n=10, z=1.96 的教科书值约为0.2366
	assert.InDelta(t, 0.2366, WilsonScore(5, 10), 0.001)
}

func TestRankTrustedBeatsUntrusted(t *testing.T) {
	// A: keep=1/total=1（分数看似完美但票数不足）；B: keep=5/total=10
	items := []Item{
		{ID: "A", Keep: 1, Total: 1},
		{ID: "B", Keep: 5, Cut: 5, Total: 10},
	}
	ranked := Rank(items)
	require.Len(t, ranked, 2)
	assert.Equal(t, "B", ranked[0].ID, "足票条目必须排在不足票条目之前，无论分数高低")
	assert.Equal(t, "A", ranked[1].ID)
}

func TestRankUntrustedByKeepThenCreatedAt(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: "late", Keep: 1, Total: 2, CreatedAt: base.Add(time.Hour)},
		{ID: "early", Keep: 1, Total: 2, CreatedAt: base},
		{ID: "more-keep", Keep: 2, Total: 2, CreatedAt: base.Add(2 * time.Hour)},
	}
	ranked := Rank(items)
	require.Len(t, ranked, 3)
	assert.Equal(t, "more-keep", ranked[0].ID)
	assert.Equal(t, "early", ranked[1].ID, "keep数相同时先提交的排前")
	assert.Equal(t, "late", ranked[2].ID)
}

func TestRankTrustedByWilsonLower(t *testing.T) {
	items := []Item{
		{ID: "mediocre", Keep: 5, Cut: 5, Total: 10},
		{ID: "good", Keep: 9, Cut: 1, Total: 10},
		{ID: "bad", Keep: 1, Cut: 9, Total: 10},
	}
	ranked := Rank(items)
	require.Len(t, ranked, 3)
	assert.Equal(t, "good", ranked[0].ID)
	assert.Equal(t, "mediocre", ranked[1].ID)
	assert.Equal(t, "bad", ranked[2].ID)
	// Rank负责填充WilsonLower
	assert.Greater(t, ranked[0].WilsonLower, ranked[1].WilsonLower)
}

func TestRankEndToEndScenario(t *testing.T) {
	// 三个条目：4/4、2/5、0/1 → 排名应为 item1, item2, item3
	items := []Item{
		{ID: "item3", Keep: 0, Cut: 1, Total: 1},
		{ID: "item2", Keep: 2, Cut: 3, Total: 5},
		{ID: "item1", Keep: 4, Cut: 0, Total: 4},
	}
	ranked := Rank(items)
	require.Len(t, ranked, 3)
	assert.Equal(t, "item1", ranked[0].ID)
	assert.Equal(t, "item2", ranked[1].ID)
	assert.Equal(t, "item3", ranked[2].ID, "唯一不足票的条目垫底，哪怕keep为0与否都不影响")
}

func TestRankStableAndPure(t *testing.T) {
	items := []Item{
		{ID: "a", Keep: 3, Cut: 1, Total: 4},
		{ID: "b", Keep: 1, Total: 1},
		{ID: "c", Keep: 8, Cut: 2, Total: 10},
	}
	first := Rank(items)
	second := Rank(items)
	assert.Equal(t, first, second, "相同输入的多次调用必须产生相同顺序")

	// 输入切片不被修改
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 0.0, items[0].WilsonLower)
}
