package ranking

import (
	"math"
	"sort"
	"time"
)

// --- 算法常量 ---
const (
	// wilsonZ 是Wilson置信区间的z值，1.96对应95%置信水平
	wilsonZ = 1.96

	// MinTrustedVotes 是样本量门槛。票数不足该值的条目永远排在足票条目
	// 之后，防止一张早期"100% keep"的照片仅凭一两票就霸占榜首。
	// 这是一个设计常量，不是统计推导的结果。
	MinTrustedVotes = 3
)

// Item 是参与排名的单个条目。票数统计由调用方从原始投票即时汇总，
// WilsonLower 由 Rank 计算填充。
type Item struct {
	ID          string
	CreatedAt   time.Time
	Keep        int
	Cut         int
	Total       int
	KeepRate    float64
	WilsonLower float64
}

// WilsonScore 计算 keep/total 比例的Wilson置信区间下界。
// total为0时定义为0。调用方保证 0 <= keep <= total，
// 违反该前置条件的输入行为未定义。
func WilsonScore(keep, total int) float64 {
	if total == 0 {
		return 0
	}

	phat := float64(keep) / float64(total)
	n := float64(total)
	z := wilsonZ

	denominator := 1 + z*z/n
	center := phat + z*z/(2*n)
	margin := z * math.Sqrt((phat*(1-phat)+z*z/(4*n))/n)

	return (center - margin) / denominator
}

// Rank 为每个条目计算Wilson下界分数，并返回按展示质量降序的新切片。
// 输入切片不被修改，相同输入的多次调用产生相同的顺序。
//
// 排序策略：
//  1. 双方票数都不足 MinTrustedVotes：按原始keep数降序，再按创建时间升序；
//  2. 只有一方不足：足票的一方永远靠前，无论分数高低；
//  3. 双方都足票：按Wilson下界降序。
func Rank(items []Item) []Item {
	ranked := make([]Item, len(items))
	copy(ranked, items)

	for i := range ranked {
		ranked[i].WilsonLower = WilsonScore(ranked[i].Keep, ranked[i].Total)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if a.Total < MinTrustedVotes && b.Total < MinTrustedVotes {
			if a.Keep != b.Keep {
				return a.Keep > b.Keep
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.Total < MinTrustedVotes {
			return false
		}
		if b.Total < MinTrustedVotes {
			return true
		}
		return a.WilsonLower > b.WilsonLower
	})

	return ranked
}
