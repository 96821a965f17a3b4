package shuffle

// 本包提供一个基于字符串种子的确定性洗牌算法。
// 相同的种子和相同的输入序列总是得到相同的排列，不同的种子大概率得到
// 不同的排列。典型用法是让每位投票者在多次访问之间看到一份属于自己、
// 但保持稳定的条目顺序。

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// SeedHash 将种子字符串压缩为一个32位有符号整数。
// 采用 hash = hash*31 + 字符码 的滚动多项式散列，溢出按32位有符号整数
// 语义回绕。它只需要分布均匀、结果可复现，不具备密码学强度。
func SeedHash(seed string) int32 {
	var hash int32
	for i := 0; i < len(seed); i++ {
		hash = hash*31 + int32(seed[i])
	}
	return hash
}

// WithSeed 返回items的一个确定性排列，不修改输入切片。
// 算法为反向的Fisher-Yates：从最后一个下标向前，每一步先用线性同余法
// 推进散列值，再在[0, i]内选出交换位置。空切片和单元素切片原样返回。
//
// 种子为空字符串时散列退化为0，结果仍然是确定的，但所有空种子调用方
// 会得到同一份排列。调用方约定传入 投票者标识+批次ID 的组合，不会为空。
func WithSeed[T any](items []T, seed string) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	hash := int64(SeedHash(seed))
	for i := len(shuffled) - 1; i > 0; i-- {
		hash = (hash*lcgMultiplier + lcgIncrement) % lcgModulus
		// 负种子散列会产生负余数，归一化到[0, lcgModulus)保证下标合法
		if hash < 0 {
			hash += lcgModulus
		}
		j := int(float64(hash) / float64(lcgModulus) * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
