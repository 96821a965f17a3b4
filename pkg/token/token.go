package token

import (
	"crypto/rand"
	"math/big"
)

// Alphabet 是生成分享令牌所用的58字符集合。
// 相比完整的Base62去掉了容易混淆的 0、O、I、l 四个字形，
// 保证令牌在口头转述或手抄时不产生歧义。
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// DefaultLength 是分享令牌的默认长度。
// 58^12 的空间在实际规模下碰撞概率极低，但调用方在落库时仍应
// 依赖唯一索引做最终校验。
const DefaultLength = 12

// New 生成一个长度为length的分享令牌，每个位置从字母表中均匀随机选取。
// length小于等于0时使用DefaultLength。
func New(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	alphabetSize := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf), nil
}
