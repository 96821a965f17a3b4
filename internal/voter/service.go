package voter

import (
	"fmt"

	"github.com/google/uuid"
)

// NewVoterKey 生成一个新的匿名投票者标识。
// 它只是用于去重投票的不透明字符串，不代表任何经过认证的身份。
func NewVoterKey() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsValidVoterKey 检查一个字符串是否是格式合法的投票者标识
func IsValidVoterKey(key string) bool {
	_, err := uuid.Parse(key)
	return err == nil
}
