package voter

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName 是承载投票者标识的Cookie名
	CookieName = "vk"
	// CookieMaxAge 是投票者Cookie的默认有效期（30天）
	CookieMaxAge = 30 * 24 * 60 * 60
	// VoterKeyContextKey 是投票者标识在Gin上下文中的键名
	VoterKeyContextKey = "voterKey"
)

var cookieMaxAge = CookieMaxAge

// ConfigureModule 注入voter模块的配置项
func ConfigureModule(maxAgeDays int) {
	if maxAgeDays > 0 {
		cookieMaxAge = maxAgeDays * 24 * 60 * 60
	}
}

// SetVoterCookie 将投票者标识写入响应Cookie。
// http-only、SameSite-Lax，有效期默认30天。
func SetVoterCookie(c *gin.Context, voterKey string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, voterKey, cookieMaxAge, "/", "", false, true)
}

// EnsureVoterCookieMiddleware 确保请求方持有一个格式正确的投票者Cookie。
// 如果没有或格式不正确，生成一个新的标识并设置Cookie。
func EnsureVoterCookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		voterKey, err := c.Cookie(CookieName)

		if err != nil || !IsValidVoterKey(voterKey) {
			if err != nil && err != http.ErrNoCookie {
				fmt.Printf("检测到无效的投票者Cookie: %s, err: %v\n", voterKey, err)
			}
			newKey, genErr := NewVoterKey()
			if genErr != nil {
				fmt.Printf("生成投票者标识时发生错误: %v\n", genErr)
			} else {
				SetVoterCookie(c, newKey)
				voterKey = newKey
			}
		}

		c.Set(VoterKeyContextKey, voterKey)
		c.Next()
	}
}

// LoadVoterMiddleware 读取Cookie并将投票者标识放入Gin上下文中。
// Cookie缺失时上下文中的值为空字符串，由业务决定是否当场分发新标识。
func LoadVoterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		voterKey, _ := c.Cookie(CookieName)
		if !IsValidVoterKey(voterKey) {
			voterKey = ""
		}
		c.Set(VoterKeyContextKey, voterKey)
		c.Next()
	}
}

// VoterKeyFromContext 从Gin上下文中取出投票者标识
func VoterKeyFromContext(c *gin.Context) string {
	return c.GetString(VoterKeyContextKey)
}
