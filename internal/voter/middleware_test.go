package voter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEnsureVoterCookieIssuesNewKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var captured string
	r := gin.New()
	r.GET("/", EnsureVoterCookieMiddleware(), func(c *gin.Context) {
		captured = VoterKeyFromContext(c)
		c.Status(http.StatusOK)
	})

	w := doRequest(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, IsValidVoterKey(captured), "上下文中应是新生成的合法标识")

	setCookie := strings.Join(w.Header().Values("Set-Cookie"), "; ")
	assert.Contains(t, setCookie, CookieName+"="+captured)
	assert.Contains(t, setCookie, "HttpOnly")
	assert.Contains(t, setCookie, "SameSite=Lax")
}

func TestEnsureVoterCookieKeepsExistingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	existing, err := NewVoterKey()
	require.NoError(t, err)

	var captured string
	r := gin.New()
	r.GET("/", EnsureVoterCookieMiddleware(), func(c *gin.Context) {
		captured = VoterKeyFromContext(c)
		c.Status(http.StatusOK)
	})

	w := doRequest(r, existing)
	assert.Equal(t, existing, captured)
	assert.Empty(t, w.Header().Values("Set-Cookie"), "合法Cookie不应被重新分发")
}

func TestEnsureVoterCookieReplacesInvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var captured string
	r := gin.New()
	r.GET("/", EnsureVoterCookieMiddleware(), func(c *gin.Context) {
		captured = VoterKeyFromContext(c)
		c.Status(http.StatusOK)
	})

	w := doRequest(r, "not-a-uuid")
	assert.True(t, IsValidVoterKey(captured))
	assert.NotEqual(t, "not-a-uuid", captured)
	assert.Contains(t, strings.Join(w.Header().Values("Set-Cookie"), "; "), CookieName+"=")
}

func TestLoadVoterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var captured string
	r := gin.New()
	r.GET("/", LoadVoterMiddleware(), func(c *gin.Context) {
		captured = VoterKeyFromContext(c)
		c.Status(http.StatusOK)
	})

	// Cookie缺失或非法时上下文中的值为空串，且不主动分发新Cookie
	w := doRequest(r, "")
	assert.Empty(t, captured)
	assert.Empty(t, w.Header().Values("Set-Cookie"))

	w = doRequest(r, "garbage")
	assert.Empty(t, captured)
	assert.Empty(t, w.Header().Values("Set-Cookie"))

	valid, err := NewVoterKey()
	require.NoError(t, err)
	doRequest(r, valid)
	assert.Equal(t, valid, captured)
}

func TestNewVoterKeyIsValid(t *testing.T) {
	key, err := NewVoterKey()
	require.NoError(t, err)
	assert.True(t, IsValidVoterKey(key))
	assert.False(t, IsValidVoterKey(""))
	assert.False(t, IsValidVoterKey("abc"))
}
