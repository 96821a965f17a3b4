package vote

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/keepcut/keepcut-backend/internal/batch"
	"github.com/keepcut/keepcut-backend/internal/item"
	"github.com/keepcut/keepcut-backend/internal/platform/database"
	"github.com/keepcut/keepcut-backend/internal/voter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupVoteRouter 准备一套完整的投票环境：
// 内存数据库、一个带条目的批次、不健康的Redis状态（分布式层fail-open）、
// 宽松的内存限流器，以及挂好中间件的路由。
func setupVoteRouter(t *testing.T) (*gin.Engine, *batch.Batch, []item.Item) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	setupTestDB(t, &batch.Batch{}, &item.Item{}, &Vote{})

	// 分布式层按不健康处理，由进程内限流器兜底
	database.UpdateStatus(false)
	t.Cleanup(func() { database.UpdateStatus(true) })

	memoryLimiter = NewMemoryLimiter(1000, time.Second, clockwork.NewFakeClock())

	b := batch.Batch{ID: "batch-1", Title: "周末照片", Token: "AbCdEfGh1234"}
	require.NoError(t, database.DB.Create(&b).Error)
	items := []item.Item{
		{ID: "item-1", BatchID: b.ID, MediaURL: "https://cdn.example/1.jpg"},
		{ID: "item-2", BatchID: b.ID, MediaURL: "https://cdn.example/2.jpg"},
	}
	require.NoError(t, database.DB.Create(&items).Error)

	r := gin.New()
	r.POST("/api/vote", voter.LoadVoterMiddleware(), HandleSubmitVote)
	return r, &b, items
}

func postVote(r *gin.Engine, body map[string]interface{}, cookie string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/vote", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: voter.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitVoteMissingFields(t *testing.T) {
	r, _, _ := setupVoteRouter(t)

	w := postVote(r, map[string]interface{}{"token": "AbCdEfGh1234"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitVoteInvalidChoice(t *testing.T) {
	r, b, items := setupVoteRouter(t)

	w := postVote(r, map[string]interface{}{
		"token": b.Token, "itemId": items[0].ID, "choice": "maybe",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitVoteUnknownToken(t *testing.T) {
	r, _, items := setupVoteRouter(t)

	w := postVote(r, map[string]interface{}{
		"token": "NoSuchToken1", "itemId": items[0].ID, "choice": "keep",
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitVoteExpiredBatch(t *testing.T) {
	r, b, items := setupVoteRouter(t)

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, database.DB.Model(b).Update("expires_at", &expired).Error)

	w := postVote(r, map[string]interface{}{
		"token": b.Token, "itemId": items[0].ID, "choice": "keep",
	}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitVoteItemNotInBatch(t *testing.T) {
	r, b, _ := setupVoteRouter(t)

	other := batch.Batch{ID: "batch-2", Token: "ZzYyXxWw9876"}
	require.NoError(t, database.DB.Create(&other).Error)
	foreign := item.Item{ID: "foreign-item", BatchID: other.ID}
	require.NoError(t, database.DB.Create(&foreign).Error)

	w := postVote(r, map[string]interface{}{
		"token": b.Token, "itemId": foreign.ID, "choice": "keep",
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitVoteSuccessSetsCookieAndPersists(t *testing.T) {
	r, b, items := setupVoteRouter(t)

	w := postVote(r, map[string]interface{}{
		"token": b.Token, "itemId": items[0].ID, "choice": "keep",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())

	// 首次投票者在响应中获得长期、HttpOnly、SameSite-Lax的Cookie
	setCookie := strings.Join(w.Header().Values("Set-Cookie"), "; ")
	assert.Contains(t, setCookie, voter.CookieName+"=")
	assert.Contains(t, setCookie, "HttpOnly")
	assert.Contains(t, setCookie, "SameSite=Lax")

	var votes []Vote
	require.NoError(t, database.DB.Find(&votes).Error)
	require.Len(t, votes, 1)
	assert.Equal(t, items[0].ID, votes[0].ItemID)
	assert.Equal(t, ChoiceKeep, votes[0].Choice)
}

func TestSubmitVoteExistingCookieNoReissue(t *testing.T) {
	r, b, items := setupVoteRouter(t)

	voterKey := "018f6b34-0000-7000-8000-000000000001"
	w := postVote(r, map[string]interface{}{
		"token": b.Token, "itemId": items[0].ID, "choice": "cut",
	}, voterKey)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Values("Set-Cookie"), "已有合法Cookie时不应重新分发")

	var v Vote
	require.NoError(t, database.DB.First(&v).Error)
	assert.Equal(t, voterKey, v.VoterKey)
}

func TestSubmitVoteSameVoterOverwrites(t *testing.T) {
	r, b, items := setupVoteRouter(t)

	voterKey := "018f6b34-0000-7000-8000-000000000002"
	body := map[string]interface{}{"token": b.Token, "itemId": items[0].ID, "choice": "keep"}
	require.Equal(t, http.StatusOK, postVote(r, body, voterKey).Code)

	body["choice"] = "cut"
	require.Equal(t, http.StatusOK, postVote(r, body, voterKey).Code)

	var votes []Vote
	require.NoError(t, database.DB.Find(&votes).Error)
	require.Len(t, votes, 1, "两次投票只保留一条记录")
	assert.Equal(t, ChoiceCut, votes[0].Choice, "保留的是第二次的选择")
}

func TestSubmitVoteMemoryLimiterRejects(t *testing.T) {
	r, b, items := setupVoteRouter(t)

	// 把兜底限流器的阈值压到1，第二个请求必须被拒
	memoryLimiter = NewMemoryLimiter(1, time.Second, clockwork.NewFakeClock())

	body := map[string]interface{}{"token": b.Token, "itemId": items[0].ID, "choice": "keep"}
	assert.Equal(t, http.StatusOK, postVote(r, body, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, postVote(r, body, "").Code)
}
