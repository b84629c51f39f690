package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/config"
	"github.com/campagnoli/controle-ferroviario/pkg/jwt"
	"github.com/campagnoli/controle-ferroviario/pkg/redis"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── 测试辅助 ──

var testCookie = config.CookieConfig{Name: "trainlog_session", SameSite: "Lax"}

func newJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.SessionConfig{
		Secret: "test-secret-0123456789",
		TTL:    time.Hour,
	})
}

// echoSession 返回当前请求注入的会话 ID
func echoSession(c *gin.Context) {
	c.String(http.StatusOK, c.GetString(sessionIDKey))
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == testCookie.Name {
			return ck
		}
	}
	return nil
}

// ── Session ──

func TestSession_IssuesNewSession(t *testing.T) {
	r := gin.New()
	r.Use(Session(newJWTManager(), testCookie, zap.NewNop()))
	r.GET("/", echoSession)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Body.String() == "" {
		t.Fatal("期望注入会话 ID")
	}
	ck := sessionCookie(w)
	if ck == nil {
		t.Fatal("期望写入会话 Cookie")
	}
	if !ck.HttpOnly {
		t.Error("会话 Cookie 应为 HttpOnly")
	}
	if ck.MaxAge != 3600 {
		t.Errorf("期望 MaxAge 3600，实际 %d", ck.MaxAge)
	}
}

func TestSession_ReusesValidCookie(t *testing.T) {
	mgr := newJWTManager()
	token, err := mgr.GenerateSessionToken("known-session")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	r := gin.New()
	r.Use(Session(mgr, testCookie, zap.NewNop()))
	r.GET("/", echoSession)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "known-session" {
		t.Errorf("期望沿用 known-session，实际 %s", w.Body.String())
	}
	if sessionCookie(w) != nil {
		t.Error("有效会话不应重新写 Cookie")
	}
}

func TestSession_ReplacesForgedCookie(t *testing.T) {
	other := jwt.NewManager(&config.SessionConfig{Secret: "another-secret-abcdefgh", TTL: time.Hour})
	forged, _ := other.GenerateSessionToken("stolen")

	r := gin.New()
	r.Use(Session(newJWTManager(), testCookie, zap.NewNop()))
	r.GET("/", echoSession)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: forged})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() == "stolen" || w.Body.String() == "" {
		t.Errorf("伪造 Token 应被替换为新会话，实际 %q", w.Body.String())
	}
	if sessionCookie(w) == nil {
		t.Error("期望写入新的会话 Cookie")
	}
}

func TestParseSameSite(t *testing.T) {
	cases := map[string]http.SameSite{
		"Lax":    http.SameSiteLaxMode,
		"strict": http.SameSiteStrictMode,
		"None":   http.SameSiteNoneMode,
		"":       http.SameSiteDefaultMode,
	}
	for in, want := range cases {
		if got := parseSameSite(in); got != want {
			t.Errorf("parseSameSite(%q) = %v，期望 %v", in, got, want)
		}
	}
}

// ── RequestID ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	// 沿用外部 ID
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" || w.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("期望沿用 abc-123，实际 %s", w.Body.String())
	}

	// 过长则重新生成
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", requestIDMaxLen+1))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if len(w.Body.String()) != 36 {
		t.Errorf("期望生成 UUID，实际 %s", w.Body.String())
	}
}

// ── CORS ──

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("预检请求期望 204，实际 %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("白名单来源应被回显")
	}
	if !strings.Contains(w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition") {
		t.Error("应暴露 Content-Disposition")
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("非白名单来源不应被允许")
	}
}

// ── BodyLimit ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/", func(c *gin.Context) {
		var v map[string]interface{}
		if err := c.ShouldBindJSON(&v); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/", strings.NewReader(`{"a":"`+strings.Repeat("x", 64)+`"}`)))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413，实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/", strings.NewReader(`{"a":1}`)))
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
}

// ── SecurityHeaders ──

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" || w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("缺少安全响应头")
	}
}

// ── RateLimit ──

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := redis.NewClient(&config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient 失败: %v", err)
	}
	defer rdb.Close()

	r := gin.New()
	r.POST("/generate-pdf", RateLimit(rdb, 2, time.Minute, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/generate-pdf", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("期望 [200 200 429]，实际 %v", codes)
	}
}

func TestRateLimit_NoRedis(t *testing.T) {
	r := gin.New()
	r.POST("/", RateLimit(nil, 1, time.Minute, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/", nil))
		if w.Code != http.StatusOK {
			t.Errorf("无 Redis 时应放行，第 %d 次得到 %d", i+1, w.Code)
		}
	}
}
