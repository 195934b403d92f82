package middleware

import (
	"bytes"
	"log"
	"os"
	"strings"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

// loginRouter répond 200 pour le bon mot de passe, 401 sinon
func loginRouter(rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.POST("/login", LoginRateLimit(rdb), func(c *gin.Context) {
		var in struct{ Password string }
		_ = c.ShouldBindJSON(&in)
		if in.Password == "good" {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	})
	return r
}

func postLogin(r http.Handler, password string) int {
	body := bytes.NewBufferString(`{"email":"Ada@Test.com","password":"` + password + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestLoginRateLimit_LocksAfterMaxAttempts(t *testing.T) {
	rdb, mr := setupTestRedis(t)
	r := loginRouter(rdb)

	for i := 0; i < LoginMaxAttempts; i++ {
		assert.Equal(t, http.StatusUnauthorized, postLogin(r, "bad"))
	}
	assert.Equal(t, http.StatusTooManyRequests, postLogin(r, "good"))
	assert.True(t, mr.Exists("login_cooldown:ada@test.com"))
	assert.Equal(t, http.StatusTooManyRequests, postLogin(r, "good"))

	mr.FastForward(LoginCooldown + 1)
	assert.Equal(t, http.StatusOK, postLogin(r, "good"))
}

func TestLoginRateLimit_SuccessResetsCounter(t *testing.T) {
	rdb, mr := setupTestRedis(t)
	r := loginRouter(rdb)

	postLogin(r, "bad")
	postLogin(r, "bad")
	require.True(t, mr.Exists("login_attempts:ada@test.com"))

	assert.Equal(t, http.StatusOK, postLogin(r, "good"))
	assert.False(t, mr.Exists("login_attempts:ada@test.com"))
}

func TestLoginRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := loginRouter(nil)
	for i := 0; i < LoginMaxAttempts+2; i++ {
		assert.Equal(t, http.StatusUnauthorized, postLogin(r, "bad"))
	}
}

func TestRegisterRateLimit(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	r := gin.New()
	r.POST("/signup", RegisterRateLimit(rdb), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{})
	})

	codes := []int{}
	for i := 0; i < RegisterMaxAttempts+1; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/signup", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{201, 201, 201, 429}, codes)
}

func TestBrowserSession_AssignsStableID(t *testing.T) {
	store := NewCookieStore("0123456789abcdef0123456789abcdef", false)
	r := gin.New()
	r.Use(BrowserSession(store))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SessionIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	first := w.Body.String()
	require.NotEmpty(t, first)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, first, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestBrowserSession_TamperedCookieGetsNewID(t *testing.T) {
	store := NewCookieStore("0123456789abcdef0123456789abcdef", false)
	r := gin.New()
	r.Use(BrowserSession(store))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SessionIDKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestCORS_AllowsFrontendOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://shop.test"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://shop.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://shop.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_PreflightAllowsPagePathHeader(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:3000"))
	r.POST("/cart/items", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/cart/items", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-page-path")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, allowed, "x-page-path")
	assert.Contains(t, allowed, "content-type")
}

func TestLoginRateLimit_RedisDownIsLogged(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	assert.Equal(t, http.StatusUnauthorized, postLogin(loginRouter(rdb), "bad"))
	assert.Contains(t, logs.String(), "Rate limit Redis")
}
