package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedra_storefront/internal/api"
	"cedra_storefront/internal/handlers"
	"cedra_storefront/internal/middleware"
	"cedra_storefront/internal/mockapi"
	"cedra_storefront/internal/models"
	"cedra_storefront/internal/session"
)

type env struct {
	server   *httptest.Server
	upstream *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock := mockapi.New("secret")
	_, err := mock.AddUser("Ada", "ada@test.com", "secret1", false)
	require.NoError(t, err)
	mock.AddCoupon(models.Coupon{Code: "SAVE10", Type: "percentage", Value: 10, IsActive: true})
	upstream := httptest.NewServer(mock.Router())
	t.Cleanup(upstream.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	r := gin.New()
	RegisterRoutes(r, Deps{
		Storefront: &handlers.Storefront{
			Sessions:    session.MemoryFactory(),
			API:         api.NewClient(api.Options{BaseURL: upstream.URL}),
			APIBaseURL:  upstream.URL,
			FrontendURL: "http://shop.test",
		},
		Cookies: middleware.NewCookieStore("0123456789abcdef0123456789abcdef", false),
		Redis:   rdb,
		Origins: []string{"http://shop.test"},
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &env{server: srv, upstream: upstream}
}

// browser simule un navigateur : un cookie jar par instance
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func (e *env) browser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: e.server.URL + "/api/storefront",
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(method, path, page string, body interface{}) (int, map[string]interface{}) {
	b.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(b.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, b.base+path, &buf)
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/json")
	if page != "" {
		req.Header.Set(handlers.PagePathHeader, page)
	}

	res, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer res.Body.Close()

	out := map[string]interface{}{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func totals(body map[string]interface{}) map[string]interface{} {
	t, _ := body["totals"].(map[string]interface{})
	return t
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	res, err := http.Get(e.server.URL + "/health")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestCartFlow(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	product := map[string]interface{}{"_id": "p1", "name": "Shirt", "price": 40, "discount": 0}

	code, body := b.do(http.MethodPost, "/cart/items", "", gin.H{"product": product, "size": "M", "quantity": 1})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "added", body["result"])

	code, body = b.do(http.MethodPost, "/cart/items", "", gin.H{"product": product, "size": "M", "quantity": 1})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "incremented", body["result"])
	assert.Equal(t, "80", totals(body)["subtotal"])
	assert.Equal(t, "9.99", totals(body)["shippingCost"])

	code, body = b.do(http.MethodPut, "/cart/items/p1/M", "", gin.H{"quantity": 15})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "quantity must be between 1 and 10", body["error"])

	code, body = b.do(http.MethodPut, "/cart/items/p1/M", "", gin.H{"quantity": 3})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "120", totals(body)["subtotal"])
	assert.Equal(t, "0", totals(body)["shippingCost"])

	code, body = b.do(http.MethodPost, "/cart/coupon", "", gin.H{"code": "save10"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "108", totals(body)["total"])
	coupon := body["coupon"].(map[string]interface{})
	assert.Equal(t, "SAVE10", coupon["code"])

	code, body = b.do(http.MethodPost, "/cart/coupon", "", gin.H{"code": "NOPE"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Invalid coupon code", body["error"])

	code, _ = b.do(http.MethodDelete, "/cart/items/p1/XL", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	// l'état survit entre les requêtes du même navigateur
	code, body = b.do(http.MethodGet, "/cart", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "108", totals(body)["total"])

	code, body = b.do(http.MethodDelete, "/cart/coupon", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "120", totals(body)["total"])

	code, body = b.do(http.MethodDelete, "/cart", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["items"])
}

func TestCartRejectsOutOfRangeDiscount(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	code, body := b.do(http.MethodPost, "/cart/items", "", gin.H{"product": gin.H{"_id": "p1", "price": 50, "discount": 250}, "size": "M", "quantity": 2})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "discount must be between 0 and 100", body["error"])

	_, body = b.do(http.MethodGet, "/cart", "", nil)
	assert.Empty(t, body["items"])
}

func TestCartItemWithoutSize(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	code, _ := b.do(http.MethodPost, "/cart/items", "", gin.H{"product": gin.H{"_id": "mug", "price": "12.50"}, "quantity": 2})
	require.Equal(t, http.StatusOK, code)

	code, body := b.do(http.MethodDelete, "/cart/items/mug/-", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["items"])
}

func TestBrowsersAreIsolated(t *testing.T) {
	e := newEnv(t)
	first, second := e.browser(t), e.browser(t)

	code, _ := first.do(http.MethodPost, "/cart/items", "", gin.H{"product": gin.H{"_id": "p1", "price": 10}, "size": "S", "quantity": 2})
	require.Equal(t, http.StatusOK, code)

	_, body := second.do(http.MethodGet, "/cart", "", nil)
	assert.Empty(t, body["items"])
}

func TestAuthFlow(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	code, body := b.do(http.MethodPost, "/auth/login", "/login", gin.H{"email": "ada@test.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["error"])
	assert.NotContains(t, body, "redirect")

	code, body = b.do(http.MethodPost, "/auth/login", "/login", gin.H{"email": "ada@test.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Ada", user["name"])

	_, body = b.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, true, body["isAuthenticated"])

	code, body = b.do(http.MethodPut, "/auth/profile", "/profile", gin.H{"name": "Ada L."})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ada L.", body["user"].(map[string]interface{})["name"])

	code, body = b.do(http.MethodPut, "/auth/password", "/profile", gin.H{"password": "abcdef", "confirmPassword": "abcdeg"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Passwords do not match", body["error"])

	code, body = b.do(http.MethodPost, "/auth/logout", "/profile", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/login", body["redirect"])

	_, body = b.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, false, body["isAuthenticated"])

	code, _ = b.do(http.MethodPut, "/auth/profile", "/profile", gin.H{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSignupAndDuplicate(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	code, _ := b.do(http.MethodPost, "/auth/signup", "/register", gin.H{"name": "Bob", "email": "bob@test.com", "password": "secret1"})
	assert.Equal(t, http.StatusCreated, code)

	code, body := e.browser(t).do(http.MethodPost, "/auth/signup", "/register", gin.H{"name": "Bob", "email": "bob@test.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User already exists", body["error"])
}

func TestLoginRateLimited(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	for i := 0; i < middleware.LoginMaxAttempts; i++ {
		code, _ := b.do(http.MethodPost, "/auth/login", "/login", gin.H{"email": "ada@test.com", "password": "wrong"})
		require.Equal(t, http.StatusUnauthorized, code)
	}
	code, _ := b.do(http.MethodPost, "/auth/login", "/login", gin.H{"email": "ada@test.com", "password": "secret1"})
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestGoogleFlow(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	req, err := http.NewRequest(http.MethodGet, b.base+"/auth/google", nil)
	require.NoError(t, err)
	res, err := b.client.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Contains(t, res.Header.Get("Location"), e.upstream.URL+"/api/auth/google?redirect=")

	// jeton émis par l'API au retour de Google
	_, body := e.browser(t).do(http.MethodPost, "/auth/login", "/login", gin.H{"email": "ada@test.com", "password": "secret1"})
	token := body["user"].(map[string]interface{})["token"].(string)

	code, body := b.do(http.MethodGet, "/auth/google/callback?token="+token, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, token, body["user"].(map[string]interface{})["token"])

	code, body = e.browser(t).do(http.MethodGet, "/auth/google/callback?token=bad", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "/login", body["redirect"])
}

func TestWishlist(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	product := gin.H{"_id": "p1", "name": "Shirt", "price": 20}

	code, _ := b.do(http.MethodPost, "/wishlist", "", gin.H{"product": product})
	assert.Equal(t, http.StatusCreated, code)
	code, body := b.do(http.MethodPost, "/wishlist", "", gin.H{"product": product})
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)

	code, _ = b.do(http.MethodDelete, "/wishlist/p1", "", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = b.do(http.MethodDelete, "/wishlist/p1", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSubscribe(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	code, _ := b.do(http.MethodPost, "/subscribe", "", gin.H{"email": "news@test.com"})
	assert.Equal(t, http.StatusOK, code)

	code, body := b.do(http.MethodPost, "/subscribe", "", gin.H{"email": "news@test.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already subscribed", body["error"])

	code, _ = b.do(http.MethodPost, "/subscribe", "", gin.H{"email": ""})
	assert.Equal(t, http.StatusBadRequest, code)
}
