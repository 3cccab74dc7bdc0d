package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecret"

func newTestApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(LoggingMiddleware(utils.NopLogger()))
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": CurrentUserID(c), "role": CurrentRole(c)})
	})
	app.Get("/", handlers...)
	return app
}

func token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWTToken(userID, role, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp(AuthMiddleware(testSecret))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", fiber.StatusUnauthorized},
		{"bearer", "Bearer " + token(t, "stu-001", "student"), fiber.StatusOK},
		{"bare token", token(t, "stu-001", "student"), fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestAuthMiddlewareRejectsForeignSecret(t *testing.T) {
	app := newTestApp(AuthMiddleware(testSecret))

	foreign, err := utils.GenerateJWTToken("stu-001", "student", "other", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRoleMiddleware(t *testing.T) {
	app := newTestApp(AuthMiddleware(testSecret), RoleMiddleware("instructor"))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "stu-001", "student"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "inst-001", "instructor"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLoggingMiddlewareRequestID(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-42", resp.Header.Get(HeaderRequestID))
}

func TestRateLimiterDisabled(t *testing.T) {
	var rl *RateLimiter
	app := newTestApp(rl.Limit("test", 1, time.Minute))

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	app := newTestApp(NewRateLimiter(client, nil).Limit("test", 1, time.Minute))
	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil), 2000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestRateLimiterWithRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Del(context.Background(), "rate_limit:redis-test:0.0.0.0").Err())

	app := newTestApp(NewRateLimiter(client, nil).Limit("redis-test", 2, time.Minute))
	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
		if resp.StatusCode == fiber.StatusTooManyRequests {
			assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))
		}
	}
	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, statuses)
}

// flakyRedis fails the first EXPIRE and reports a missing expiry until one
// succeeds.
type flakyRedis struct {
	redis.Cmdable
	count       int64
	expireCalls int
	armed       bool
}

func (f *flakyRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.count++
	return redis.NewIntResult(f.count, nil)
}

func (f *flakyRedis) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expireCalls++
	if f.expireCalls == 1 {
		return redis.NewBoolResult(false, errors.New("i/o timeout"))
	}
	f.armed = true
	return redis.NewBoolResult(true, nil)
}

func (f *flakyRedis) TTL(ctx context.Context, key string) *redis.DurationCmd {
	if !f.armed {
		return redis.NewDurationResult(-1, nil)
	}
	return redis.NewDurationResult(30*time.Second, nil)
}

func TestRateLimiterRearmsLostWindow(t *testing.T) {
	client := &flakyRedis{}
	app := newTestApp(NewRateLimiter(client, nil).Limit("rearm", 1, time.Minute))

	statuses := make([]int, 0, 3)
	retryAfter := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
		retryAfter = append(retryAfter, resp.Header.Get(fiber.HeaderRetryAfter))
	}

	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusTooManyRequests, fiber.StatusTooManyRequests}, statuses)
	assert.Equal(t, []string{"", "60", "30"}, retryAfter)
	assert.True(t, client.armed)
	// once armed, the window is left alone
	assert.Equal(t, 2, client.expireCalls)
}
