package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/presenters"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	app *fiber.App
	cfg *config.Config
)

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

func setup() {
	cfg = &config.Config{
		JWTSecret:       "testsecret",
		JWTTTL:          time.Hour,
		AllowOrigins:    "*",
		CatalogPageSize: 12,
		ListPageSize:    10,
		MaxPageSize:     50,
	}

	data, err := store.LoadFixturesWithCost(bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	logger := utils.NopLogger()
	p := presenters.New(store.NewMemory(data), logger,
		presenters.Options{CatalogPageSize: cfg.CatalogPageSize, ListPageSize: cfg.ListPageSize, MaxPageSize: cfg.MaxPageSize},
		presenters.AuthOptions{JWTSecret: cfg.JWTSecret, TokenTTL: cfg.JWTTTL},
	)
	app = NewApp(Deps{Presenters: p, Logger: logger, Cfg: cfg})
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWTToken(userID, role, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

// call sends a request and decodes the JSON envelope.
func call(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func data(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "no data in %v", result)
	return d
}

func TestHealth(t *testing.T) {
	status, result := call(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, result["success"])
}

func TestLogin(t *testing.T) {
	status, result := call(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alex@example.com",
		"password": "learnhub-demo",
	})
	require.Equal(t, fiber.StatusOK, status)
	login := data(t, result)
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "stu-001", login["user"].(map[string]interface{})["id"])

	// the issued token opens the student area
	status, result = call(t, http.MethodGet, "/api/me/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "stu-001", data(t, result)["student"].(map[string]interface{})["id"])
}

func TestLoginFailures(t *testing.T) {
	status, result := call(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alex@example.com",
		"password": "nope",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, false, result["success"])

	status, result = call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nope"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, result["details"], "password")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCatalogOverHTTP(t *testing.T) {
	status, result := call(t, http.MethodGet, "/api/courses?categoryId=cat-002&sort=price-low&page=1&pageSize=12", "", nil)
	require.Equal(t, fiber.StatusOK, status)

	list := data(t, result)
	items := list["items"].([]interface{})
	require.Len(t, items, 5)
	assert.Equal(t, "course-005", items[0].(map[string]interface{})["id"])

	meta := result["meta"].(map[string]interface{})
	assert.Equal(t, float64(5), meta["totalCount"])
	assert.Equal(t, float64(1), meta["totalPages"])

	status, result = call(t, http.MethodGet, "/api/courses?featured=true&minPrice=900", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), result["meta"].(map[string]interface{})["totalCount"])

	status, result = call(t, http.MethodGet, "/api/courses?page=9223372036854775807", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, data(t, result)["items"])

	status, result = call(t, http.MethodGet, "/api/courses?sort=cheapest", "", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, result["details"], "sort")
}

func TestPublicPages(t *testing.T) {
	paths := []string{
		"/api/courses/filters",
		"/api/courses/go-for-backend-engineers",
		"/api/instructors/inst-002",
		"/api/community/posts",
		"/api/community/posts/post-006",
		"/api/faq?search=refund",
		"/api/about",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			status, result := call(t, http.MethodGet, path, "", nil)
			assert.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, true, result["success"])
		})
	}
}

func TestNotFound(t *testing.T) {
	status, result := call(t, http.MethodGet, "/api/courses/no-such-course", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, result["success"])

	status, _ = call(t, http.MethodGet, "/api/instructors/inst-404", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = call(t, http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	// valid token, but the student is gone
	status, _ = call(t, http.MethodGet, "/api/me/dashboard", tokenFor(t, "stu-404", "student"), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAccessControl(t *testing.T) {
	student := tokenFor(t, "stu-001", "student")
	instructor := tokenFor(t, "inst-002", "instructor")

	cases := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"student area without token", "/api/me/courses", "", fiber.StatusUnauthorized},
		{"student area as instructor", "/api/me/courses", instructor, fiber.StatusForbidden},
		{"student area as student", "/api/me/courses?status=completed", student, fiber.StatusOK},
		{"leaderboard as student", "/api/leaderboard", student, fiber.StatusOK},
		{"leaderboard as instructor", "/api/leaderboard", instructor, fiber.StatusForbidden},
		{"instructor area as student", "/api/instructor/dashboard", student, fiber.StatusForbidden},
		{"instructor area as instructor", "/api/instructor/dashboard", instructor, fiber.StatusOK},
		{"analytics", "/api/instructor/analytics", instructor, fiber.StatusOK},
		{"reviews", "/api/instructor/reviews?rating=5", instructor, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := call(t, http.MethodGet, tc.path, tc.token, nil)
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestStudentPages(t *testing.T) {
	token := tokenFor(t, "stu-001", "student")

	status, result := call(t, http.MethodGet, "/api/me/courses?status=completed", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	items := data(t, result)["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "enr-003", items[0].(map[string]interface{})["enrollmentId"])

	status, result = call(t, http.MethodGet, "/api/leaderboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	current := data(t, result)["currentUser"].(map[string]interface{})
	assert.Equal(t, float64(3), current["rank"])

	status, _ = call(t, http.MethodGet, "/api/me/certificates/cert-002", token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, result = call(t, http.MethodGet, "/api/me/achievements?category=streak", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "streak", data(t, result)["category"])
}

func TestStubActions(t *testing.T) {
	student := tokenFor(t, "stu-001", "student")
	instructor := tokenFor(t, "inst-002", "instructor")

	status, result := call(t, http.MethodPost, "/api/me/wishlist/course-012", student, nil)
	require.Equal(t, fiber.StatusAccepted, status)
	assert.Equal(t, false, data(t, result)["persisted"])

	status, _ = call(t, http.MethodDelete, "/api/me/wishlist/course-999", student, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, result = call(t, http.MethodGet, "/api/me/wishlist", student, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(3), data(t, result)["count"])

	status, result = call(t, http.MethodPut, "/api/me/settings", student, map[string]interface{}{
		"name":        "Alex",
		"preferences": map[string]interface{}{"language": "xx", "playbackSpeed": 1},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, result["details"], "language")

	status, _ = call(t, http.MethodPost, "/api/instructor/reviews/rev-003/reply", instructor, map[string]string{"reply": "Thank you!"})
	assert.Equal(t, fiber.StatusAccepted, status)

	status, result = call(t, http.MethodPost, "/api/instructor/withdrawals", instructor, map[string]interface{}{"amount": 100, "method": "bank"})
	require.Equal(t, fiber.StatusAccepted, status)
	assert.NotEmpty(t, data(t, result)["id"])

	status, _ = call(t, http.MethodPost, "/api/community/posts", "", map[string]string{"title": "Hello world"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, result = call(t, http.MethodPost, "/api/community/posts", instructor, map[string]string{"title": "Hi"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, result["details"], "title")

	status, _ = call(t, http.MethodPost, "/api/community/posts/post-006/like", student, nil)
	assert.Equal(t, fiber.StatusAccepted, status)

	status, _ = call(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Jamie", "email": "jamie@example.com", "subject": "Hello", "message": "Just saying hello to the team.",
	})
	assert.Equal(t, fiber.StatusAccepted, status)
}
