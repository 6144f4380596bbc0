package api_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/auth"
	"github.com/kbukum/authgate/auth/credential"
	"github.com/kbukum/authgate/auth/jwt"
	"github.com/kbukum/authgate/auth/password"
	"github.com/kbukum/authgate/internal/api"
	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/server"
	"github.com/kbukum/authgate/server/middleware"
)

var start = time.Date(2026, 6, 1, 12, 0, 0, 123_000_000, time.UTC)

type testAPI struct {
	handler http.Handler
	clock   *time.Time
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	now := start
	clock := func() time.Time { return now }

	hasher := password.New(password.Config{BcryptCost: 4})
	store, err := credential.NewStoreFromSeeds([]credential.Seed{
		{ID: 1, Username: "admin", Password: "admin123"},
		{ID: 2, Username: "operator", Password: "op-secret-1"},
	}, hasher)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	tokens, err := jwt.NewService(&jwt.Config{Secret: "api-test-secret"}, auth.NewClaims, jwt.WithClock(clock))
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	authenticator, err := auth.NewAuthenticator(store, hasher, tokens, auth.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("authenticator: %v", err)
	}

	cfg := server.Config{}
	cfg.ApplyDefaults()
	srv := server.New(cfg, logger.NewNop())
	gin.SetMode(gin.TestMode)
	srv.ApplyMiddleware(nil)

	h := api.NewHandler(authenticator, "authgate", api.WithClock(clock))
	h.Register(srv.GinEngine(), middleware.Auth(tokens, logger.NewNop()))

	return &testAPI{handler: srv.Handler(), clock: &now}
}

func (a *testAPI) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *testAPI) login(t *testing.T, username, pw string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": pw})
	rr := a.do(t, "POST", "/login", string(body), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rr.Code, rr.Body.String())
	}
	var resp api.LoginResponse
	decode(t, rr, &resp)
	return resp.Token
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid JSON %q: %v", rr.Body.String(), err)
	}
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rr.Code, rr.Body.String())
	}
	var body map[string]any
	decode(t, rr, &body)
	if len(body) != 1 || body["error"] != msg {
		t.Errorf("expected {\"error\":%q}, got %s", msg, rr.Body.String())
	}
}

func TestRoot(t *testing.T) {
	a := newTestAPI(t)
	rr := a.do(t, "GET", "/", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp api.RootResponse
	decode(t, rr, &resp)
	if resp.Message != "authgate API" || resp.Status != "running" {
		t.Errorf("unexpected body %+v", resp)
	}
	if resp.Timestamp != "2026-06-01T12:00:00.123Z" {
		t.Errorf("unexpected timestamp %q", resp.Timestamp)
	}
}

func TestLoginThenProtectedRoutes(t *testing.T) {
	a := newTestAPI(t)

	rr := a.do(t, "POST", "/login", `{"username":"admin","password":"admin123"}`, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var login api.LoginResponse
	decode(t, rr, &login)
	if login.Message != "Login successful" || login.Token == "" {
		t.Fatalf("unexpected login body %+v", login)
	}
	if login.User.ID != 1 || login.User.Username != "admin" {
		t.Errorf("unexpected user %+v", login.User)
	}

	rr = a.do(t, "GET", "/data", "", login.Token)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on /data, got %d", rr.Code)
	}
	var data api.DataResponse
	decode(t, rr, &data)
	if data.Message != "Data retrieved successfully" || data.User != "admin" {
		t.Errorf("unexpected data body %+v", data)
	}
	if len(data.Data) != 3 {
		t.Fatalf("expected 3 items, got %d", len(data.Data))
	}
	for i, item := range data.Data {
		if item.ID != i+1 || item.Name != "Item "+string(rune('1'+i)) {
			t.Errorf("unexpected item %d: %+v", i, item)
		}
	}
	if data.Data[0].Description != "First item" || data.Data[2].Description != "Third item" {
		t.Errorf("unexpected descriptions %+v", data.Data)
	}

	rr = a.do(t, "GET", "/profile", "", login.Token)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on /profile, got %d", rr.Code)
	}
	var profile struct {
		Message string         `json:"message"`
		User    map[string]any `json:"user"`
	}
	decode(t, rr, &profile)
	if profile.Message != "Protected route accessed successfully" {
		t.Errorf("unexpected message %q", profile.Message)
	}
	if profile.User["username"] != "admin" || profile.User["id"] != float64(1) {
		t.Errorf("unexpected user %v", profile.User)
	}
	if profile.User["iat"] != float64(start.Unix()) || profile.User["exp"] != float64(start.Add(24*time.Hour).Unix()) {
		t.Errorf("expected iat/exp from the token, got %v", profile.User)
	}
}

func TestProfileReflectsSubmittedUsername(t *testing.T) {
	a := newTestAPI(t)
	for _, tc := range []struct{ user, pw string }{{"admin", "admin123"}, {"operator", "op-secret-1"}} {
		token := a.login(t, tc.user, tc.pw)
		var profile api.ProfileResponse
		decode(t, a.do(t, "GET", "/profile", "", token), &profile)
		if profile.User == nil || profile.User.Username != tc.user {
			t.Errorf("expected profile for %s, got %+v", tc.user, profile.User)
		}
	}
}

func TestDataIsIdempotent(t *testing.T) {
	a := newTestAPI(t)
	token := a.login(t, "admin", "admin123")

	var first, second api.DataResponse
	decode(t, a.do(t, "GET", "/data", "", token), &first)
	*a.clock = a.clock.Add(time.Minute)
	decode(t, a.do(t, "GET", "/data", "", token), &second)

	a1, _ := json.Marshal(first.Data)
	a2, _ := json.Marshal(second.Data)
	if !bytes.Equal(a1, a2) {
		t.Errorf("expected identical data arrays, got %s and %s", a1, a2)
	}
	if first.Timestamp == second.Timestamp {
		t.Error("expected the timestamp to move with the clock")
	}
}

func TestLoginRejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"wrong password", `{"username":"admin","password":"wrong"}`, 401, "Invalid credentials"},
		{"empty password", `{"username":"admin","password":""}`, 401, "Invalid credentials"},
		{"unknown user", `{"username":"ghost","password":"admin123"}`, 401, "Invalid credentials"},
		{"username case differs", `{"username":"Admin","password":"admin123"}`, 401, "Invalid credentials"},
		{"missing password", `{"username":"admin"}`, 400, "Username and password are required"},
		{"missing username", `{"password":"admin123"}`, 400, "Username and password are required"},
		{"null password", `{"username":"admin","password":null}`, 400, "Username and password are required"},
		{"empty object", `{}`, 400, "Username and password are required"},
		{"not json", `username=admin`, 400, "Username and password are required"},
		{"wrong type", `{"username":1,"password":"admin123"}`, 400, "Username and password are required"},
	}
	a := newTestAPI(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expectError(t, a.do(t, "POST", "/login", tc.body, ""), tc.status, tc.msg)
		})
	}
}

func TestLoginEmptyBody(t *testing.T) {
	a := newTestAPI(t)
	expectError(t, a.do(t, "POST", "/login", "", ""), 400, "Username and password are required")
}

func TestUnknownUserAndWrongPasswordIdentical(t *testing.T) {
	a := newTestAPI(t)
	unknown := a.do(t, "POST", "/login", `{"username":"ghost","password":"x"}`, "")
	wrong := a.do(t, "POST", "/login", `{"username":"admin","password":"x"}`, "")
	if unknown.Code != wrong.Code || unknown.Body.String() != wrong.Body.String() {
		t.Errorf("responses differ: %d %s vs %d %s", unknown.Code, unknown.Body, wrong.Code, wrong.Body)
	}
}

func TestProtectedRoutesWithoutToken(t *testing.T) {
	a := newTestAPI(t)
	token := a.login(t, "admin", "admin123")
	headers := []string{"Token abc", "Bearer   ", "Bearer " + token + " extra"}

	for _, path := range []string{"/profile", "/data"} {
		expectError(t, a.do(t, "GET", path, "", ""), 401, "Access token required")

		for _, h := range headers {
			req := httptest.NewRequest("GET", path, http.NoBody)
			req.Header.Set("Authorization", h)
			rr := httptest.NewRecorder()
			a.handler.ServeHTTP(rr, req)
			expectError(t, rr, 401, "Access token required")
		}
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	a := newTestAPI(t)
	token := a.login(t, "admin", "admin123")

	*a.clock = start.Add(24*time.Hour - time.Second)
	if rr := a.do(t, "GET", "/data", "", token); rr.Code != http.StatusOK {
		t.Fatalf("expected token to be valid just before expiry, got %d", rr.Code)
	}

	*a.clock = start.Add(24*time.Hour + time.Second)
	for _, path := range []string{"/profile", "/data"} {
		expectError(t, a.do(t, "GET", path, "", token), 403, "Invalid or expired token")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	a := newTestAPI(t)
	token := a.login(t, "admin", "admin123")
	parts := strings.Split(token, ".")

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	tampered := bytes.Replace(payload, []byte(`"username":"admin"`), []byte(`"username":"admiN"`), 1)
	if bytes.Equal(tampered, payload) {
		t.Fatalf("payload did not contain the username claim: %s", payload)
	}
	forged := parts[0] + "." + base64.RawURLEncoding.EncodeToString(tampered) + "." + parts[2]

	for _, path := range []string{"/profile", "/data"} {
		expectError(t, a.do(t, "GET", path, "", forged), 403, "Invalid or expired token")
	}
	expectError(t, a.do(t, "GET", "/data", "", "garbage"), 403, "Invalid or expired token")
}

func TestNotFound(t *testing.T) {
	a := newTestAPI(t)
	expectError(t, a.do(t, "GET", "/missing", "", ""), 404, "Route not found")
	expectError(t, a.do(t, "GET", "/login", "", ""), 404, "Route not found")
}

func TestNoRedirectsForOddPaths(t *testing.T) {
	a := newTestAPI(t)
	token := a.login(t, "admin", "admin123")
	for _, path := range []string{"//data", "/data/", "/profile/", "/./data", "/x/../data"} {
		t.Run(path, func(t *testing.T) {
			rr := a.do(t, "GET", path, "", token)
			if rr.Code >= 300 && rr.Code < 400 {
				t.Fatalf("expected no redirect, got %d (Location %q)", rr.Code, rr.Header().Get("Location"))
			}
			expectError(t, rr, 404, "Route not found")
		})
	}
}

func TestHandlerWithoutGateFailsClosed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := api.NewHandler(nil, "authgate")
	engine.GET("/profile", h.Profile)

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest("GET", "/profile", http.NoBody))
	expectError(t, rr, 500, "Internal server error")
}
