package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/youth-league/internal/config"
	"github.com/riskibarqy/youth-league/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		StorageDriver:      config.StorageMemory,
		CORSAllowedOrigins: []string{"*"},
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		AuthJWTSecret:      "app-test-secret",
		ImportWorkers:      2,
		PreviewRowLimit:    5,
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	cfg := memoryConfig()
	srv, cleanup, err := NewHTTPServer(t.Context(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	t.Cleanup(func() {
		if err := cleanup(); err != nil {
			t.Errorf("cleanup: %v", err)
		}
	})

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtauth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "director@example.com",
		Role:  "Director",
	}).SignedString([]byte(cfg.AuthJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), memory.SeasonIDSpring2026) {
		t.Fatalf("expected seeded season in body: %s", rec.Body.String())
	}
}

func TestNewHTTPServer_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	if _, _, err := NewHTTPServer(t.Context(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewHTTPServer_RequiresJWTSecret(t *testing.T) {
	cfg := memoryConfig()
	cfg.AuthJWTSecret = ""

	if _, _, err := NewHTTPServer(t.Context(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error")
	}
}
