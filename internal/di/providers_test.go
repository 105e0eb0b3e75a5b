package di

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/osama171998/minna-app/internal/config"
	"github.com/osama171998/minna-app/internal/observability"
)

func TestProvideHTTPServer(t *testing.T) {
	cfg := &config.Config{HTTPPort: "9999"}
	srv := provideHTTPServer(cfg, nil)
	if srv.Addr != ":9999" {
		t.Fatalf("unexpected addr: %s", srv.Addr)
	}
	if srv.ReadTimeout.Seconds() != 10 {
		t.Fatalf("unexpected read timeout: %v", srv.ReadTimeout)
	}
}

func TestProvideRedisClientDisabled(t *testing.T) {
	cfg := &config.Config{RateLimitRedisEnabled: false}
	if client := provideRedisClient(cfg); client != nil {
		t.Fatal("expected nil redis client when distributed rate limiting is disabled")
	}
}

func TestProvideRedisClientEnabled(t *testing.T) {
	cfg := &config.Config{RateLimitRedisEnabled: true, RedisAddr: "localhost:6379"}
	client := provideRedisClient(cfg)
	if client == nil {
		t.Fatal("expected redis client when distributed rate limiting is enabled")
	}
	_ = client.Close()
}

func TestProvideJWTManagerRejectsUnknownAlgorithm(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:    "abcdefghijklmnopqrstuvwxyz123456",
		JWTAlgorithm: "RS256",
	}
	if _, err := provideJWTManager(cfg); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
}

func TestProvideAuthRateLimiterLocalFallback(t *testing.T) {
	cfg := &config.Config{AuthRateLimitPerMin: 1}
	rl := provideAuthRateLimiter(cfg, nil)
	if rl == nil {
		t.Fatal("expected auth rate limiter")
	}
}

func TestProvideReadinessProbeRunnerWithoutDependencies(t *testing.T) {
	cfg := &config.Config{ReadinessProbeTimeout: time.Second}
	runner := provideReadinessProbeRunner(cfg, nil, nil)
	if runner == nil {
		t.Fatal("expected probe runner")
	}
}

func TestProvideApp(t *testing.T) {
	cfg := &config.Config{HTTPPort: "8080"}
	logger := slog.Default()
	srv := &http.Server{Addr: ":8080", ReadHeaderTimeout: time.Second}
	runtime := &observability.Runtime{}

	a := provideApp(cfg, logger, srv, runtime, nil, nil, nil)
	if a == nil {
		t.Fatal("expected app")
	}
	if a.Config != cfg || a.Logger != logger || a.Server != srv || a.Observability != runtime {
		t.Fatal("app dependencies not wired as expected")
	}
}
