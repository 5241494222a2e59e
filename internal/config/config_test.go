package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "leaderboard-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "leaderboard-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_StoreDriverParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("memory by default", func(t *testing.T) {
		t.Setenv("SCORE_STORE_DRIVER", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreDriver != StoreDriverMemory {
			t.Fatalf("unexpected default store driver: %q", cfg.StoreDriver)
		}
		if cfg.StoreTimeout != 10*time.Second {
			t.Fatalf("unexpected default store timeout: %s", cfg.StoreTimeout)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Setenv("SCORE_STORE_DRIVER", " Sheet ")
		t.Setenv("SCORE_STORE_ENDPOINT", "https://script.google.com/macros/s/abc/exec")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreDriver != StoreDriverSheet {
			t.Fatalf("unexpected store driver: %q", cfg.StoreDriver)
		}
		if cfg.StoreEndpoint != "https://script.google.com/macros/s/abc/exec" {
			t.Fatalf("unexpected store endpoint: %q", cfg.StoreEndpoint)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("SCORE_STORE_DRIVER", "redis")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown SCORE_STORE_DRIVER")
		}
	})
}

func TestLoad_StoreEndpointValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	tests := []string{"ftp://example.com/exec", "https://", "not a url"}
	for _, endpoint := range tests {
		t.Run(endpoint, func(t *testing.T) {
			t.Setenv("SCORE_STORE_ENDPOINT", endpoint)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for SCORE_STORE_ENDPOINT=%q", endpoint)
			}
		})
	}
}

func TestLoad_StoreCircuitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SCORE_STORE_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for SCORE_STORE_CIRCUIT_FAILURE_COUNT=0")
	}
}

func TestLoad_RefreshAndRateLimitParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.RefreshInterval != 30*time.Second {
			t.Fatalf("unexpected default refresh interval: %s", cfg.RefreshInterval)
		}
		if cfg.RefreshWorkers != 4 {
			t.Fatalf("unexpected default refresh workers: %d", cfg.RefreshWorkers)
		}
		if cfg.WriteRateLimitPerSec != 2 || cfg.WriteRateLimitBurst != 5 {
			t.Fatalf("unexpected default rate limit: %v/%d", cfg.WriteRateLimitPerSec, cfg.WriteRateLimitBurst)
		}
	})

	t.Run("zero rate disables limiting", func(t *testing.T) {
		t.Setenv("WRITE_RATE_LIMIT_PER_SEC", "0")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.WriteRateLimitPerSec != 0 {
			t.Fatalf("expected zero rate, got %v", cfg.WriteRateLimitPerSec)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := map[string]string{
			"REFRESH_INTERVAL":         "-1s",
			"REFRESH_WORKERS":          "0",
			"WRITE_RATE_LIMIT_PER_SEC": "fast",
			"WRITE_RATE_LIMIT_BURST":   "0",
		}
		for key, value := range cases {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, value)
				if _, err := Load(); err == nil {
					t.Fatalf("expected error for %s=%q", key, value)
				}
			})
		}
	})
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	got := parseUptraceDSNFromOTLPHeaders(`foo=bar, uptrace-dsn="https://token@api.uptrace.dev/1"`)
	if got != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected dsn: %q", got)
	}
	if parseUptraceDSNFromOTLPHeaders("") != "" {
		t.Fatalf("expected empty dsn for empty headers")
	}
}
