package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "JWT_SECRET", "SESSION_TTL", "HTTP_TIMEOUT", "COOKIE_NAME", "NODE_ENV"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Port != "5175" || c.LogLevel != "info" || c.CookieName != "logik_session" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.SessionTTL != 24*time.Hour || c.HTTPTimeout != 10*time.Second || c.Production {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("HTTP_TIMEOUT", "3")
	t.Setenv("NODE_ENV", "production")
	c := FromEnv()
	if c.Port != "9000" || c.SessionTTL != 90*time.Minute || c.HTTPTimeout != 3*time.Second || !c.Production {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestGetDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	if d := FromEnv().SessionTTL; d != 24*time.Hour {
		t.Fatalf("SessionTTL = %v; want default", d)
	}
}
