package redis

import (
	"strings"
	"testing"
	"time"

	"github.com/ballonsurprise/backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address is set")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:      "redis://:pw@localhost:6380/2",
		PoolSize: 7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 7 {
		t.Fatalf("expected pool size fallback, got %d", opts.PoolSize)
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}

	if got := c.DeviceUserKey("d1"); got != "bs:device:d1:user" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := c.DeviceCartKey("d1"); got != "bs:device:d1:cart" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := c.AccessSessionKey("abc"); got != "bs:session:abc" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := c.IdempotencyKey("checkout", "k"); got != "bs:idempotency:checkout:k" {
		t.Fatalf("unexpected key %q", got)
	}
	window := time.Unix(1700000000, 0)
	if got := c.RateLimitKey("login", "ip:1.2.3.4", window); !strings.HasPrefix(got, "bs:rate_limit:login:ip:1.2.3.4:") {
		t.Fatalf("unexpected key %q", got)
	}
}
