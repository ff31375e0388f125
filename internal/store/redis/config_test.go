package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/startpage/internal/store"
)

// newTestClient connects to the Redis named by STARTPAGE_TEST_REDIS_ADDR, or skips.
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("STARTPAGE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STARTPAGE_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis at %s unavailable: %v", addr, err)
	}
	t.Cleanup(func() {
		_ = client.Del(context.Background(), ConfigKey()).Err()
		_ = client.Close()
	})
	return client
}

func TestStoreRoundTrip(t *testing.T) {
	client := newTestClient(t)
	s := NewStore(client)
	ctx := context.Background()

	if err := client.Del(ctx, ConfigKey()).Err(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Load() on empty key error = %v, want ErrNotFound", err)
	}

	doc := []byte(`{"wallpaper":"x","categories":[]}`)
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("Load() = %s, want %s", got, doc)
	}

	ttl, err := client.TTL(ctx, ConfigKey()).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl != -1 {
		t.Errorf("TTL = %v, want no expiry", ttl)
	}

	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestConfigKey(t *testing.T) {
	if ConfigKey() != "startpage:config" {
		t.Errorf("ConfigKey() = %q", ConfigKey())
	}
}
