package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)
	s.RequireAuth("hunter2")

	c, err := OpenRedis(RedisOptions{Addr: s.Addr(), Password: "hunter2", DB: 2})
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.Set(ctx, "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET err: %v", err)
	}
	if v, err := c.Get(ctx, "k").Result(); err != nil || v != "v" {
		t.Fatalf("GET = %q, %v", v, err)
	}
	if err := Checker(c)(ctx); err != nil {
		t.Fatalf("Checker on a live server: %v", err)
	}

	s.Close()
	if err := Checker(c)(ctx); err == nil {
		t.Fatal("Checker should fail once the server is gone")
	}
}

func TestOpenRedis_Failure(t *testing.T) {
	if _, err := OpenRedis(RedisOptions{Addr: "not-a-real-host:6379"}); err == nil {
		t.Fatal("expected error for unresolvable host")
	}

	s := miniredis.RunT(t)
	s.RequireAuth("hunter2")
	if _, err := OpenRedis(RedisOptions{Addr: s.Addr(), Password: "wrong"}); err == nil {
		t.Fatal("expected auth error")
	}
}
