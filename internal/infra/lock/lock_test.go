package lock

import (
	"context"
	"testing"
)

func TestNew_EmptyURLIsNop(t *testing.T) {
	l, err := New("", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := l.(NopDayLocker); !ok {
		t.Fatalf("expected NopDayLocker, got %T", l)
	}

	release, err := l.Acquire(context.Background(), 1, "2026-03-02")
	if err != nil {
		t.Fatalf("nop acquire failed: %v", err)
	}
	release()
}

func TestNew_InvalidURL(t *testing.T) {
	if _, err := New("not a url", 0); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNew_RedisURL(t *testing.T) {
	l, err := New("redis://localhost:6379/0", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rl, ok := l.(*RedisDayLocker)
	if !ok {
		t.Fatalf("expected RedisDayLocker, got %T", l)
	}
	if rl.ttl <= 0 || rl.attempts <= 0 {
		t.Fatalf("defaults not applied: %+v", rl)
	}
}

func TestKey(t *testing.T) {
	if got := key(7, "2026-03-02"); got != "salon:7:day-hold:2026-03-02" {
		t.Fatalf("unexpected key %s", got)
	}
}
