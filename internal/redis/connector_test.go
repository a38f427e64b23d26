package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/MrSnakeDoc/awareness/internal/logger"
)

func testOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:           addr,
		DialTimeout:    100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
		PoolSize:       2,
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    100 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestConnectOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConnectOptions)
	}{
		{"empty addr", func(o *ConnectOptions) { o.Addr = "" }},
		{"connect timeout", func(o *ConnectOptions) { o.ConnectTimeout = 0 }},
		{"retry interval", func(o *ConnectOptions) { o.RetryInterval = 0 }},
		{"max wait", func(o *ConnectOptions) { o.MaxWait = -time.Second }},
		{"ping timeout", func(o *ConnectOptions) { o.PingTimeout = 0 }},
		{"warn threshold", func(o *ConnectOptions) { o.WarnThreshold = -1 }},
	}

	if err := testOptions("localhost:6379").Validate(); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions("localhost:6379")
			tt.mutate(&opts)
			if err := opts.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), testOptions(mr.Addr()), logger.NewNop())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Errorf("client unusable: %v", err)
	}
}

func TestConnectGivesUp(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	if err := mr.Start(); err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	if _, err := Connect(context.Background(), testOptions(addr), logger.NewNop()); err == nil {
		t.Fatal("expected error for unreachable redis")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Connect took %v, should stop at ConnectTimeout", elapsed)
	}
}
