package main

import (
	"context"
	"time"

	"github.com/ericogr/ninja-arena/internal/service"
)

// runSweeper drops battles idle for longer than ttl until ctx is done. A
// non-positive ttl disables sweeping.
func runSweeper(ctx context.Context, arena *service.Arena, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			arena.Sweep(ttl)
		}
	}
}
