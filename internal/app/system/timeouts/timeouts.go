// Package timeouts provides centralized timeout values for handler operations.
//
// Handlers wrap their database and file-store work in context.WithTimeout
// using these values, so a stalled disk or Mongo call cannot hang a request
// forever.
//
//   - Ping: health checks
//   - Short: single-document reads
//   - Medium: list queries and single-document writes
//   - Long: multi-step writes (ledger commit with retries, cascading deletes)
//   - Transfer: moving attachment bytes to or from the file store
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing     = 2 * time.Second
	DefaultShort    = 5 * time.Second
	DefaultMedium   = 10 * time.Second
	DefaultLong     = 30 * time.Second
	DefaultTransfer = 5 * time.Minute
)

var mu sync.RWMutex

var (
	ping     = DefaultPing
	short    = DefaultShort
	medium   = DefaultMedium
	long     = DefaultLong
	transfer = DefaultTransfer
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for multi-step writes.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Transfer returns the timeout for streaming attachment bytes.
func Transfer() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return transfer
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping     time.Duration
	Short    time.Duration
	Medium   time.Duration
	Long     time.Duration
	Transfer time.Duration
}

// Configure sets custom timeout values. Zero values keep the current value.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
	if cfg.Transfer > 0 {
		transfer = cfg.Transfer
	}
}

// Reset restores all timeouts to their default values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
	transfer = DefaultTransfer
}

// Current returns the active configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Short: short, Medium: medium, Long: long, Transfer: transfer}
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_MEDIUM,
// TIMEOUT_LONG and TIMEOUT_TRANSFER (Go duration strings). Unset or invalid
// values are ignored. Returns how many values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	n := 0
	for _, e := range []struct {
		name string
		dst  *time.Duration
	}{
		{"TIMEOUT_PING", &cfg.Ping},
		{"TIMEOUT_SHORT", &cfg.Short},
		{"TIMEOUT_MEDIUM", &cfg.Medium},
		{"TIMEOUT_LONG", &cfg.Long},
		{"TIMEOUT_TRANSFER", &cfg.Transfer},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*e.dst = d
			n++
		}
	}
	Configure(cfg)
	return n
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the deadline was hit.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Transfer(), h.Log, "attachment upload")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
