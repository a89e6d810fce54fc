package storage

import (
	"context"
	"errors"

	"frylyle/internal/common/logger"
)

// Bridge binds a driver to one device and downgrades every storage
// failure to a safe default. In-memory state is the source of truth for
// the running session; the store is a best-effort mirror, so a failed
// write is logged and ignored and a failed read looks like an absent key.
type Bridge struct {
	driver Driver
	device string
	lg     *logger.Logger
}

func NewBridge(driver Driver, device string, lg *logger.Logger) *Bridge {
	if lg == nil {
		lg = logger.NewNop()
	}
	return &Bridge{driver: driver, device: device, lg: lg}
}

// Read returns the stored value and true, or ("", false) when the key is
// absent or the store is unavailable.
func (b *Bridge) Read(key string) (string, bool) {
	v, err := b.driver.Get(context.Background(), b.device, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			b.lg.Error("bridge_read_failed", err, map[string]any{"device": b.device, "key": key})
		}
		return "", false
	}
	return v, true
}

func (b *Bridge) Write(key, value string) {
	if err := b.driver.Set(context.Background(), b.device, key, value); err != nil {
		b.lg.Error("bridge_write_failed", err, map[string]any{"device": b.device, "key": key})
	}
}

func (b *Bridge) Device() string { return b.device }
