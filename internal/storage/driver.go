// Package storage implements the device-scoped key-value bridge backing
// cart and session persistence. Drivers are interchangeable: in-memory,
// one JSON document per device on disk, or a Postgres table for hosted
// deployments.
package storage

import (
	"context"
	"errors"
)

// Keys persisted through the bridge. The names match the original web
// client's localStorage entries so a migrated device keeps its state.
const (
	KeyCart       = "cart"
	KeyLastRoute  = "frylyle_last_route"
	KeyFirstVisit = "frylyle_first_visit"
)

var ErrNotFound = errors.New("storage: key not found")

// Driver is the raw store. Implementations return ErrNotFound for absent
// keys and real errors for everything else; the Bridge decides what the
// caller sees.
type Driver interface {
	Get(ctx context.Context, device, key string) (string, error)
	Set(ctx context.Context, device, key, value string) error
	Delete(ctx context.Context, device, key string) error
}
