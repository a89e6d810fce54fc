package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"frylyle/internal/storage"
)

type failingDriver struct{}

func (failingDriver) Get(context.Context, string, string) (string, error) {
	return "", errors.New("store down")
}
func (failingDriver) Set(context.Context, string, string, string) error {
	return errors.New("store down")
}
func (failingDriver) Delete(context.Context, string, string) error {
	return errors.New("store down")
}

func newMemory(t *testing.T) *RouteMemory {
	t.Helper()
	return NewRouteMemory(storage.NewBridge(storage.NewMemoryDriver(), "device-1", nil))
}

func TestLastRouteFallback(t *testing.T) {
	r := newMemory(t)
	assert.Equal(t, "/home", r.LastRoute())
}

func TestSaveLastRoute(t *testing.T) {
	r := newMemory(t)
	r.SaveLastRoute("/orders")
	assert.Equal(t, "/orders", r.LastRoute())

	r.SaveLastRoute("/profile")
	assert.Equal(t, "/profile", r.LastRoute())
}

func TestExcludedRoutesAreNotRemembered(t *testing.T) {
	r := newMemory(t)
	r.SaveLastRoute("/orders")
	for _, path := range []string{"/splash", "/welcome", "/signin", "/signup"} {
		r.SaveLastRoute(path)
		assert.Equal(t, "/orders", r.LastRoute(), "path %s must not overwrite", path)
	}
}

func TestExcludedRouteWithNothingStoredKeepsFallback(t *testing.T) {
	r := newMemory(t)
	r.SaveLastRoute("/signin")
	assert.Equal(t, "/home", r.LastRoute())
}

func TestFirstVisitLifecycle(t *testing.T) {
	r := newMemory(t)
	assert.True(t, r.IsFirstVisit())

	r.SetFirstVisitComplete()
	assert.False(t, r.IsFirstVisit())

	r.ResetFirstVisit()
	assert.True(t, r.IsFirstVisit())
}

func TestFirstVisitOnStorageFailure(t *testing.T) {
	r := NewRouteMemory(storage.NewBridge(failingDriver{}, "device-1", nil))
	assert.True(t, r.IsFirstVisit())
	assert.Equal(t, "/home", r.LastRoute())
}

func TestLandingUnauthenticated(t *testing.T) {
	r := newMemory(t)
	assert.Equal(t, "/welcome", r.Landing(false))
	// The decision consumes the first-visit flag even on state A.
	assert.False(t, r.IsFirstVisit())
}

func TestLandingFirstVisit(t *testing.T) {
	r := newMemory(t)
	r.SaveLastRoute("/orders")
	assert.Equal(t, "/home", r.Landing(true))
}

func TestLandingReturningVisit(t *testing.T) {
	r := newMemory(t)
	r.SaveLastRoute("/orders")
	r.SetFirstVisitComplete()
	assert.Equal(t, "/orders", r.Landing(true))
}

func TestLandingReturningVisitWithoutStoredRoute(t *testing.T) {
	r := newMemory(t)
	r.SetFirstVisitComplete()
	assert.Equal(t, "/home", r.Landing(true))
}
