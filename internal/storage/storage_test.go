package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDriverRoundTrip(t *testing.T) {
	d := NewMemoryDriver()
	ctx := context.Background()

	_, err := d.Get(ctx, "dev", "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, d.Set(ctx, "dev", "k", "v"))
	v, err := d.Get(ctx, "dev", "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	// Devices are isolated.
	_, err = d.Get(ctx, "other", "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, d.Delete(ctx, "dev", "k"))
	_, err = d.Get(ctx, "dev", "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileDriverRoundTripAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	d1, err := NewFileDriver(dir)
	require.NoError(t, err)
	require.NoError(t, d1.Set(ctx, "dev", KeyCart, `[{"id":"a"}]`))
	require.NoError(t, d1.Set(ctx, "dev", KeyLastRoute, "/orders"))

	d2, err := NewFileDriver(dir)
	require.NoError(t, err)
	v, err := d2.Get(ctx, "dev", KeyLastRoute)
	require.NoError(t, err)
	assert.Equal(t, "/orders", v)
}

func TestFileDriverSanitizesDeviceID(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	d, err := NewFileDriver(dir)
	require.NoError(t, err)
	require.NoError(t, d.Set(ctx, "../../etc/passwd", "k", "v"))

	v, err := d.Get(ctx, "../../etc/passwd", "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

type failingDriver struct{ err error }

func (f failingDriver) Get(context.Context, string, string) (string, error) { return "", f.err }
func (f failingDriver) Set(context.Context, string, string, string) error  { return f.err }
func (f failingDriver) Delete(context.Context, string, string) error       { return f.err }

func TestBridgeSwallowsDriverFailures(t *testing.T) {
	b := NewBridge(failingDriver{err: errors.New("store down")}, "dev", nil)

	v, ok := b.Read(KeyCart)
	assert.False(t, ok)
	assert.Empty(t, v)

	// Must not panic or surface anything.
	b.Write(KeyCart, "[]")
}

func TestBridgeReadWrite(t *testing.T) {
	b := NewBridge(NewMemoryDriver(), "dev", nil)

	_, ok := b.Read(KeyFirstVisit)
	assert.False(t, ok)

	b.Write(KeyFirstVisit, "false")
	v, ok := b.Read(KeyFirstVisit)
	assert.True(t, ok)
	assert.Equal(t, "false", v)
}
