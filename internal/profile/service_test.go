package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frylyle/internal/backend"
)

type fakeIdentity struct {
	current   *backend.Account
	loggedOut bool
	password  string
}

func (f *fakeIdentity) Register(_ context.Context, email, _ string, _ backend.Record) (backend.Account, error) {
	return backend.Account{UID: "uid-new", Email: email}, nil
}

func (f *fakeIdentity) Login(_ context.Context, email, _ string, _ bool) (backend.Account, error) {
	f.current = &backend.Account{UID: "uid-1", Email: email}
	return *f.current, nil
}

func (f *fakeIdentity) Logout(context.Context) error {
	f.current = nil
	f.loggedOut = true
	return nil
}

func (f *fakeIdentity) CurrentAccount() (backend.Account, bool) {
	if f.current == nil {
		return backend.Account{}, false
	}
	return *f.current, true
}

func (f *fakeIdentity) UpdateEmail(_ context.Context, newEmail string) error {
	if f.current == nil {
		return errors.New("no account")
	}
	f.current.Email = newEmail
	return nil
}

func (f *fakeIdentity) UpdatePassword(_ context.Context, newPassword string) error {
	if f.current == nil {
		return errors.New("no account")
	}
	f.password = newPassword
	return nil
}

func (f *fakeIdentity) OnAccountChange(func(*backend.Account)) func() { return func() {} }

type fakeDocuments struct {
	records map[string]backend.Record
	arrays  map[string][]any
}

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{records: map[string]backend.Record{}, arrays: map[string][]any{}}
}

func (f *fakeDocuments) GetUserRecord(_ context.Context, id string) (backend.Record, error) {
	return f.records[id], nil
}

func (f *fakeDocuments) UpdateUserRecord(_ context.Context, id string, fields backend.Record) error {
	rec := f.records[id]
	if rec == nil {
		rec = backend.Record{}
	}
	for k, v := range fields {
		rec[k] = v
	}
	f.records[id] = rec
	return nil
}

func (f *fakeDocuments) SubscribeUserRecord(_ context.Context, id string, cb func(backend.Record)) (func(), error) {
	cb(f.records[id])
	return func() {}, nil
}

func (f *fakeDocuments) AppendToUserRecordArray(_ context.Context, id, field string, value any) error {
	f.arrays[id+"/"+field] = append(f.arrays[id+"/"+field], value)
	return nil
}

func (f *fakeDocuments) RemoveFromUserRecordArray(_ context.Context, id, field string, value any) error {
	key := id + "/" + field
	out := f.arrays[key][:0]
	for _, v := range f.arrays[key] {
		if !assert.ObjectsAreEqual(v, value) {
			out = append(out, v)
		}
	}
	f.arrays[key] = out
	return nil
}

type fakeObjects struct{ uploaded []string }

func (f *fakeObjects) UploadFile(_ context.Context, path string, _ []byte, _ string) (string, error) {
	f.uploaded = append(f.uploaded, path)
	return "https://cdn.example/" + path, nil
}

func TestRegisterCreatesInitialRecord(t *testing.T) {
	docs := newFakeDocuments()
	svc := NewService(&fakeIdentity{}, docs, &fakeObjects{}, nil)

	acct, err := svc.Register(context.Background(), "a@b.c", "secret", backend.Record{"fullName": "Ada"})
	require.NoError(t, err)

	rec := docs.records[acct.UID]
	require.NotNil(t, rec)
	assert.Equal(t, "a@b.c", rec["email"])
	assert.Equal(t, "Ada", rec["fullName"])
}

func TestLogoutSignsOut(t *testing.T) {
	ident := &fakeIdentity{}
	svc := NewService(ident, newFakeDocuments(), &fakeObjects{}, nil)

	_, err := svc.Login(context.Background(), "a@b.c", "secret", false)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background()))

	assert.True(t, ident.loggedOut)
	_, ok := ident.CurrentAccount()
	assert.False(t, ok)
}

func TestUpdateEmailTouchesIdentityAndRecord(t *testing.T) {
	ident := &fakeIdentity{}
	docs := newFakeDocuments()
	svc := NewService(ident, docs, &fakeObjects{}, nil)

	_, err := svc.Login(context.Background(), "a@b.c", "secret", false)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateEmail(context.Background(), "new@b.c"))
	assert.Equal(t, "new@b.c", ident.current.Email)
	assert.Equal(t, "new@b.c", docs.records["uid-1"]["email"])
}

func TestUpdatePasswordRequiresAuthentication(t *testing.T) {
	ident := &fakeIdentity{}
	svc := NewService(ident, newFakeDocuments(), &fakeObjects{}, nil)

	err := svc.UpdatePassword(context.Background(), "hunter2")
	assert.True(t, errors.Is(err, ErrNotAuthenticated))

	_, err = svc.Login(context.Background(), "a@b.c", "secret", false)
	require.NoError(t, err)
	require.NoError(t, svc.UpdatePassword(context.Background(), "hunter2"))
	assert.Equal(t, "hunter2", ident.password)
}

func TestOperationsRequireAuthentication(t *testing.T) {
	svc := NewService(&fakeIdentity{}, newFakeDocuments(), &fakeObjects{}, nil)

	_, err := svc.Record(context.Background())
	assert.True(t, errors.Is(err, ErrNotAuthenticated))

	err = svc.AddAddress(context.Background(), backend.Record{"city": "Oslo"})
	assert.True(t, errors.Is(err, ErrNotAuthenticated))

	err = svc.UpdateEmail(context.Background(), "new@b.c")
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
}

func TestAddressLifecycle(t *testing.T) {
	ident := &fakeIdentity{}
	docs := newFakeDocuments()
	svc := NewService(ident, docs, &fakeObjects{}, nil)

	_, err := svc.Login(context.Background(), "a@b.c", "secret", false)
	require.NoError(t, err)

	addr := backend.Record{"label": "Home", "city": "Oslo"}
	require.NoError(t, svc.AddAddress(context.Background(), addr))
	assert.Len(t, docs.arrays["uid-1/addresses"], 1)

	require.NoError(t, svc.RemoveAddress(context.Background(), addr))
	assert.Empty(t, docs.arrays["uid-1/addresses"])
}

func TestUploadProfilePictureUpdatesRecord(t *testing.T) {
	ident := &fakeIdentity{}
	docs := newFakeDocuments()
	objs := &fakeObjects{}
	svc := NewService(ident, docs, objs, nil)

	_, err := svc.Login(context.Background(), "a@b.c", "secret", false)
	require.NoError(t, err)

	url, err := svc.UploadProfilePicture(context.Background(), "me.png", []byte{1, 2}, "image/png")
	require.NoError(t, err)
	assert.Contains(t, url, "profile_images/uid-1/")
	assert.Equal(t, url, docs.records["uid-1"]["profileImage"])
	require.Len(t, objs.uploaded, 1)
}
