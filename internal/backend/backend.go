// Package backend wraps the managed identity/document/object-storage
// collaborator the storefront delegates to. Callers depend on the
// interfaces here; the Firebase implementations live alongside them.
package backend

import "context"

// Account is the authenticated principal as the identity provider
// reports it.
type Account struct {
	UID   string
	Email string
}

// Record is one user document. Field layout is the application's
// business; the collaborator treats it as opaque.
type Record map[string]any

// Identity is the auth surface. OnAccountChange fires with the new
// account on login and nil on logout; the returned function cancels the
// subscription.
type Identity interface {
	Register(ctx context.Context, email, password string, profile Record) (Account, error)
	Login(ctx context.Context, email, password string, remember bool) (Account, error)
	Logout(ctx context.Context) error
	CurrentAccount() (Account, bool)
	// UpdateEmail and UpdatePassword act on the current account.
	UpdateEmail(ctx context.Context, newEmail string) error
	UpdatePassword(ctx context.Context, newPassword string) error
	OnAccountChange(cb func(*Account)) (cancel func())
}

// Documents is the per-user record store.
type Documents interface {
	// GetUserRecord returns nil with no error when the record does not
	// exist yet.
	GetUserRecord(ctx context.Context, accountID string) (Record, error)
	UpdateUserRecord(ctx context.Context, accountID string, fields Record) error
	// SubscribeUserRecord pushes the full record on every change until
	// the returned cancel function is called.
	SubscribeUserRecord(ctx context.Context, accountID string, cb func(Record)) (cancel func(), err error)
	AppendToUserRecordArray(ctx context.Context, accountID, field string, value any) error
	RemoveFromUserRecordArray(ctx context.Context, accountID, field string, value any) error
}

// Objects is the file store.
type Objects interface {
	UploadFile(ctx context.Context, path string, data []byte, contentType string) (downloadURL string, err error)
}
