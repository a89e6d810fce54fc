// Package profile is the auth/profile layer on top of the managed
// backend: account lifecycle, the per-user client record, addresses and
// profile pictures.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"frylyle/internal/backend"
	"frylyle/internal/common/logger"
)

var ErrNotAuthenticated = errors.New("profile: no authenticated account")

type Service struct {
	identity  backend.Identity
	documents backend.Documents
	objects   backend.Objects
	lg        *logger.Logger
}

func NewService(identity backend.Identity, documents backend.Documents, objects backend.Objects, lg *logger.Logger) *Service {
	if lg == nil {
		lg = logger.NewNop()
	}
	return &Service{identity: identity, documents: documents, objects: objects, lg: lg}
}

// Register creates the account and its initial client record.
func (s *Service) Register(ctx context.Context, email, password string, profile backend.Record) (backend.Account, error) {
	acct, err := s.identity.Register(ctx, email, password, profile)
	if err != nil {
		return backend.Account{}, err
	}
	record := backend.Record{"uid": acct.UID, "email": acct.Email, "createdAt": time.Now().UTC()}
	for k, v := range profile {
		record[k] = v
	}
	if err := s.documents.UpdateUserRecord(ctx, acct.UID, record); err != nil {
		return backend.Account{}, fmt.Errorf("initial client record: %w", err)
	}
	s.lg.Info("user_registered", map[string]any{"uid": acct.UID})
	return acct, nil
}

func (s *Service) Login(ctx context.Context, email, password string, remember bool) (backend.Account, error) {
	acct, err := s.identity.Login(ctx, email, password, remember)
	if err != nil {
		return backend.Account{}, err
	}
	s.lg.Info("user_logged_in", map[string]any{"uid": acct.UID})
	return acct, nil
}

// Logout signs the account out. The storefront resets the device's
// first-visit flag on this path so the next launch re-runs the landing
// decision.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.identity.Logout(ctx); err != nil {
		return err
	}
	s.lg.Info("user_logged_out", nil)
	return nil
}

func (s *Service) Record(ctx context.Context) (backend.Record, error) {
	acct, ok := s.identity.CurrentAccount()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return s.documents.GetUserRecord(ctx, acct.UID)
}

func (s *Service) UpdateProfile(ctx context.Context, fields backend.Record) error {
	acct, ok := s.identity.CurrentAccount()
	if !ok {
		return ErrNotAuthenticated
	}
	return s.documents.UpdateUserRecord(ctx, acct.UID, fields)
}

// UpdateEmail changes the sign-in email and mirrors it onto the client
// record, keeping the two stores in step.
func (s *Service) UpdateEmail(ctx context.Context, newEmail string) error {
	acct, ok := s.identity.CurrentAccount()
	if !ok {
		return ErrNotAuthenticated
	}
	if err := s.identity.UpdateEmail(ctx, newEmail); err != nil {
		return err
	}
	if err := s.documents.UpdateUserRecord(ctx, acct.UID, backend.Record{"email": newEmail}); err != nil {
		return fmt.Errorf("record email: %w", err)
	}
	s.lg.Info("email_updated", map[string]any{"uid": acct.UID})
	return nil
}

// UpdatePassword sets a new password on the current account. Passwords
// live only with the identity provider, so no record write follows.
func (s *Service) UpdatePassword(ctx context.Context, newPassword string) error {
	if _, ok := s.identity.CurrentAccount(); !ok {
		return ErrNotAuthenticated
	}
	return s.identity.UpdatePassword(ctx, newPassword)
}

func (s *Service) AddAddress(ctx context.Context, address backend.Record) error {
	acct, ok := s.identity.CurrentAccount()
	if !ok {
		return ErrNotAuthenticated
	}
	return s.documents.AppendToUserRecordArray(ctx, acct.UID, "addresses", map[string]any(address))
}

func (s *Service) RemoveAddress(ctx context.Context, address backend.Record) error {
	acct, ok := s.identity.CurrentAccount()
	if !ok {
		return ErrNotAuthenticated
	}
	return s.documents.RemoveFromUserRecordArray(ctx, acct.UID, "addresses", map[string]any(address))
}

// UploadProfilePicture stores the image and points the client record at
// the download URL.
func (s *Service) UploadProfilePicture(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	acct, ok := s.identity.CurrentAccount()
	if !ok {
		return "", ErrNotAuthenticated
	}
	path := fmt.Sprintf("profile_images/%s/%d_%s", acct.UID, time.Now().UnixMilli(), filename)
	url, err := s.objects.UploadFile(ctx, path, data, contentType)
	if err != nil {
		return "", err
	}
	if err := s.documents.UpdateUserRecord(ctx, acct.UID, backend.Record{"profileImage": url}); err != nil {
		return "", err
	}
	return url, nil
}

// WatchRecord subscribes to the current account's record.
func (s *Service) WatchRecord(ctx context.Context, cb func(backend.Record)) (func(), error) {
	acct, ok := s.identity.CurrentAccount()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return s.documents.SubscribeUserRecord(ctx, acct.UID, cb)
}
