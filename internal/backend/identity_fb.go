package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
)

var errNoSession = errors.New("no authenticated account")

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// FirebaseIdentity implements Identity on the admin SDK plus the Identity
// Toolkit REST endpoint. The admin SDK creates and revokes users;
// password sign-in only exists on the REST surface, keyed by the web API
// key.
type FirebaseIdentity struct {
	auth   *fbauth.Client
	apiKey string
	http   *http.Client

	mu         sync.Mutex
	current    *Account
	remembered bool
	watchers   map[int]func(*Account)
	nextID     int
}

func newFirebaseIdentity(auth *fbauth.Client, apiKey string) *FirebaseIdentity {
	return &FirebaseIdentity{
		auth:     auth,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
		watchers: make(map[int]func(*Account)),
	}
}

func (f *FirebaseIdentity) Register(ctx context.Context, email, password string, profile Record) (Account, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	if name, ok := profile["fullName"].(string); ok && name != "" {
		params = params.DisplayName(name)
	}
	u, err := f.auth.CreateUser(ctx, params)
	if err != nil {
		return Account{}, fmt.Errorf("create user: %w", err)
	}
	return Account{UID: u.UID, Email: u.Email}, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Login exchanges credentials for a session. remember mirrors the web
// client's persistence toggle; server-side it only marks the session, the
// token lifetime is the provider's business.
func (f *FirebaseIdentity) Login(ctx context.Context, email, password string, remember bool) (Account, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return Account{}, err
	}
	url := fmt.Sprintf("%s?key=%s", signInEndpoint, f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Account{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return Account{}, fmt.Errorf("sign in: %w", err)
	}
	defer resp.Body.Close()

	var out signInResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return Account{}, fmt.Errorf("sign in response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || out.Error != nil {
		msg := resp.Status
		if out.Error != nil {
			msg = out.Error.Message
		}
		return Account{}, fmt.Errorf("sign in rejected: %s", msg)
	}

	acct := Account{UID: out.LocalID, Email: out.Email}
	f.mu.Lock()
	f.remembered = remember
	f.mu.Unlock()
	f.setCurrent(&acct)
	return acct, nil
}

// Logout revokes the account's refresh tokens and clears the session.
func (f *FirebaseIdentity) Logout(ctx context.Context) error {
	f.mu.Lock()
	cur := f.current
	f.mu.Unlock()
	if cur == nil {
		return nil
	}
	if err := f.auth.RevokeRefreshTokens(ctx, cur.UID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	f.mu.Lock()
	f.remembered = false
	f.mu.Unlock()
	f.setCurrent(nil)
	return nil
}

// UpdateEmail changes the current account's sign-in email through the
// admin SDK and pushes the updated account to watchers.
func (f *FirebaseIdentity) UpdateEmail(ctx context.Context, newEmail string) error {
	f.mu.Lock()
	cur := f.current
	f.mu.Unlock()
	if cur == nil {
		return errNoSession
	}
	params := (&fbauth.UserToUpdate{}).Email(newEmail)
	if _, err := f.auth.UpdateUser(ctx, cur.UID, params); err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	updated := *cur
	updated.Email = newEmail
	f.setCurrent(&updated)
	return nil
}

// UpdatePassword sets a new password on the current account.
func (f *FirebaseIdentity) UpdatePassword(ctx context.Context, newPassword string) error {
	f.mu.Lock()
	cur := f.current
	f.mu.Unlock()
	if cur == nil {
		return errNoSession
	}
	params := (&fbauth.UserToUpdate{}).Password(newPassword)
	if _, err := f.auth.UpdateUser(ctx, cur.UID, params); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Remembered reports whether the active session was opened with the
// remember-me toggle.
func (f *FirebaseIdentity) Remembered() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remembered
}

func (f *FirebaseIdentity) CurrentAccount() (Account, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return Account{}, false
	}
	return *f.current, true
}

func (f *FirebaseIdentity) OnAccountChange(cb func(*Account)) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.watchers[id] = cb
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.watchers, id)
		f.mu.Unlock()
	}
}

func (f *FirebaseIdentity) setCurrent(acct *Account) {
	f.mu.Lock()
	f.current = acct
	cbs := make([]func(*Account), 0, len(f.watchers))
	for _, cb := range f.watchers {
		cbs = append(cbs, cb)
	}
	f.mu.Unlock()
	for _, cb := range cbs {
		cb(acct)
	}
}
