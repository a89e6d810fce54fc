// Package storefront is the HTTP surface of the ordering app: catalog
// browsing, the per-device cart, toasts, session routing and checkout.
package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"frylyle/internal/backend"
	"frylyle/internal/cart"
	"frylyle/internal/catalog"
	"frylyle/internal/checkout"
	"frylyle/internal/common/httpx"
	"frylyle/internal/common/logger"
	"frylyle/internal/notify"
	"frylyle/internal/profile"
	"frylyle/internal/storage"
)

const deviceHeader = "X-Device-ID"

// Deps wires the service. Checkout, Profile and Identity are optional;
// endpoints that need them answer 503 when absent.
type Deps struct {
	Driver   storage.Driver
	Catalog  *catalog.Catalog
	Checkout *checkout.Service
	Profile  *profile.Service
	Identity backend.Identity
	Relay    *notify.Relay

	Seed            []cart.LineItem
	NotificationTTL time.Duration
	Logger          *logger.Logger
}

type server struct {
	deps     Deps
	sessions *registry
	lg       *logger.Logger
	baseCtx  context.Context
}

// Run serves until ctx is cancelled.
func Run(ctx context.Context, port int, deps Deps) error {
	lg := deps.Logger
	if lg == nil {
		lg = logger.New("storefront")
	}
	s := &server{
		deps:     deps,
		sessions: newRegistry(deps.Driver, deps.Seed, deps.NotificationTTL, deps.Relay, lg),
		lg:       lg,
		baseCtx:  ctx,
	}
	defer s.sessions.close()

	srv := httpx.New(fmt.Sprintf(":%d", port), s.routes())
	lg.Info("service_started", map[string]any{"port": port})
	return srv.Run(ctx)
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /restaurants", s.handleRestaurants)
	mux.HandleFunc("GET /restaurants/{id}", s.handleRestaurant)
	mux.HandleFunc("GET /restaurants/{id}/menu", s.handleMenu)
	mux.HandleFunc("GET /categories", s.handleCategories)
	mux.HandleFunc("GET /search", s.handleSearch)

	mux.HandleFunc("GET /cart", s.withSession(s.handleCartGet))
	mux.HandleFunc("POST /cart/items", s.withSession(s.handleCartAdd))
	mux.HandleFunc("DELETE /cart/items/{id}", s.withSession(s.handleCartRemove))
	mux.HandleFunc("PUT /cart/items/{id}/quantity", s.withSession(s.handleCartQuantity))
	mux.HandleFunc("DELETE /cart", s.withSession(s.handleCartClear))

	mux.HandleFunc("GET /notifications", s.withSession(s.handleNotifications))
	mux.HandleFunc("DELETE /notifications/{id}", s.withSession(s.handleNotificationDismiss))

	mux.HandleFunc("POST /session/route", s.withSession(s.handleRouteSave))
	mux.HandleFunc("GET /session/landing", s.withSession(s.handleLanding))

	mux.HandleFunc("POST /checkout", s.withSession(s.handleCheckout))

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.withSession(s.handleLogout))
	mux.HandleFunc("GET /profile", s.handleProfile)
	mux.HandleFunc("PUT /profile/email", s.handleEmailUpdate)
	mux.HandleFunc("PUT /profile/password", s.handlePasswordUpdate)
	mux.HandleFunc("POST /profile/addresses", s.handleAddressAdd)
	mux.HandleFunc("DELETE /profile/addresses", s.handleAddressRemove)

	return mux
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *deviceSession)

// withSession resolves the device session from the X-Device-ID header,
// assigning a fresh id when the client has none yet.
func (s *server) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		device := r.Header.Get(deviceHeader)
		if device == "" {
			device = uuid.NewString()
		}
		w.Header().Set(deviceHeader, device)
		next(w, r, s.sessions.get(s.baseCtx, device))
	}
}

// --- catalog ---

func (s *server) handleRestaurants(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Catalog.Restaurants())
}

func (s *server) handleRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, ok := s.deps.Catalog.Restaurant(r.PathValue("id"))
	if !ok {
		http.Error(w, "restaurant not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (s *server) handleMenu(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.deps.Catalog.Restaurant(id); !ok {
		http.Error(w, "restaurant not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Catalog.Menu(id))
}

func (s *server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Catalog.Categories())
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	rs, items := s.deps.Catalog.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{"restaurants": rs, "items": items})
}

// --- cart ---

type cartView struct {
	Items []cart.LineItem `json:"items"`
	Total float64         `json:"total"`
}

func (s *server) handleCartGet(w http.ResponseWriter, _ *http.Request, sess *deviceSession) {
	writeJSON(w, http.StatusOK, cartView{Items: sess.cart.Items(), Total: sess.cart.Total()})
}

func (s *server) handleCartAdd(w http.ResponseWriter, r *http.Request, sess *deviceSession) {
	var item cart.LineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.ID == "" {
		http.Error(w, "invalid line item", http.StatusBadRequest)
		return
	}
	sess.cart.Add(item)
	sess.notifier.Show(item.Name+" added to cart", notify.KindSuccess)
	writeJSON(w, http.StatusOK, cartView{Items: sess.cart.Items(), Total: sess.cart.Total()})
}

func (s *server) handleCartRemove(w http.ResponseWriter, r *http.Request, sess *deviceSession) {
	sess.cart.Remove(r.PathValue("id"))
	sess.notifier.Show("Item removed from cart", notify.KindInfo)
	writeJSON(w, http.StatusOK, cartView{Items: sess.cart.Items(), Total: sess.cart.Total()})
}

func (s *server) handleCartQuantity(w http.ResponseWriter, r *http.Request, sess *deviceSession) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid quantity payload", http.StatusBadRequest)
		return
	}
	sess.cart.SetQuantity(r.PathValue("id"), req.Quantity)
	writeJSON(w, http.StatusOK, cartView{Items: sess.cart.Items(), Total: sess.cart.Total()})
}

func (s *server) handleCartClear(w http.ResponseWriter, _ *http.Request, sess *deviceSession) {
	sess.cart.Clear()
	sess.notifier.Show("Cart cleared", notify.KindInfo)
	writeJSON(w, http.StatusOK, cartView{Items: sess.cart.Items(), Total: 0})
}

// --- notifications ---

func (s *server) handleNotifications(w http.ResponseWriter, _ *http.Request, sess *deviceSession) {
	writeJSON(w, http.StatusOK, sess.notifier.Active())
}

func (s *server) handleNotificationDismiss(w http.ResponseWriter, r *http.Request, sess *deviceSession) {
	sess.notifier.Dismiss(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// --- session routing ---

func (s *server) handleRouteSave(w http.ResponseWriter, r *http.Request, sess *deviceSession) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		http.Error(w, "invalid route payload", http.StatusBadRequest)
		return
	}
	sess.routes.SaveLastRoute(req.Path)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleLanding(w http.ResponseWriter, _ *http.Request, sess *deviceSession) {
	authenticated := false
	if s.deps.Identity != nil {
		_, authenticated = s.deps.Identity.CurrentAccount()
	}
	writeJSON(w, http.StatusOK, map[string]string{"landing": sess.routes.Landing(authenticated)})
}

// --- checkout ---

func (s *server) handleCheckout(w http.ResponseWriter, r *http.Request, sess *deviceSession) {
	if s.deps.Checkout == nil || s.deps.Identity == nil {
		http.Error(w, "checkout not configured", http.StatusServiceUnavailable)
		return
	}
	acct, ok := s.deps.Identity.CurrentAccount()
	if !ok {
		http.Error(w, "sign in to place an order", http.StatusUnauthorized)
		return
	}
	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid checkout payload", http.StatusBadRequest)
		return
	}
	order, err := s.deps.Checkout.PlaceOrder(r.Context(), acct.UID, sess.device, sess.cart, req.Address)
	if err != nil {
		if err == checkout.ErrEmptyCart {
			http.Error(w, "cart is empty", http.StatusConflict)
			return
		}
		s.lg.Error("checkout_failed", err, map[string]any{"device": sess.device})
		http.Error(w, "failed to place order", http.StatusBadGateway)
		return
	}
	sess.notifier.Show("Order "+order.Number+" placed", notify.KindSuccess)
	writeJSON(w, http.StatusCreated, order)
}

// --- auth / profile ---

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.deps.Profile == nil {
		http.Error(w, "auth not configured", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Email    string         `json:"email"`
		Password string         `json:"password"`
		Profile  backend.Record `json:"profile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid register payload", http.StatusBadRequest)
		return
	}
	acct, err := s.deps.Profile.Register(r.Context(), req.Email, req.Password, req.Profile)
	if err != nil {
		s.lg.Error("register_failed", err, nil)
		http.Error(w, "registration failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"uid": acct.UID, "email": acct.Email})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.deps.Profile == nil {
		http.Error(w, "auth not configured", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Remember bool   `json:"remember"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid login payload", http.StatusBadRequest)
		return
	}
	acct, err := s.deps.Profile.Login(r.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		http.Error(w, "login failed", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"uid": acct.UID, "email": acct.Email})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request, sess *deviceSession) {
	if s.deps.Profile == nil {
		http.Error(w, "auth not configured", http.StatusServiceUnavailable)
		return
	}
	if err := s.deps.Profile.Logout(r.Context()); err != nil {
		s.lg.Error("logout_failed", err, nil)
		http.Error(w, "logout failed", http.StatusBadGateway)
		return
	}
	// Reset this device's flag so the next launch re-runs the landing
	// decision.
	sess.routes.ResetFirstVisit()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if s.deps.Profile == nil {
		http.Error(w, "auth not configured", http.StatusServiceUnavailable)
		return
	}
	record, err := s.deps.Profile.Record(r.Context())
	if err != nil {
		if err == profile.ErrNotAuthenticated {
			http.Error(w, "not signed in", http.StatusUnauthorized)
			return
		}
		http.Error(w, "failed to load profile", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *server) handleEmailUpdate(w http.ResponseWriter, r *http.Request) {
	if s.deps.Profile == nil {
		http.Error(w, "auth not configured", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "invalid email payload", http.StatusBadRequest)
		return
	}
	if err := s.deps.Profile.UpdateEmail(r.Context(), req.Email); err != nil {
		if err == profile.ErrNotAuthenticated {
			http.Error(w, "not signed in", http.StatusUnauthorized)
			return
		}
		s.lg.Error("email_update_failed", err, nil)
		http.Error(w, "email update failed", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handlePasswordUpdate(w http.ResponseWriter, r *http.Request) {
	if s.deps.Profile == nil {
		http.Error(w, "auth not configured", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		http.Error(w, "invalid password payload", http.StatusBadRequest)
		return
	}
	if err := s.deps.Profile.UpdatePassword(r.Context(), req.Password); err != nil {
		if err == profile.ErrNotAuthenticated {
			http.Error(w, "not signed in", http.StatusUnauthorized)
			return
		}
		s.lg.Error("password_update_failed", err, nil)
		http.Error(w, "password update failed", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleAddressAdd(w http.ResponseWriter, r *http.Request) {
	s.handleAddressChange(w, r, func(ctx context.Context, addr backend.Record) error {
		return s.deps.Profile.AddAddress(ctx, addr)
	})
}

func (s *server) handleAddressRemove(w http.ResponseWriter, r *http.Request) {
	s.handleAddressChange(w, r, func(ctx context.Context, addr backend.Record) error {
		return s.deps.Profile.RemoveAddress(ctx, addr)
	})
}

func (s *server) handleAddressChange(w http.ResponseWriter, r *http.Request, op func(context.Context, backend.Record) error) {
	if s.deps.Profile == nil {
		http.Error(w, "auth not configured", http.StatusServiceUnavailable)
		return
	}
	var addr backend.Record
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil || len(addr) == 0 {
		http.Error(w, "invalid address payload", http.StatusBadRequest)
		return
	}
	if err := op(r.Context(), addr); err != nil {
		if err == profile.ErrNotAuthenticated {
			http.Error(w, "not signed in", http.StatusUnauthorized)
			return
		}
		http.Error(w, "address update failed", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
