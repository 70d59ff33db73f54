package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/Kapil927/CU-Shop/internal/api"
)

// Session tracks the authenticated identity and gates every
// identity-dependent operation. The credential itself lives in the
// gateway's cookie jar; the session only knows who is logged in.
type Session struct {
	mu       sync.RWMutex
	username string

	api    Gateway
	notify Notifier
	nav    Navigator
	stores []Hydrator
}

func NewSession(gw Gateway, notify Notifier) *Session {
	return &Session{
		api:    gw,
		notify: notify,
	}
}

// SetNavigator wires the view controller in after construction; the
// controller itself depends on the stores.
func (s *Session) SetNavigator(nav Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = nav
}

// Track registers session-scoped stores: hydrated after a successful
// login, cleared on logout.
func (s *Session) Track(stores ...Hydrator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores = append(s.stores, stores...)
}

type RegisterForm struct {
	Username string
	Password string
	Email    string
	Address  string
}

func (s *Session) Register(ctx context.Context, form RegisterForm) error {
	err := s.api.Register(ctx, api.RegisterRequest{
		Username: form.Username,
		Password: form.Password,
		Email:    form.Email,
		Address:  form.Address,
	})
	if err != nil {
		msg := api.ServerMessage(err)
		if msg == "" {
			msg = "Registration failed"
		}
		s.notify.Notify(msg)
		return fmt.Errorf("register: %w", err)
	}

	s.notify.Notify("Registered successfully, please login")
	s.RedirectToLogin()
	return nil
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	if err := s.api.Login(ctx, username, password); err != nil {
		s.notify.Notify("Login failed, check credentials")
		return fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	s.username = username
	stores := s.stores
	s.mu.Unlock()

	s.notify.Notify(fmt.Sprintf("Welcome back, %s!", username))

	for _, st := range stores {
		if err := st.Hydrate(ctx); err != nil {
			logger.Warn().Err(err).Msg("hydrate after login")
		}
	}
	return nil
}

// Logout is locally authoritative: identity and session-scoped state
// are cleared even when the remote call fails.
func (s *Session) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		logger.Warn().Err(err).Msg("remote logout failed")
	}

	s.mu.Lock()
	s.username = ""
	stores := s.stores
	s.mu.Unlock()

	for _, st := range stores {
		st.Clear()
	}
	s.notify.Notify("Logged out successfully")
}

func (s *Session) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username, s.username != ""
}

func (s *Session) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Gate refuses an identity-dependent operation for guests: the caller
// gets ErrLoginRequired, the user gets a prompt and the login view.
// The remote call must never be attempted after a refusal.
func (s *Session) Gate(prompt string) error {
	if s.Authenticated() {
		return nil
	}
	s.notify.Notify(prompt)
	s.RedirectToLogin()
	return ErrLoginRequired
}

func (s *Session) RedirectToLogin() {
	s.mu.RLock()
	nav := s.nav
	s.mu.RUnlock()
	if nav != nil {
		nav.RedirectToLogin()
	}
}
