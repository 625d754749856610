// Package session owns the client's authentication state: the in-memory
// current session and its durable mirror in the key-value store. It is the
// only writer of the session keys; views read the credential through the
// Manager and never touch storage directly.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"careportal/internal/common"
	"careportal/internal/logging"
	"careportal/internal/repositories/kv"
)

// Durable storage keys. The names predate this client and are kept for
// compatibility with state written by earlier versions.
const (
	keyActiveToken   = "activeAuthToken"
	keyActiveAccount = "activeAccountId"
	keyAccountMap    = "authTokens"
)

// State is the lifecycle of the session provider.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// Session pairs the active bearer credential with the account label it
// belongs to.
type Session struct {
	Credential string
	AccountID  string
}

// Manager is the single process-wide holder of the current session.
//
// Every mutation writes the durable store first and updates memory only on
// success, so memory and storage agree after every operation. Multi-key
// writes run inside store.Update, a single transaction; a failure mid-login
// rolls the store back instead of leaving it half-written. All
// read-modify-writes of the account map run under one mutex; back-to-back
// logins cannot lose an entry.
type Manager struct {
	mu    sync.Mutex
	store kv.Repository
	log   logging.Logger
	now   func() time.Time

	state   State
	current Session
}

func NewManager(store kv.Repository, log logging.Logger) *Manager {
	return &Manager{store: store, log: log, now: time.Now, state: StateUninitialized}
}

// Current returns the session and state as of now. The zero Session is
// returned unless the state is StateAuthenticated.
func (m *Manager) Current() (Session, State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return Session{}, m.state
	}
	return m.current, m.state
}

// Token returns the active credential, or "" when anonymous. It satisfies
// the API client's token source.
func (m *Manager) Token() string {
	s, _ := m.Current()
	return s.Credential
}

// Restore reads a previously remembered credential at startup and moves the
// manager to Authenticated or Anonymous. A store read failure also lands on
// Anonymous so the user can still reach the login prompt, but the error is
// returned instead of being swallowed. An expired remembered credential
// likewise lands on Anonymous and reports common.ErrTokenExpired.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateLoading

	credential, err := m.store.Get(ctx, keyActiveToken)
	if err != nil {
		m.setAnonymousLocked()
		return fmt.Errorf("restore session: %w", err)
	}
	if len(credential) == 0 {
		m.setAnonymousLocked()
		return nil
	}

	if Expired(string(credential), m.now()) {
		m.log.Warn(ctx, "remembered credential is expired, starting anonymous")
		m.setAnonymousLocked()
		return fmt.Errorf("restore session: %w", common.ErrTokenExpired)
	}

	accountID, err := m.store.Get(ctx, keyActiveAccount)
	if err != nil {
		m.setAnonymousLocked()
		return fmt.Errorf("restore session: %w", err)
	}

	m.current = Session{Credential: string(credential), AccountID: string(accountID)}
	m.state = StateAuthenticated
	m.log.Info(ctx, "session restored", "account", m.current.AccountID)
	return nil
}

// Login records the credential under accountID in the account map and makes
// it the in-memory session. With remember, the credential is also written to
// the active keys read by the next Restore. The credential itself is opaque:
// a malformed or expired token is accepted here and rejected centrally by
// the API layer on first use.
func (m *Manager) Login(ctx context.Context, accountID, credential string, remember bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.store.Update(ctx, func(store kv.Repository) error {
		if err := upsertAccount(ctx, store, accountID, credential); err != nil {
			return err
		}
		if remember {
			return activate(ctx, store, accountID, credential)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	m.current = Session{Credential: credential, AccountID: accountID}
	m.state = StateAuthenticated
	m.log.Info(ctx, "logged in", "account", accountID, "remember", remember)
	return nil
}

// Logout forgets the active session on this device only: the active keys
// are removed, other remembered accounts stay in the map, and nothing is
// revoked server-side.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.store.Update(ctx, func(store kv.Repository) error {
		if err := store.Delete(ctx, keyActiveToken); err != nil {
			return err
		}
		return store.Delete(ctx, keyActiveAccount)
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	m.setAnonymousLocked()
	m.log.Info(ctx, "logged out")
	return nil
}

// SwitchAccount promotes a remembered credential to active. An unknown
// accountID leaves the current session untouched and reports
// common.ErrorNotFound to the caller.
func (m *Manager) SwitchAccount(ctx context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts, err := readAccountMap(ctx, m.store)
	if err != nil {
		return fmt.Errorf("switch account: %w", err)
	}
	credential, ok := accounts[accountID]
	if !ok {
		return fmt.Errorf("switch account %q: %w", accountID, common.ErrorNotFound)
	}

	err = m.store.Update(ctx, func(store kv.Repository) error {
		return activate(ctx, store, accountID, credential)
	})
	if err != nil {
		return fmt.Errorf("switch account: %w", err)
	}

	m.current = Session{Credential: credential, AccountID: accountID}
	m.state = StateAuthenticated
	m.log.Info(ctx, "switched account", "account", accountID)
	return nil
}

// Accounts lists the remembered account labels, sorted.
func (m *Manager) Accounts(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts, err := readAccountMap(ctx, m.store)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	labels := make([]string, 0, len(accounts))
	for label := range accounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

// Invalidate is the API client's hook for a rejected credential: the active
// session is forgotten exactly like Logout, so expiry is handled in one
// place instead of per view. The account map keeps the stale entry; a fresh
// login overwrites it.
func (m *Manager) Invalidate(ctx context.Context) {
	if err := m.Logout(ctx); err != nil {
		m.log.Error(ctx, "dropping rejected session", "error", err)
	}
	m.log.Warn(ctx, "session invalidated by server")
}

func (m *Manager) setAnonymousLocked() {
	m.current = Session{}
	m.state = StateAnonymous
}

func readAccountMap(ctx context.Context, store kv.Repository) (map[string]string, error) {
	raw, err := store.Get(ctx, keyAccountMap)
	if err != nil {
		return nil, err
	}
	accounts := make(map[string]string)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &accounts); err != nil {
			return nil, fmt.Errorf("decode account map: %w", err)
		}
	}
	return accounts, nil
}

func upsertAccount(ctx context.Context, store kv.Repository, accountID, credential string) error {
	accounts, err := readAccountMap(ctx, store)
	if err != nil {
		return err
	}
	accounts[accountID] = credential

	raw, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode account map: %w", err)
	}
	return store.Set(ctx, keyAccountMap, raw)
}

func activate(ctx context.Context, store kv.Repository, accountID, credential string) error {
	if err := store.Set(ctx, keyActiveToken, []byte(credential)); err != nil {
		return err
	}
	return store.Set(ctx, keyActiveAccount, []byte(accountID))
}
