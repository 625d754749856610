package session

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"careportal/internal/common"
	"careportal/internal/logging"
	"careportal/internal/repositories/kv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupStore(t *testing.T) kv.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// a second pool connection would see its own empty in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE client_state (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return kv.NewSQLiteRepository(db)
}

// reload simulates an application restart: a fresh manager over the same
// durable store.
func reload(store kv.Repository) *Manager {
	return NewManager(store, testLogger())
}

func TestLoginRemembered_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	m := NewManager(store, testLogger())
	require.NoError(t, m.Login(ctx, "alice", "tok1", true))

	m2 := reload(store)
	require.NoError(t, m2.Restore(ctx))

	s, state := m2.Current()
	require.Equal(t, StateAuthenticated, state)
	require.Equal(t, Session{Credential: "tok1", AccountID: "alice"}, s)
}

func TestLoginNotRemembered_AnonymousAfterReloadButSwitchable(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	m := NewManager(store, testLogger())
	require.NoError(t, m.Login(ctx, "alice", "tok1", false))

	// In the running process the session is live.
	s, state := m.Current()
	require.Equal(t, StateAuthenticated, state)
	require.Equal(t, "tok1", s.Credential)

	m2 := reload(store)
	require.NoError(t, m2.Restore(ctx))
	_, state = m2.Current()
	require.Equal(t, StateAnonymous, state)

	// The mapping entry survived, so switching still works.
	require.NoError(t, m2.SwitchAccount(ctx, "alice"))
	s, state = m2.Current()
	require.Equal(t, StateAuthenticated, state)
	require.Equal(t, Session{Credential: "tok1", AccountID: "alice"}, s)
}

func TestLogout_AnonymousNowAndAfterReload(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	m := NewManager(store, testLogger())
	require.NoError(t, m.Login(ctx, "alice", "tok1", true))
	require.NoError(t, m.Logout(ctx))

	_, state := m.Current()
	require.Equal(t, StateAnonymous, state)

	m2 := reload(store)
	require.NoError(t, m2.Restore(ctx))
	_, state = m2.Current()
	require.Equal(t, StateAnonymous, state)
}

func TestLogout_PreservesOtherAccounts(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	m := NewManager(store, testLogger())
	require.NoError(t, m.Login(ctx, "alice", "tok1", true))
	require.NoError(t, m.Login(ctx, "bob", "tok2", true))
	require.NoError(t, m.Logout(ctx))

	labels, err := m.Accounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, labels)

	require.NoError(t, m.SwitchAccount(ctx, "alice"))
	s, _ := m.Current()
	require.Equal(t, "tok1", s.Credential)
}

func TestSwitchAccount_UnknownIsObservableNoop(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	m := NewManager(store, testLogger())
	require.NoError(t, m.Login(ctx, "alice", "tok1", true))

	err := m.SwitchAccount(ctx, "nobody")
	require.ErrorIs(t, err, common.ErrorNotFound)

	s, state := m.Current()
	require.Equal(t, StateAuthenticated, state)
	require.Equal(t, Session{Credential: "tok1", AccountID: "alice"}, s)
}

func TestBackToBackLogins_LoseNeitherMappingEntry(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	m := NewManager(store, testLogger())
	done := make(chan error, 2)
	go func() { done <- m.Login(ctx, "a", "tokenA", false) }()
	go func() { done <- m.Login(ctx, "b", "tokenB", false) }()
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	require.NoError(t, m.SwitchAccount(ctx, "a"))
	s, _ := m.Current()
	require.Equal(t, "tokenA", s.Credential)

	require.NoError(t, m.SwitchAccount(ctx, "b"))
	s, _ = m.Current()
	require.Equal(t, "tokenB", s.Credential)
}

func TestScenario_LoginReloadLogoutReload(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	m := NewManager(store, testLogger())
	_, state := m.Current()
	require.Equal(t, StateUninitialized, state)
	require.NoError(t, m.Restore(ctx))
	_, state = m.Current()
	require.Equal(t, StateAnonymous, state)

	require.NoError(t, m.Login(ctx, "alice", "tok1", true))

	m2 := reload(store)
	require.NoError(t, m2.Restore(ctx))
	s, state := m2.Current()
	require.Equal(t, StateAuthenticated, state)
	require.Equal(t, Session{Credential: "tok1", AccountID: "alice"}, s)

	require.NoError(t, m2.Logout(ctx))

	m3 := reload(store)
	require.NoError(t, m3.Restore(ctx))
	_, state = m3.Current()
	require.Equal(t, StateAnonymous, state)
}

func TestInvalidate_DropsSessionKeepsMap(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	m := NewManager(store, testLogger())
	require.NoError(t, m.Login(ctx, "alice", "tok1", true))

	m.Invalidate(ctx)
	_, state := m.Current()
	require.Equal(t, StateAnonymous, state)

	labels, err := m.Accounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, labels)
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestRestore_ExpiredJWTLandsAnonymousAndReports(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	m := NewManager(store, testLogger())
	expired := signedJWT(t, time.Now().Add(-time.Hour))
	require.NoError(t, m.Login(ctx, "alice", expired, true))

	m2 := reload(store)
	err := m2.Restore(ctx)
	require.ErrorIs(t, err, common.ErrTokenExpired)
	_, state := m2.Current()
	require.Equal(t, StateAnonymous, state)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	require.False(t, Expired("tok1", now), "opaque tokens are never expired client-side")
	require.False(t, Expired(signedJWT(t, now.Add(time.Hour)), now))
	require.True(t, Expired(signedJWT(t, now.Add(-time.Minute)), now))
}

func TestRestore_StoreFailureLandsAnonymousAndReportsError(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE client_state (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	store := kv.NewSQLiteRepository(db)
	require.NoError(t, db.Close()) // every read now fails

	m := NewManager(store, testLogger())
	err = m.Restore(ctx)
	require.ErrorIs(t, err, common.ErrStorage)

	_, state := m.Current()
	require.Equal(t, StateAnonymous, state)
}

// failingStore fails Set for one key, inside and outside transactions, to
// exercise rollback of multi-key mutations.
type failingStore struct {
	kv.Repository
	failKey string
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return fmt.Errorf("%w: disk full", common.ErrStorage)
	}
	return f.Repository.Set(ctx, key, value)
}

func (f *failingStore) Update(ctx context.Context, fn func(kv.Repository) error) error {
	return f.Repository.Update(ctx, func(r kv.Repository) error {
		return fn(&failingStore{Repository: r, failKey: f.failKey})
	})
}

func TestLogin_MidWriteFailureRollsBackStore(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	m := NewManager(store, testLogger())
	require.NoError(t, m.Login(ctx, "alice", "tok1", true))

	// The map write succeeds, the active-token write fails; the whole
	// mutation must roll back.
	flaky := &failingStore{Repository: store, failKey: "activeAuthToken"}
	m2 := NewManager(flaky, testLogger())
	err := m2.Login(ctx, "bob", "tok2", true)
	require.ErrorIs(t, err, common.ErrStorage)

	_, state := m2.Current()
	require.NotEqual(t, StateAuthenticated, state)

	// Durable state is exactly as before the failed login: alice's
	// session restores and bob never entered the account map.
	m3 := reload(store)
	require.NoError(t, m3.Restore(ctx))
	s, state := m3.Current()
	require.Equal(t, StateAuthenticated, state)
	require.Equal(t, "alice", s.AccountID)

	labels, err := m3.Accounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, labels)
}
