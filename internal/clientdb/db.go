// Package clientdb opens the local sqlite database that holds all durable
// client state, runs migrations, and manages the per-device secret used to
// seal stored credentials.
package clientdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"careportal/internal/clientdb/migrations"
	"careportal/internal/common"
	"careportal/internal/cryptox"

	"github.com/pressly/goose/v3"
)

// keyContext salts the device-key derivation so the same secret file cannot
// unlock another application's store.
const keyContext = "careportal/v1"

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the sqlite database at dsn and brings the
// schema up to date.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", common.ErrStorage, dsn, err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrate %s: %v", common.ErrStorage, dsn, err)
	}
	return db, nil
}

// DeviceKey loads the per-device secret from path, generating it on first
// run, and derives the AES key that seals stored credentials. The secret
// file is created with owner-only permissions.
func DeviceKey(path string) ([]byte, error) {
	secret, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		secret = common.GenerateRandByteArray(32)
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o700); mkErr != nil {
			return nil, fmt.Errorf("%w: create state dir: %v", common.ErrStorage, mkErr)
		}
		if wrErr := os.WriteFile(path, secret, 0o600); wrErr != nil {
			return nil, fmt.Errorf("%w: write device secret: %v", common.ErrStorage, wrErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("%w: read device secret: %v", common.ErrStorage, err)
	}

	return cryptox.DeriveKey(secret, []byte(keyContext)), nil
}
