package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/storage"
)

// defaultDBPath resolves the statement database location from config, with
// an XDG-style fallback.
func defaultDBPath() (string, error) {
	if path := viper.GetString("db.path"); path != "" {
		return config.ExpandPath(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "lens", "statements.db"), nil
}

// openStore opens the statement database and runs migrations.
func openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	path, err := defaultDBPath()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// resolvePayload loads a statement payload either from a JSON export file
// (positional argument) or from the database (--id flag).
func resolvePayload(ctx context.Context, args []string, documentID int64) (*model.StatementPayload, error) {
	if len(args) > 0 {
		return storage.LoadPayload(args[0])
	}
	if documentID == 0 {
		return nil, fmt.Errorf("provide a payload file or --id")
	}
	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()
	return store.GetStatementPayload(ctx, documentID)
}
