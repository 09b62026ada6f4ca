package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/logger"
)

// Storages groups every persistence component of the server.
type Storages struct {
	DB                *DB
	AccountRepository AccountRepository
	InviteRepository  InviteRepository
	BlockStore        BlockStore
}

// NewStorages opens the database selected by cfg, applies migrations and
// sets up the block store.
//
// PostgreSQL is used when a connection URL is configured. Otherwise the
// embedded SQLite database is opened at the configured location, or in
// memory when there is none. Blocks go to disk when a blockstore location
// is configured and to memory otherwise.
func NewStorages(ctx context.Context, cfg *config.ServerConfig, log *logger.Logger) (*Storages, error) {
	db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, err
	}

	blocks, err := openBlockStore(cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		DB:                db,
		AccountRepository: NewAccountRepository(db, log),
		InviteRepository:  NewInviteRepository(db, log),
		BlockStore:        blocks,
	}, nil
}

func openDatabase(ctx context.Context, cfg *config.ServerConfig, log *logger.Logger) (*DB, error) {
	if cfg.DBPostgresURL() != "" {
		return NewConnectPostgres(ctx, cfg.DBPostgresURL(), cfg.DBPostgresSchema(), log)
	}
	return NewConnectSQLite(ctx, cfg.DatabaseLocation(), log)
}

func openBlockStore(cfg *config.ServerConfig, log *logger.Logger) (BlockStore, error) {
	if cfg.UseMemoryBlockstore() {
		log.Info().Str("func", "openBlockStore").Msg("using in-memory blockstore")
		return NewMemoryBlockStore(), nil
	}
	return NewFileBlockStore(cfg.BlockstoreLocation(), log)
}

func (s *Storages) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("error closing database: %w", err)
	}
	return nil
}
