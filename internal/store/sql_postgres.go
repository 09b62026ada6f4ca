package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/migrations"
)

// NewConnectPostgres opens a PostgreSQL connection pool. When schema is not
// empty it is created if missing and used as the search_path of every
// connection.
func NewConnectPostgres(ctx context.Context, dsn, schema string, log *logger.Logger) (*DB, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error parsing database url")
		return nil, fmt.Errorf("error parsing database url: %w", err)
	}
	if schema != "" {
		connConfig.RuntimeParams["search_path"] = schema
	}

	conn := stdlib.OpenDB(*connConfig)
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if schema != "" {
		if _, err = conn.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize()); err != nil {
			log.Err(err).Str("func", "NewConnectPostgres").Str("schema", schema).Msg("error creating schema")
			conn.Close()
			return nil, fmt.Errorf("error creating schema %q: %w", schema, err)
		}
	}
	log.Info().Str("func", "NewConnectPostgres").Str("schema", schema).Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		dialect:            migrations.DialectPostgres,
		placeholder:        sq.Dollar,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             log,
	}, nil
}
