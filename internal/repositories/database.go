package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

const DefaultDBTimeout = 5 * time.Second

func withDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}

// NewDB opens a traced Postgres handle and checks that it is reachable.
func NewDB(cfg *config.Database) (*sql.DB, error) {
	db, err := otelsql.Open("postgres", cfg.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := withDBTimeout(context.Background())
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
