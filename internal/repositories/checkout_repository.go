package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
)

// CheckoutRepository is the local ledger of checkout submissions. Orders
// themselves live in the backend; the ledger only records what was attempted.
type CheckoutRepository interface {
	EnsureSchema(ctx context.Context) error
	Record(ctx context.Context, submission *models.CheckoutSubmission) error
}

type checkoutRepository struct {
	DB *sql.DB
}

func NewCheckoutRepository(db *sql.DB) CheckoutRepository {
	return &checkoutRepository{DB: db}
}

func (r *checkoutRepository) EnsureSchema(ctx context.Context) error {
	dbCtx, cancel := withDBTimeout(ctx)
	defer cancel()

	query := `
		CREATE TABLE IF NOT EXISTS checkout_submissions (
			id UUID PRIMARY KEY,
			mode VARCHAR(32) NOT NULL,
			email VARCHAR(255) NOT NULL,
			delivery_area VARCHAR(32) NOT NULL,
			item_count INTEGER NOT NULL,
			subtotal NUMERIC(12, 2) NOT NULL,
			shipping NUMERIC(12, 2) NOT NULL,
			total NUMERIC(12, 2) NOT NULL,
			order_number VARCHAR(64) NOT NULL DEFAULT '',
			succeeded BOOLEAN NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)
	`

	if _, err := r.DB.ExecContext(dbCtx, query); err != nil {
		return fmt.Errorf("failed to create checkout_submissions table: %w", err)
	}

	return nil
}

func (r *checkoutRepository) Record(ctx context.Context, submission *models.CheckoutSubmission) error {
	dbCtx, cancel := withDBTimeout(ctx)
	defer cancel()

	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}

	query := `
		INSERT INTO checkout_submissions (id, mode, email, delivery_area, item_count, subtotal, shipping, total, order_number, succeeded, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.DB.ExecContext(dbCtx, query,
		submission.ID,
		submission.Mode,
		submission.Email,
		submission.DeliveryArea,
		submission.ItemCount,
		submission.Subtotal,
		submission.Shipping,
		submission.Total,
		submission.OrderNumber,
		submission.Succeeded,
		submission.Error,
		submission.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert checkout submission: %w", err)
	}

	return nil
}
