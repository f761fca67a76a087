package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upVehicleBillingIndexes, downVehicleBillingIndexes)
}

func upVehicleBillingIndexes(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_vehicles_subscription_id ON vehicles (subscription_id) WHERE subscription_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_vehicles_member_active ON vehicles (member_id, is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_members_stripe_customer_id ON members (stripe_customer_id) WHERE stripe_customer_id IS NOT NULL`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func downVehicleBillingIndexes(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`DROP INDEX IF EXISTS idx_vehicles_subscription_id`,
		`DROP INDEX IF EXISTS idx_vehicles_member_active`,
		`DROP INDEX IF EXISTS idx_members_stripe_customer_id`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
