package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/pterm/pterm"
)

func init() {
	goose.AddMigrationContext(upNormalizeVehicleBillingState, downNormalizeVehicleBillingState)
}

// Re-derives is_active from billing_status for rows written before the
// full-tuple merge-write discipline existed. The two fields must never
// diverge.
func upNormalizeVehicleBillingState(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE vehicles SET billing_status = 'none' WHERE billing_status IS NULL OR billing_status = ''`,
	); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE vehicles SET is_active = (billing_status IN ('active', 'trialing')) WHERE is_active IS DISTINCT FROM (billing_status IN ('active', 'trialing'))`,
	)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		pterm.DefaultLogger.Info("Normalized is_active on existing vehicles")
	}
	return nil
}

func downNormalizeVehicleBillingState(ctx context.Context, tx *sql.Tx) error {
	// Normalization is not reversible; the derived flag stays consistent.
	return nil
}
