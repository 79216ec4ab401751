package migrations

import (
	"context"

	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/uptrace/bun"
)

/* The init migration reflects the latest model fields when run on a fresh db.
Columns added later must use IfNotExists/IfExists in their own migration.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []interface{}{
			(*models.Partner)(nil),
			(*models.Employee)(nil),
			(*models.SalaryAdvanceRequest)(nil),
			(*models.Transaction)(nil),
			(*models.Remboursement)(nil),
			(*models.HistoriqueRemboursement)(nil),
			(*models.Notification)(nil),
			(*models.AdminUser)(nil),
		}
		for _, model := range tables {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		// one reimbursement per transaction
		_, err := db.NewCreateIndex().
			Model((*models.Remboursement)(nil)).
			Unique().
			Index("remboursements_transaction_id_key").
			Column("transaction_id").
			IfNotExists().
			Exec(ctx)
		return err
	}, nil)
}
