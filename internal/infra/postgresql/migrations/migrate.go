package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/kursadbilgin/fulfillment-bridge/internal/repository"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		createFulfillmentRecordsTable(),
	})

	return m.Migrate()
}

func createFulfillmentRecordsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_create_fulfillment_records",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.FulfillmentRecordModel{}); err != nil {
				return err
			}
			indexes := []string{
				`CREATE INDEX IF NOT EXISTS idx_fulfillment_records_order_id ON fulfillment_records (order_id)`,
				`CREATE INDEX IF NOT EXISTS idx_fulfillment_records_outcome_created ON fulfillment_records (outcome, created_at)`,
				`CREATE INDEX IF NOT EXISTS idx_fulfillment_records_correlation_id ON fulfillment_records (correlation_id)`,
			}
			for _, sql := range indexes {
				if err := tx.Exec(sql).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.FulfillmentRecordModel{})
		},
	}
}
