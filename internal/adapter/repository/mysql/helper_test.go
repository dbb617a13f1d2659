package mysql

import (
	"testing"
	"time"

	contractDomain "contract-approval/internal/domain/contract"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with the full schema.
// One connection only, otherwise each pooled connection sees its own empty database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func makeContract(id uint64, creator string) *contractDomain.Contract {
	return &contractDomain.Contract{
		ID:           id,
		Title:        "Office supplies",
		Description:  "paper and toner",
		SupplierName: "PT Sumber",
		Creator:      creator,
		Value:        1_500_000.50,
		StartDate:    day("2025-01-01"),
		EndDate:      day("2025-12-31"),
	}
}

const (
	addrA = "0x1111111111111111111111111111111111111111"
	addrB = "0x2222222222222222222222222222222222222222"
	addrP = "0x9999999999999999999999999999999999999999"
)
