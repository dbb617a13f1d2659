package mysql

import (
	"contract-approval/internal/domain/audit"
	"contract-approval/internal/domain/contract"
	"contract-approval/internal/domain/document"
	"contract-approval/internal/domain/ledger"
	"contract-approval/internal/domain/modification"
	"contract-approval/internal/domain/user"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in creation order.
func Models() []any {
	return []any{
		&ledger.Sequence{},
		&ledger.Deployment{},
		&ledger.Record{},
		&ledger.Vote{},
		&contract.Contract{},
		&modification.Request{},
		&audit.Entry{},
		&user.User{},
		&document.Document{},
	}
}

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
