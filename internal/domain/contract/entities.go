package contract

import (
	"errors"
	"time"
)

var (
	ErrInvalidPeriod = errors.New("end_date must not be before start_date")
	ErrInvalidValue  = errors.New("value must be greater than zero")
	ErrInvalidTitle  = errors.New("title is required")
	ErrInvalidState  = errors.New("state must be one of unapproved, partially_approved, fully_approved")
)

// Table: contracts. ID is the ledger target id allocated from the contracts sequence.
type Contract struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Title        string    `gorm:"column:title;size:200;not null" json:"title"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	SupplierName string    `gorm:"column:supplier_name;size:200;not null" json:"supplier_name"`
	Creator      string    `gorm:"column:creator;type:char(42);not null;index:idx_contracts_creator" json:"creator"`
	Value        float64   `gorm:"column:value;type:decimal(18,2);not null" json:"value"`
	FileHash     string    `gorm:"column:file_hash;size:128" json:"file_hash"`
	StartDate    time.Time `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate      time.Time `gorm:"column:end_date;type:date;not null" json:"end_date"`
	IsModified   bool      `gorm:"column:is_modified;not null;default:false" json:"is_modified"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Contract) TableName() string { return "contracts" }

func (c *Contract) Validate() error {
	switch {
	case c.Title == "":
		return ErrInvalidTitle
	case c.Value <= 0:
		return ErrInvalidValue
	case c.EndDate.Before(c.StartDate):
		return ErrInvalidPeriod
	}
	return nil
}
