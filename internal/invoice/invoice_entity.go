package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

type Invoice struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"`
	InvoiceNo    string          `gorm:"type:varchar(50);not null;uniqueIndex:uq_invoice_no"`
	CustomerName string          `gorm:"type:varchar(150);not null"`
	IssueDate    time.Time       `gorm:"type:date;not null;index"`
	DueDate      *time.Time      `gorm:"type:date"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaidAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Note         *string         `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Invoice) TableName() string {
	return "invoices"
}

// Remaining never goes below zero.
func (i Invoice) Remaining() decimal.Decimal {
	r := i.Amount.Sub(i.PaidAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Status is derived from the paid amount, never stored.
func (i Invoice) Status() PaymentStatus {
	switch {
	case !i.PaidAmount.IsPositive():
		return PaymentUnpaid
	case i.PaidAmount.GreaterThanOrEqual(i.Amount):
		return PaymentPaid
	default:
		return PaymentPartial
	}
}
