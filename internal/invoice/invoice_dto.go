package invoice

import "github.com/shopspring/decimal"

type CreateInvoiceRequest struct {
	InvoiceNo    string          `json:"invoice_no" binding:"required,max=50"`
	CustomerName string          `json:"customer_name" binding:"required,max=150"`
	IssueDate    string          `json:"issue_date" binding:"required"`
	DueDate      *string         `json:"due_date"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Note         *string         `json:"note"`
}

type UpdateInvoiceRequest struct {
	InvoiceNo    *string          `json:"invoice_no" binding:"omitempty,max=50"`
	CustomerName *string          `json:"customer_name" binding:"omitempty,max=150"`
	IssueDate    *string          `json:"issue_date"`
	DueDate      *string          `json:"due_date"`
	Amount       *decimal.Decimal `json:"amount"`
	PaidAmount   *decimal.Decimal `json:"paid_amount"`
	Note         *string          `json:"note"`
}

type InvoiceResponse struct {
	ID               uint            `json:"id"`
	InvoiceNo        string          `json:"invoice_no"`
	CustomerName     string          `json:"customer_name"`
	IssueDate        string          `json:"issue_date"`
	DueDate          *string         `json:"due_date"`
	Amount           decimal.Decimal `json:"amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	Note             *string         `json:"note"`
}
