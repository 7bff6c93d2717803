package invoiceerrors

import (
	"net/http"

	"go-truck-business/internal/shared/apperror"
)

var (
	ErrInvoiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Invoice not found",
		http.StatusNotFound,
	)
	ErrInvoiceNoExists = apperror.New(
		apperror.CodeConflict,
		"Invoice number already exists",
		http.StatusConflict,
	)
	ErrInvalidInvoiceID = apperror.New(
		apperror.CodeInvalidInput,
		"invoice id must be a positive integer",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"issue_date and due_date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrDueBeforeIssue = apperror.New(
		apperror.CodeInvalidInput,
		"due_date must not be before issue_date",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount and paid_amount must not be negative",
		http.StatusBadRequest,
	)
	ErrOverpaid = apperror.New(
		apperror.CodeInvalidInput,
		"paid_amount must not exceed amount",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be an integer between 1 and 9999",
		http.StatusBadRequest,
	)
)
