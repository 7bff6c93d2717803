package incomeerrors

import (
	"net/http"

	"go-truck-business/internal/shared/apperror"
)

var (
	ErrIncomeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Income not found",
		http.StatusNotFound,
	)
	ErrInvalidIncomeID = apperror.New(
		apperror.CodeInvalidInput,
		"income id must be a positive integer",
		http.StatusBadRequest,
	)
	ErrInvalidIncomeDate = apperror.New(
		apperror.CodeInvalidInput,
		"income_date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be an integer between 1 and 9999",
		http.StatusBadRequest,
	)
)
