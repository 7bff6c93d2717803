package monthlysummaryerrors

import (
	"net/http"

	"go-truck-business/internal/shared/apperror"
)

var (
	ErrSummaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Monthly summary not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrSummaryAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A summary for this employee and month already exists",
		http.StatusConflict,
	)
	ErrInvalidSummaryID = apperror.New(
		apperror.CodeInvalidInput,
		"summary id must be a positive integer",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be an integer between 1 and 9999",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be an integer between 1 and 12",
		http.StatusBadRequest,
	)
	ErrNegativeValue = apperror.New(
		apperror.CodeInvalidInput,
		"day counts, trips and amounts must not be negative",
		http.StatusBadRequest,
	)
)
