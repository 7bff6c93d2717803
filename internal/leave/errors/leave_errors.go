package leaveerrors

import (
	"net/http"

	"go-truck-business/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrLeaveAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Leave for this date already exists",
		http.StatusConflict,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"leave id must be a positive integer",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveDate = apperror.New(
		apperror.CodeInvalidInput,
		"leave_date must be YYYY-MM-DD",
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
)
