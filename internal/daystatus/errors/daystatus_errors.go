package daystatuserrors

import (
	"net/http"

	"go-truck-business/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of NOT_CHECKED_IN, WORKING, OFF_DUTY, ON_LEAVE",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrDayStatusNotFound = apperror.New(
		apperror.CodeNotFound,
		"day status not found",
		http.StatusNotFound,
	)
)
