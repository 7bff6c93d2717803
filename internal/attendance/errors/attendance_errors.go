package attendanceerrors

import (
	"net/http"

	"go-truck-business/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrCheckInNotFound = apperror.New(
		apperror.CodeNotFound,
		"No check-in found for this employee and date",
		http.StatusNotFound,
	)
	ErrAttendanceAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"This employee already has attendance for this date",
		http.StatusConflict,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"This employee has already checked out for this date",
		http.StatusConflict,
	)
	ErrCheckOutBeforeCheckIn = apperror.New(
		apperror.CodeInvalidInput,
		"checkOut must not be earlier than checkIn",
		http.StatusBadRequest,
	)
	ErrInvalidWorkDate = apperror.New(
		apperror.CodeInvalidInput,
		"workDate must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"checkIn and checkOut must be ISO-8601 timestamps",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be ON_TIME or LATE",
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
	ErrEmployeeIDRequired = apperror.RequiredField("empId")
)
