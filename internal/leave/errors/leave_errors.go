package leaveerrors

import (
	"net/http"

	"github.com/renzojacob/IntelliHRTrack/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrLeaveNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave requests can be changed",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"status must be approved or declined",
		http.StatusBadRequest,
	)
)
