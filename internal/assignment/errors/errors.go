package assignmenterrors

import (
	"net/http"

	"github.com/faresbyte/tawseel-task-system/internal/shared/apperror"
)

var (
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"assignment not found",
		http.StatusNotFound,
	)
	ErrAssignmentNotOwned = apperror.New(
		apperror.CodeForbidden,
		"assignment belongs to another user",
		http.StatusForbidden,
	)
	ErrAssignmentLocked = apperror.New(
		apperror.CodeInvalidState,
		"assignment is already submitted and cannot be changed",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid assignment status transition",
		http.StatusBadRequest,
	)
	ErrRejectReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a reason is required to reject an assignment",
		http.StatusBadRequest,
	)
	ErrDeficiencyNoteRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a note is required to flag a deficiency",
		http.StatusBadRequest,
	)
	ErrDeficiencyOnlyFromDone = apperror.New(
		apperror.CodeInvalidState,
		"only completed assignments can be flagged deficient",
		http.StatusBadRequest,
	)
	ErrNoTasksSelected = apperror.New(
		apperror.CodeInvalidInput,
		"at least one task is required",
		http.StatusBadRequest,
	)
	ErrNoUsersSelected = apperror.New(
		apperror.CodeInvalidInput,
		"at least one user is required",
		http.StatusBadRequest,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid task id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid due date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date filter, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
