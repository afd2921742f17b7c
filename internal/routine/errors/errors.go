package routineerrors

import (
	"net/http"

	"github.com/faresbyte/tawseel-task-system/internal/shared/apperror"
)

var (
	ErrRoutineNotFound = apperror.New(
		apperror.CodeNotFound,
		"routine not found",
		http.StatusNotFound,
	)
	ErrInvalidCadence = apperror.New(
		apperror.CodeInvalidInput,
		"cadence must be daily, weekly or monthly",
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
	ErrTaskNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"task does not exist",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"user does not exist",
		http.StatusBadRequest,
	)
)
