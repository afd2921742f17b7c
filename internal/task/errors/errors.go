package taskerrors

import (
	"net/http"

	"github.com/faresbyte/tawseel-task-system/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrEmptyTitle = apperror.New(
		apperror.CodeInvalidInput,
		"task title must not be empty",
		http.StatusBadRequest,
	)
	ErrEmptySubtaskTitle = apperror.New(
		apperror.CodeInvalidInput,
		"subtask title must not be empty",
		http.StatusBadRequest,
	)
	ErrSubtaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"subtask not found",
		http.StatusNotFound,
	)
)
