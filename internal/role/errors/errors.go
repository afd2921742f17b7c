package roleerrors

import (
	"net/http"

	"github.com/faresbyte/tawseel-task-system/internal/shared/apperror"
)

var ErrRoleNotFound = apperror.New(
	apperror.CodeNotFound,
	"role not found",
	http.StatusNotFound,
)
