package handlers

import (
	stderrors "errors"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/errors"
	"github.com/coachtui/crewcommand/internal/middleware"
	"github.com/coachtui/crewcommand/internal/services"
	"github.com/coachtui/crewcommand/internal/voice"
	"github.com/gin-gonic/gin"
)

// requireCaller pulls the authorization context set by the auth
// middleware, failing the request if it is missing.
func requireCaller(c *gin.Context) (authz.Caller, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		errors.Unauthorized(c, "Not authenticated")
		return authz.Caller{}, false
	}
	return caller, true
}

// respondServiceError maps service-layer errors to HTTP responses in one
// place so every handler reports the same way.
func respondServiceError(c *gin.Context, err error) {
	var ambiguous *services.AmbiguousReferenceError
	if stderrors.As(err, &ambiguous) {
		errors.AmbiguousReference(c, ambiguous.Error(), ambiguous.Candidates)
		return
	}

	var notFound *services.ReferenceNotFoundError
	if stderrors.As(err, &notFound) {
		errors.NotFound(c, notFound.Error())
		return
	}

	var noAssignment *services.NoAssignmentError
	if stderrors.As(err, &noAssignment) {
		errors.NotFound(c, noAssignment.Error())
		return
	}

	var parseErr *voice.ParseError
	if stderrors.As(err, &parseErr) {
		errors.ParseFailure(c, parseErr.Error())
		return
	}

	switch {
	case stderrors.Is(err, authz.ErrForbidden):
		errors.Forbidden(c, "")
	case stderrors.Is(err, services.ErrLanguageService):
		errors.BadGateway(c, "Could not reach the language service")
	case stderrors.Is(err, services.ErrInvalidCredentials),
		stderrors.Is(err, services.ErrInvalidToken):
		errors.Unauthorized(c, err.Error())
	case stderrors.Is(err, services.ErrWorkerNotFound),
		stderrors.Is(err, services.ErrTaskNotFound),
		stderrors.Is(err, services.ErrJobSiteNotFound),
		stderrors.Is(err, services.ErrUserNotFound),
		stderrors.Is(err, services.ErrRequestNotFound),
		stderrors.Is(err, services.ErrNoPendingRequest):
		errors.NotFound(c, err.Error())
	case stderrors.Is(err, services.ErrRequestNotPending):
		errors.Conflict(c, err.Error())
	case stderrors.Is(err, services.ErrWorkerNameRequired),
		stderrors.Is(err, services.ErrTaskNameRequired),
		stderrors.Is(err, services.ErrJobSiteNameRequired),
		stderrors.Is(err, services.ErrStartDateRequired),
		stderrors.Is(err, services.ErrInvalidSiteRole),
		stderrors.Is(err, services.ErrPasswordTooShort),
		stderrors.Is(err, services.ErrNoDatesResolved),
		stderrors.Is(err, services.ErrNothingToUpdate),
		stderrors.Is(err, services.ErrInvalidAssignmentStatus),
		stderrors.Is(err, services.ErrWorkerNameMissing),
		stderrors.Is(err, services.ErrTargetTaskNameMissing),
		stderrors.Is(err, services.ErrClarifyNotExecutable),
		stderrors.Is(err, services.ErrConfirmationRequired),
		stderrors.Is(err, services.ErrUnknownIntentAction):
		errors.BadRequest(c, err.Error())
	default:
		errors.InternalError(c, "")
	}
}
