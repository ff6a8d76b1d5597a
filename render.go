package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	merrors "github.com/CodedInternet/smartstepper/motor/errors"
)

//---
// Standard error response envelope
//---

// ErrResponse is the single error shape the API speaks: every failure,
// whatever its internal kind, leaves as {status: "error", message: ...}.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func newErrResponse(err error, code int) *ErrResponse {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: code,
		Status:         "error",
		Message:        err.Error(),
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return newErrResponse(err, http.StatusBadRequest)
}

func ErrRender(err error) render.Renderer {
	return newErrResponse(err, http.StatusInternalServerError)
}

func ErrUnauthorized(err error) render.Renderer {
	return newErrResponse(err, http.StatusUnauthorized)
}

func ErrPermissionDenied(err error) render.Renderer {
	return newErrResponse(err, http.StatusForbidden)
}

var ErrNotFound = &ErrResponse{
	HTTPStatusCode: http.StatusNotFound,
	Status:         "error",
	Message:        "Resource not found",
}

// ErrMotor maps a motor core error to the right HTTP status. Every kind
// in the taxonomy is recoverable; nothing here is allowed to escape as an
// unstructured failure.
func ErrMotor(err error) render.Renderer {
	var (
		notFound  merrors.MotorNotFoundError
		noDriver  merrors.DriverNotFoundError
		duplicate merrors.DuplicateMotorError
	)

	switch {
	case errors.As(err, &notFound), errors.As(err, &noDriver):
		return newErrResponse(err, http.StatusNotFound)
	case errors.As(err, &duplicate):
		return newErrResponse(err, http.StatusConflict)
	case isBadCommand(err):
		return newErrResponse(err, http.StatusBadRequest)
	}
	return ErrRender(err)
}

func isBadCommand(err error) bool {
	var (
		badType    merrors.InvalidMotorTypeError
		badDriver  merrors.IncompatibleDriverError
		notInit    merrors.NotInitializedError
		disabled   merrors.DriverDisabledError
		badSpeed   merrors.InvalidSpeedError
		badSteps   merrors.InvalidStepCountError
		badAction  merrors.UnsupportedOperationError
		badVersion merrors.FirmwareVersionError
	)
	return errors.As(err, &badType) ||
		errors.As(err, &badDriver) ||
		errors.As(err, &notInit) ||
		errors.As(err, &disabled) ||
		errors.As(err, &badSpeed) ||
		errors.As(err, &badSteps) ||
		errors.As(err, &badAction) ||
		errors.As(err, &badVersion)
}
