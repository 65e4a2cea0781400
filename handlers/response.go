package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"sanctuary/service"

	"github.com/gin-gonic/gin"
)

// Response is the stable envelope every endpoint answers with.
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	CodeOK             = "OK"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeResourceBusy   = "RESOURCE_BUSY"
	CodeBadGateway     = "BAD_GATEWAY"
	CodeInternal       = "INTERNAL_ERROR"
)

func respond(c *gin.Context, status int, code, message string, data any) {
	c.JSON(status, Response{Code: code, Message: message, Data: data})
}

func ok(c *gin.Context, data any) {
	respond(c, http.StatusOK, CodeOK, "OK", data)
}

func fail(c *gin.Context, status int, code, message string) {
	respond(c, status, code, message, gin.H{})
}

// parseID reads the :id path parameter. On failure it writes the error
// response itself and returns false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// failErr maps service sentinel errors to envelope codes; anything
// unrecognized is an internal error.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	case errors.Is(err, service.ErrLinkNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrNoteNotFound),
		errors.Is(err, service.ErrWallpaperNotFound),
		errors.Is(err, service.ErrCharacterNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		fail(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, service.ErrCategoryExists):
		fail(c, http.StatusConflict, CodeConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, CodeInternal, err.Error())
	}
}
