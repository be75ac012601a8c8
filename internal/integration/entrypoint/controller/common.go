// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/middleware"
)

const internalErrorMessage = "An internal error occurred"

// requireUserID reads the authenticated user, replying 401 when it is missing.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Message: "Not authorized, no token",
			Code:    string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses the :id path parameter, replying 400 when it is not a UUID.
func parseIDParam(ctx *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: fmt.Sprintf("Invalid %s ID format", resource),
		})
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: message,
		Code:    code,
	})
}

func internalError(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Message: internalErrorMessage,
	})
}

// optionalFormValue returns a pointer to a multipart field, or nil when the field was not sent.
func optionalFormValue(ctx *gin.Context, key string) *string {
	value, ok := ctx.GetPostForm(key)
	if !ok {
		return nil
	}
	return &value
}

// formFile opens an optional uploaded file. The returned closer is never nil.
func formFile(ctx *gin.Context, field string) (*adapter.FileUpload, io.Closer, error) {
	header, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, io.NopCloser(nil), nil
	}
	if err != nil {
		return nil, io.NopCloser(nil), err
	}

	file, err := header.Open()
	if err != nil {
		return nil, io.NopCloser(nil), err
	}

	return &adapter.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, file, nil
}
