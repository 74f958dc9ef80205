// Package handler holds the gin handlers of the admin API.
package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/dto"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// pagingKeys are query parameters that never become repository filters
var pagingKeys = map[string]struct{}{
	"current":  {},
	"size":     {},
	"orderBy":  {},
	"orderDir": {},
}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

// currentUserID returns the authenticated operator id
func currentUserID(c *gin.Context) int64 {
	return middleware.GetJWTUserID(c)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// OK sends a success response without data
func (h *BaseHandler) OK(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts domain errors to HTTP responses. Anything that is
// not a domain error is logged and reported as ERR_INTERNAL.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	_ = c.Error(err)
	h.InternalError(c, "An unexpected error occurred")
}

// handleBindError reports a request that could not be decoded or failed its
// binding rules
func (h *BaseHandler) handleBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		middleware.HandleValidationError(c, err)
		return
	}
	if errors.Is(err, io.EOF) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Request body is empty")
		return
	}
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
}

// bindJSON decodes the JSON body into obj, writing the error response on failure
func (h *BaseHandler) bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.handleBindError(c, err)
		return false
	}
	return true
}

// bind decodes a JSON or form encoded body according to Content-Type
func (h *BaseHandler) bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		h.handleBindError(c, err)
		return false
	}
	return true
}

// bindIDs decodes a JSON array of ids, the body of a batch delete
func (h *BaseHandler) bindIDs(c *gin.Context) ([]int64, bool) {
	var ids []int64
	if !h.bindJSON(c, &ids) {
		return nil, false
	}
	if len(ids) == 0 {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "No ids given")
		return nil, false
	}
	return ids, true
}

// parseID reads an int64 path parameter
func (h *BaseHandler) parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// pageFilter builds the repository filter of a page request: current and
// size select the page, every other non-empty query parameter is passed on
// as a filter and ignored by repositories that don't know it
func pageFilter(c *gin.Context) shared.Filter {
	var q dto.PageQuery
	_ = c.ShouldBindQuery(&q)
	f := q.Filter()
	f.OrderBy = c.Query("orderBy")
	f.OrderDir = c.Query("orderDir")
	for key, values := range c.Request.URL.Query() {
		if _, skip := pagingKeys[key]; skip || len(values) == 0 {
			continue
		}
		f = f.With(key, values[0])
	}
	return f
}
