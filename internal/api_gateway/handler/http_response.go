package handler

import (
	"net/http"

	"github.com/banking-transfer-api/internal/api_gateway/middleware"
	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API response. Exactly one of Data and
// Error is set.
type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Meta          *MetaInfo   `json:"meta,omitempty"`
}

// ErrorInfo carries a machine readable code and a human readable message.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo describes the page returned by a list endpoint.
type MetaInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}

func newMeta(p PaginationParams, totalItems int64) *MetaInfo {
	perPage := int64(p.PerPage)
	return &MetaInfo{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: (totalItems + perPage - 1) / perPage,
		TotalItems: totalItems,
	}
}

func write(c *gin.Context, status int, r Response) {
	r.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(status, r)
}

// RespondWithData sends data with the given status.
func RespondWithData(c *gin.Context, status int, data interface{}) {
	write(c, status, Response{Data: data})
}

// RespondWithError sends an error envelope.
func RespondWithError(c *gin.Context, status int, code, message string) {
	write(c, status, Response{Error: &ErrorInfo{Code: code, Message: message}})
}

// RespondPage sends one page of a list together with its paging metadata.
func RespondPage(c *gin.Context, data interface{}, p PaginationParams, totalItems int64) {
	write(c, http.StatusOK, Response{Data: data, Meta: newMeta(p, totalItems)})
}

func RespondOK(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusOK, data)
}

func RespondCreated(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusCreated, data)
}

func RespondBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// RespondInternalError hides the cause; it is logged by respondError instead.
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An internal server error occurred")
}
