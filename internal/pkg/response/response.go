package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"servicemarket/internal/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// FromError maps a service error onto the HTTP envelope. Unclassified
// errors surface as storage faults and must not leak internals.
func FromError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindInvalidInput:
		status = http.StatusBadRequest
	case apperr.KindServiceUnavailable:
		status = http.StatusUnprocessableEntity
	case apperr.KindSlotConflict, apperr.KindInvalidTransition:
		status = http.StatusConflict
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}

	message := "internal error"
	var ae *apperr.Error
	if kind != apperr.KindPersistence && errors.As(err, &ae) {
		message = ae.Reason
	} else {
		_ = c.Error(err)
	}

	Error(c, status, string(kind), message)
}
