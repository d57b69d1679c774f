package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rasana/internal/apperr"
)

// respondError maps application errors to HTTP responses. Coded errors
// carry their code through; anything else is an opaque 500.
func respondError(c *gin.Context, err error) {
	var coded *apperr.Error
	if !errors.As(err, &coded) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := http.StatusForbidden
	switch coded.Code {
	case apperr.ErrPostNotFound.Code, apperr.ErrCommentNotFound.Code:
		status = http.StatusNotFound
	case apperr.ErrUnsupportedGeoBackend.Code:
		status = http.StatusNotImplemented
	}

	c.JSON(status, gin.H{"code": coded.Code, "message": coded.Message})
}

// respondEmptyFilter answers an empty-filter warning: HTTP 200, the
// warning code, and an empty page. Callers must have checked
// apperr.IsEmptyFilter first.
func respondEmptyFilter(c *gin.Context, err error, perPage int) {
	coded := err.(*apperr.Error)
	c.JSON(http.StatusOK, gin.H{
		"code":    coded.Code,
		"message": coded.Message,
		"data": gin.H{
			"list":    []struct{}{},
			"total":   0,
			"perPage": perPage,
		},
	})
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "ok", "data": data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "ok", "data": data})
}

// queryParams flattens the request query string for cache fingerprinting.
func queryParams(c *gin.Context) map[string]string {
	params := map[string]string{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}
