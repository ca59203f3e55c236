// internal/handlers/export.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// responseSink streams an export straight into the HTTP response.
type responseSink struct {
	c *gin.Context
}

func (s responseSink) SetHeader(contentType, filename string) {
	s.c.Header("Content-Type", contentType)
	s.c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	s.c.Status(http.StatusOK)
}

func (s responseSink) Write(p []byte) (int, error) {
	return s.c.Writer.Write(p)
}
