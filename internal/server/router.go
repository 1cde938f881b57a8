// Package server exposes the extraction and validation pipeline over
// HTTP: a health probe, JSON-only validation, and a combined
// upload-extract-validate endpoint for PDF batches.
package server

import (
	"github.com/gin-gonic/gin"
)

// NewRouter configures the gin engine with all routes and middleware.
func NewRouter(handler *Handler) *gin.Engine {
	r := gin.New()

	r.Use(Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger())

	r.GET("/health", handler.Health)
	r.POST("/validate-json", handler.ValidateJSON)
	r.POST("/extract-and-validate-pdfs", handler.ExtractAndValidatePDFs)

	return r
}
