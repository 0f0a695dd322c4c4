package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SupportHandlers serves the support chat entry point
type SupportHandlers struct {
	// linkFunc builds the messaging deep link for a prefilled text
	linkFunc func(text string) string
}

// NewSupportHandlers creates new support handlers
func NewSupportHandlers(linkFunc func(text string) string) *SupportHandlers {
	return &SupportHandlers{linkFunc: linkFunc}
}

// Link returns the deep link that opens a support conversation
func (h *SupportHandlers) Link(c *gin.Context) {
	text := c.DefaultQuery("text", "Hello, I need help with my tax invoice.")
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"link": h.linkFunc(text)},
	})
}
