package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brokerdesk/backend/internal/service/suggestion"
)

// SuggestionHandler 运营内容建议
type SuggestionHandler struct {
	provider suggestion.Provider
}

func NewSuggestionHandler(provider suggestion.Provider) *SuggestionHandler {
	return &SuggestionHandler{provider: provider}
}

func (h *SuggestionHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	items, err := h.provider.Suggest(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}
