package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mailtriage/internal/stats"
	"mailtriage/internal/transport/http/response"
)

// StatsHandler exposes the aggregate triage counters. reader is nil when the
// stats pipeline is disabled by configuration.
type StatsHandler struct {
	reader stats.Reader
}

func NewStatsHandler(reader stats.Reader) *StatsHandler {
	return &StatsHandler{reader: reader}
}

func (h *StatsHandler) Totals(c *gin.Context) {
	if h.reader == nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeStatsUnavailable,
			"Estatísticas desabilitadas nesta instância.")
		return
	}

	totals, err := h.reader.Totals(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeStatsUnavailable,
			"Estatísticas indisponíveis no momento.")
		return
	}
	c.JSON(http.StatusOK, totals)
}
