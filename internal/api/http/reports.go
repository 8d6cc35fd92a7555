package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdoElHodaky/orderbook-engine/internal/audit"
)

// ReportHandlers exposes the read-only aggregate reporting surface
// backed by the audit trail.
type ReportHandlers struct {
	reporter *audit.Reporter
}

// NewReportHandlers builds a ReportHandlers bound to reporter.
func NewReportHandlers(reporter *audit.Reporter) *ReportHandlers {
	return &ReportHandlers{reporter: reporter}
}

// Register mounts the reporting routes onto r.
func (h *ReportHandlers) Register(r gin.IRouter) {
	r.GET("/v1/reports/daily-matches", h.getDailyMatches)
}

func (h *ReportHandlers) getDailyMatches(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, errorDTO{Error: "days must be a positive integer"})
			return
		}
		days = parsed
	}

	rows, err := h.reporter.DailyMatchCounts(days)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, errorDTO{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
