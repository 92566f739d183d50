package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/services"
)

func ReportSummary(r *services.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum, err := r.Summary(c.Request.Context(), c.Query("from"), c.Query("to"))
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, sum)
	}
}

func AuditTrail(r *services.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		trail, err := r.Audit(c.Request.Context(), c.Query("entity"), c.Query("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, trail)
	}
}
