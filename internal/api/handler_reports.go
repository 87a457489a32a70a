package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel-income-backend/internal/model"
	"hostel-income-backend/internal/report"
	"hostel-income-backend/internal/upstream"
)

// RunReport handles GET /api/owners/{owner_id}/report.
// Every call recomputes the report from a fresh upstream snapshot and persists
// the run. When both bounds are omitted the dashboard default window applies;
// a half-specified or invalid range is rejected.
func (h *Handler) RunReport(c *gin.Context) {
	ownerID := c.Param("owner_id")
	startStr := c.Query("start")
	endStr := c.Query("end")

	var qr report.Range
	if startStr == "" && endStr == "" {
		qr = report.DefaultRange(time.Now())
	} else {
		var err error
		qr, err = report.NewRange(startStr, endStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	res, err := h.engine.Run(c.Request.Context(), ownerID, qr)
	if err != nil {
		h.abortWithUpstreamError(c, ownerID, err)
		return
	}

	payload, err := json.Marshal(res)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to encode report"})
		return
	}

	run := &model.ReportRun{
		OwnerID:      ownerID,
		Hostel:       res.Meta.Hostel,
		RangeStart:   res.Meta.Start,
		RangeEnd:     res.Meta.End,
		Expected:     res.Totals.Expected,
		Received:     res.Totals.Received,
		Pending:      res.Totals.Pending,
		CountAll:     res.Totals.CountAll,
		CountPending: res.Totals.CountPending,
		Payload:      string(payload),
	}
	if err := h.store.SaveReportRun(c.Request.Context(), run); err != nil {
		// The computed report is still good; losing the archive row is not
		// worth failing the request over.
		h.log.Error("failed to persist report run",
			zap.String("owner_id", ownerID), zap.Error(err))
	}

	c.JSON(http.StatusOK, res)
}

// ListReports handles GET /api/owners/{owner_id}/reports.
func (h *Handler) ListReports(c *gin.Context) {
	ownerID := c.Param("owner_id")
	limit, _ := strconv.Atoi(c.Query("limit"))

	runs, err := h.store.ListReportRuns(c.Request.Context(), ownerID, limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to list report runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": runs})
}

// ExportReport handles GET /api/reports/{report_id}/export, serving the stored
// payload of a past run as a JSON download.
func (h *Handler) ExportReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("report_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	run, err := h.store.GetReportRun(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "report not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		}
		return
	}

	filename := fmt.Sprintf("income-report-%s_to_%s.json", run.RangeStart, run.RangeEnd)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", []byte(run.Payload))
}

// GetAvailability handles GET /api/owners/{owner_id}/availability.
func (h *Handler) GetAvailability(c *gin.Context) {
	ownerID := c.Param("owner_id")

	summary, err := h.engine.Availability(c.Request.Context(), ownerID)
	if err != nil {
		h.abortWithUpstreamError(c, ownerID, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) abortWithUpstreamError(c *gin.Context, ownerID string, err error) {
	switch {
	case errors.Is(err, report.ErrMissingOwnerID):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": report.ErrMissingOwnerID.Error()})
	case errors.Is(err, upstream.ErrNoHostel):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no hostel found for owner"})
	default:
		h.log.Error("upstream fetch failed", zap.String("owner_id", ownerID), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to load data from the property-management backend"})
	}
}
