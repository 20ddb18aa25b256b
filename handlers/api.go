package handlers

import (
	"errors"
	"net/http"
	"time"

	"securecheck/models"
	"securecheck/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler serves the dashboard's data as JSON. Like the page, every call
// fetches what it needs fresh; database failures show up as empty data plus
// notices, not as error statuses.
type APIHandler struct {
	store       *services.Store
	catalog     *services.Catalog
	broadcaster *services.Broadcaster
	log         *zap.Logger
	now         func() time.Time
}

func NewAPIHandler(store *services.Store, catalog *services.Catalog, b *services.Broadcaster, log *zap.Logger, now func() time.Time) *APIHandler {
	return &APIHandler{store: store, catalog: catalog, broadcaster: b, log: log, now: now}
}

func (h *APIHandler) Records(c *gin.Context) {
	p := ParsePagination(c)
	notices := &services.Notices{}
	table := h.store.FetchAll(c.Request.Context(), notices)

	page := table.Slice(p.Offset, p.Limit)
	resp := PageResponse{Data: page, Total: table.Len()}
	if end := p.Offset + page.Len(); end < table.Len() {
		resp.HasMore = true
		resp.NextOffset = end
	}
	c.JSON(http.StatusOK, gin.H{"page": resp, "notices": notices.Items})
}

func (h *APIHandler) Metrics(c *gin.Context) {
	notices := &services.Notices{}
	table := h.store.FetchAll(c.Request.Context(), notices)
	metrics := services.ComputeMetrics(models.RecordsFromTable(table))
	c.JSON(http.StatusOK, gin.H{"metrics": metrics, "notices": notices.Items})
}

func (h *APIHandler) Chart(c *gin.Context) {
	var build func(*models.Table) models.Chart
	switch c.Param("name") {
	case "violations":
		build = services.ViolationChart
	case "genders":
		build = services.GenderChart
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart, expected violations or genders"})
		return
	}
	notices := &services.Notices{}
	table := h.store.FetchAll(c.Request.Context(), notices)
	c.JSON(http.StatusOK, gin.H{"chart": build(table), "notices": notices.Items})
}

func (h *APIHandler) Queries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalog.Entries()})
}

type RunQueryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *APIHandler) RunQuery(c *gin.Context) {
	var req RunQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notices := &services.Notices{}
	result, err := h.catalog.Run(c.Request.Context(), req.Name, notices)
	var unknown *services.UnknownQueryError
	if errors.As(err, &unknown) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if result.Empty() {
		notices.Warn("No data available for the selected query.")
	}
	c.JSON(http.StatusOK, gin.H{"name": req.Name, "result": result, "notices": notices.Items})
}

func (h *APIHandler) Predict(c *gin.Context) {
	var in models.PredictionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now := h.now()
	if err := services.ValidateInput(&in, now); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notices := &services.Notices{}
	records := models.RecordsFromTable(h.store.FetchAll(c.Request.Context(), notices))
	p := services.Predict(records, in, now)
	ev := h.broadcaster.Announce(c.Request.Context(), in, p, now)

	c.JSON(http.StatusOK, gin.H{"prediction": p, "event_id": ev.ID, "notices": notices.Items})
}
