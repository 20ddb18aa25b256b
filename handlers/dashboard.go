package handlers

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"securecheck/models"
	"securecheck/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTemplate = template.Must(
	template.New("").Funcs(template.FuncMap{
		"json": func(v any) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(b)
		},
		"cell": models.Cell,
	}).ParseFS(templateFS, "templates/*.html"),
)

type DashboardHandler struct {
	store       *services.Store
	catalog     *services.Catalog
	broadcaster *services.Broadcaster
	log         *zap.Logger
	now         func() time.Time
}

func NewDashboardHandler(store *services.Store, catalog *services.Catalog, b *services.Broadcaster, log *zap.Logger, now func() time.Time) *DashboardHandler {
	return &DashboardHandler{store: store, catalog: catalog, broadcaster: b, log: log, now: now}
}

type pageData struct {
	Notices        []models.Notice
	Table          *models.Table
	Metrics        models.Metrics
	ViolationChart models.Chart
	GenderChart    models.Chart
	Queries        []string
	SelectedQuery  string
	QueryResult    *models.Table
	Durations      []string
	Form           models.PredictionInput
	FormError      string
	Prediction     *models.Prediction
}

// Page renders the whole dashboard. With ?query=<name> it also runs that
// catalog query.
func (h *DashboardHandler) Page(c *gin.Context) {
	notices := &services.Notices{}
	data, _ := h.load(c, notices)

	if name := c.Query("query"); name != "" {
		data.SelectedQuery = name
		result, err := h.catalog.Run(c.Request.Context(), name, notices)
		if err != nil {
			notices.Warn(err.Error())
		} else {
			data.QueryResult = result
		}
	}

	data.Notices = notices.Items
	c.HTML(http.StatusOK, "dashboard.html", data)
}

// Predict handles the "new police log" form. The submitted record is only
// used for the lookup and is never stored.
func (h *DashboardHandler) Predict(c *gin.Context) {
	notices := &services.Notices{}
	data, records := h.load(c, notices)

	var form models.PredictionInput
	status := http.StatusOK
	if err := c.ShouldBind(&form); err != nil {
		data.FormError = err.Error()
		status = http.StatusBadRequest
	} else if err := services.ValidateInput(&form, h.now()); err != nil {
		data.FormError = err.Error()
		status = http.StatusBadRequest
	} else {
		now := h.now()
		p := services.Predict(records, form, now)
		ev := h.broadcaster.Announce(c.Request.Context(), form, p, now)
		h.log.Info("prediction served",
			zap.String("event_id", ev.ID),
			zap.Int("matches", p.Matches),
			zap.Bool("fallback", p.Fallback))
		data.Prediction = &p
	}
	if form.DriverGender != "" {
		data.Form = form
	}

	data.Notices = notices.Items
	c.HTML(status, "dashboard.html", data)
}

// load runs the steps every render shares: one full-table fetch, then the
// table, metrics, charts, catalog and form defaults derived from it.
func (h *DashboardHandler) load(c *gin.Context, notices *services.Notices) (*pageData, []models.StopRecord) {
	services.PageRenders.Inc()
	table := h.store.FetchAll(c.Request.Context(), notices)
	records := models.RecordsFromTable(table)

	durations := services.StopDurationOptions(table)
	data := &pageData{
		Table:          table,
		Metrics:        services.ComputeMetrics(records),
		ViolationChart: services.ViolationChart(table),
		GenderChart:    services.GenderChart(table),
		Queries:        h.catalog.Names(),
		Durations:      durations,
		Form: models.PredictionInput{
			DriverGender: "male",
			DriverAge:    27,
			StopDuration: durations[0],
		},
	}
	return data, records
}
