// Package http provides the dashboard transport
package http

import (
	stdhttp "net/http"

	"payscope/internal/core/chart"
	"payscope/internal/core/export"
	"payscope/internal/modkit/httpkit"
	"payscope/internal/services/api/dashboard/domain"
	svc "payscope/internal/services/api/dashboard/service"
)

// bodyOpts lets an empty body mean "reset criteria"
var bodyOpts = httpkit.JSONOptions{MaxBytes: 256 << 10, DisallowUnknown: true, AllowEmptyBody: true}

// Register mounts the dashboard routes
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/controls", h.controls)
	httpkit.PostJSON(r, "/apply", h.apply, bodyOpts)
	httpkit.PostBind(r, "/export", h.export, bodyOpts)
	httpkit.Get(r, "/charts", h.charts)
	httpkit.PostBind(r, "/charts/{name}", h.chart, bodyOpts)
	httpkit.Post(r, "/reload", h.reload)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /dashboard/controls Dashboard controls
// @Summary Sidebar options and reset state
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.ControlsOutput "ok"
// @Failure 503 {object} httpkit.Envelope "dataset unavailable"
// @Router /dashboard/controls [get]
func (h *handlers) controls(r *stdhttp.Request) (any, error) {
	return h.svc.Controls(r.Context())
}

// swagger:route POST /dashboard/apply Dashboard apply
// @Summary Filter the dataset and summarize the subset
// @Tags dashboard
// @Accept json
// @Produce json
// @Param payload body domain.ApplyInput false "Criteria"
// @Success 200 {object} domain.ApplyOutput "ok"
// @Failure 400 {object} httpkit.Envelope "invalid criteria"
// @Failure 503 {object} httpkit.Envelope "dataset unavailable"
// @Router /dashboard/apply [post]
func (h *handlers) apply(r *stdhttp.Request, in domain.ApplyInput) (any, error) {
	return h.svc.Apply(r.Context(), in)
}

// swagger:route POST /dashboard/export Dashboard export
// @Summary Download the filtered subset as CSV
// @Tags dashboard
// @Accept json
// @Produce text/csv
// @Param payload body domain.CriteriaInput false "Criteria"
// @Success 200 {file} file "filtered_employees.csv"
// @Router /dashboard/export [post]
func (h *handlers) export(r *stdhttp.Request, in domain.CriteriaInput) httpkit.Response {
	body, err := h.svc.Export(r.Context(), in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Attachment(export.ContentType, export.FileName, body)
}

// ChartsOutput lists the renderable charts
type ChartsOutput struct {
	Names   []string `json:"names"`
	Formats []string `json:"formats"`
}

// swagger:route GET /dashboard/charts Dashboard charts
// @Summary Chart names and formats
// @Tags dashboard
// @Produce json
// @Success 200 {object} ChartsOutput "ok"
// @Router /dashboard/charts [get]
func (h *handlers) charts(_ *stdhttp.Request) (any, error) {
	return ChartsOutput{Names: chart.Names(), Formats: []string{string(chart.PNG), string(chart.SVG)}}, nil
}

// swagger:route POST /dashboard/charts/{name} Dashboard chart
// @Summary Render one chart for the filtered subset
// @Tags dashboard
// @Accept json
// @Produce image/png,image/svg+xml
// @Param name path string true "Chart name"
// @Param format query string false "png or svg"
// @Param payload body domain.CriteriaInput false "Criteria"
// @Success 200 {file} file "image"
// @Failure 404 {object} httpkit.Envelope "unknown chart or nothing to draw"
// @Router /dashboard/charts/{name} [post]
func (h *handlers) chart(r *stdhttp.Request, in domain.CriteriaInput) httpkit.Response {
	f, err := chart.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		return httpkit.Error(badFormat(err))
	}
	body, err := h.svc.Chart(r.Context(), httpkit.PathParam(r, "name"), f, in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Bytes(f.ContentType(), body)
}

// swagger:route POST /dashboard/reload Dashboard reload
// @Summary Reload the dataset from the backing store
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.ReloadOutput "ok"
// @Failure 503 {object} httpkit.Envelope "dataset unavailable"
// @Router /dashboard/reload [post]
func (h *handlers) reload(r *stdhttp.Request) (any, error) {
	return h.svc.Reload(r.Context())
}
