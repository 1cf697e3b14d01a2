package swaggerkit

import (
	"encoding/json"
	"net/http"

	"payscope/internal/core/version"
)

// docReader builds the document served at /api/docs/doc.json
var docReader = func() ([]byte, error) { return json.Marshal(document()) }

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := docReader()
		if err != nil {
			http.Error(w, "spec build error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(raw)
	}
}

// document is a hand maintained OpenAPI description of the public routes
func document() map[string]any {
	ref := func(name string) map[string]any {
		return map[string]any{"$ref": "#/components/schemas/" + name}
	}
	jsonBody := func(schema map[string]any) map[string]any {
		return map[string]any{"content": map[string]any{"application/json": map[string]any{"schema": schema}}}
	}
	resp := func(desc, contentType string, schema map[string]any) map[string]any {
		return map[string]any{
			"description": desc,
			"content":     map[string]any{contentType: map[string]any{"schema": schema}},
		}
	}
	errors := map[string]any{
		"400": resp("Bad Request", "application/json", ref("Envelope")),
		"503": resp("Dataset unavailable", "application/json", ref("Envelope")),
	}
	withErrors := func(ok map[string]any) map[string]any {
		out := map[string]any{"200": ok}
		for k, v := range errors {
			out[k] = v
		}
		return out
	}
	criteriaBody := jsonBody(ref("Criteria"))
	criteriaBody["required"] = false

	return map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": "payscope API", "version": version.Info().Version},
		"servers": []any{map[string]any{"url": "/api/v1"}},
		"paths": map[string]any{
			"/dashboard/controls": map[string]any{
				"get": map[string]any{"tags": []any{"dashboard"}, "summary": "Sidebar options and reset defaults",
					"responses": withErrors(resp("OK", "application/json", ref("Envelope")))},
			},
			"/dashboard/apply": map[string]any{
				"post": map[string]any{"tags": []any{"dashboard"}, "summary": "Filter the dataset and summarize it",
					"requestBody": criteriaBody,
					"responses":   withErrors(resp("OK", "application/json", ref("Envelope")))},
			},
			"/dashboard/export": map[string]any{
				"post": map[string]any{"tags": []any{"dashboard"}, "summary": "Download the filtered rows as CSV",
					"requestBody": criteriaBody,
					"responses":   withErrors(resp("CSV file", "text/csv", map[string]any{"type": "string"}))},
			},
			"/dashboard/charts": map[string]any{
				"get": map[string]any{"tags": []any{"dashboard"}, "summary": "Chart names and formats",
					"responses": map[string]any{"200": resp("OK", "application/json", ref("Envelope"))}},
			},
			"/dashboard/charts/{name}": map[string]any{
				"post": map[string]any{"tags": []any{"dashboard"}, "summary": "Render one chart of the filtered rows",
					"parameters": []any{
						map[string]any{"name": "name", "in": "path", "required": true, "schema": map[string]any{"type": "string",
							"enum": []any{"domain_share", "salary_histogram", "avg_salary_by_domain", "avg_salary_by_level", "salary_buckets", "avg_bonus_by_domain"}}},
						map[string]any{"name": "format", "in": "query", "schema": map[string]any{"type": "string", "enum": []any{"png", "svg"}}},
					},
					"requestBody": criteriaBody,
					"responses":   withErrors(resp("Image", "image/png", map[string]any{"type": "string", "format": "binary"}))},
			},
			"/dashboard/reload": map[string]any{
				"post": map[string]any{"tags": []any{"dashboard"}, "summary": "Reload the dataset from the backing store",
					"responses": withErrors(resp("OK", "application/json", ref("Envelope")))},
			},
			"/meta/health":  map[string]any{"get": map[string]any{"tags": []any{"meta"}, "responses": map[string]any{"200": resp("OK", "application/json", ref("Envelope"))}}},
			"/meta/ready":   map[string]any{"get": map[string]any{"tags": []any{"meta"}, "responses": withErrors(resp("OK", "application/json", ref("Envelope")))}},
			"/meta/version": map[string]any{"get": map[string]any{"tags": []any{"meta"}, "responses": map[string]any{"200": resp("OK", "application/json", ref("Envelope"))}}},
			"/meta/service": map[string]any{"get": map[string]any{"tags": []any{"meta"}, "responses": map[string]any{"200": resp("OK", "application/json", ref("Envelope"))}}},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Envelope": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"status_code": map[string]any{"type": "integer"},
						"status":      map[string]any{"type": "string"},
						"code":        map[string]any{"type": "string"},
						"error":       map[string]any{"type": "string"},
						"field":       map[string]any{"type": "string"},
						"request_id":  map[string]any{"type": "string"},
						"data":        map[string]any{},
					},
					"required": []any{"status_code", "status"},
				},
				"Criteria": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"domain":           map[string]any{"type": "string", "description": "empty or \"All\" means unconstrained"},
						"level":            map[string]any{"type": "string"},
						"mode":             map[string]any{"type": "string"},
						"year":             map[string]any{"type": "integer"},
						"roles":            map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "omitted means every role, [] means none"},
						"salary_min":       map[string]any{"type": "number"},
						"salary_max":       map[string]any{"type": "number"},
						"high_salary_only": map[string]any{"type": "boolean"},
						"high_bonus_only":  map[string]any{"type": "boolean"},
						"top_roles_only":   map[string]any{"type": "boolean"},
						"limit":            map[string]any{"type": "integer"},
					},
				},
			},
		},
	}
}
