package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDoc_Registered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	var doc struct {
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if doc.BasePath != "/api" {
		t.Fatalf("basePath = %q", doc.BasePath)
	}

	routes := map[string][]string{
		"/plantes":                           {"get", "post", "delete"},
		"/plantes/{id}":                      {"get", "put", "delete"},
		"/plantes/categorie/{categorie}":     {"get"},
		"/arrosage":                          {"get", "post"},
		"/arrosage/{id}":                     {"get", "put", "delete"},
		"/arrosage/{id}/toggle":              {"patch"},
		"/arrosage/manuel/plante/{planteId}": {"post"},
		"/arrosage/manuel/global":            {"post"},
		"/arrosage/stop":                     {"post"},
		"/arrosage/scheduled":                {"get"},
		"/historique":                        {"get"},
		"/historique/plante/{planteId}":      {"get"},
		"/historique/{historiqueId}":         {"delete"},
		"/historique/statistiques":           {"get"},
		"/historique/statistiques/{periode}": {"get"},
		"/historique/export.xlsx":            {"get"},
		"/capteurs/lecture":                  {"get"},
	}
	for path, methods := range routes {
		for _, m := range methods {
			if _, ok := doc.Paths[path][m]; !ok {
				t.Errorf("missing %s %s", m, path)
			}
		}
	}

	for _, def := range []string{"handlers.Envelope", "handlers.ErrorResponse", "domain.WateringSession", "domain.Kind", "services.HistoryPage"} {
		if _, ok := doc.Definitions[def]; !ok {
			t.Errorf("missing definition %s", def)
		}
	}
}
