// Package swaggerkit serves the hand written OpenAPI document and the Swagger UI
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiYAML []byte

var (
	docOnce sync.Once
	docJSON []byte
	docErr  error
)

// Document returns the OpenAPI document converted to JSON
// The YAML is parsed once, a broken document fails every call with the same error
func Document() ([]byte, error) {
	docOnce.Do(func() {
		docJSON, docErr = toJSON(openapiYAML)
	})
	return docJSON, docErr
}

func toJSON(src []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("openapi: parse yaml: %w", err)
	}
	if _, ok := doc["openapi"]; !ok {
		return nil, fmt.Errorf("openapi: missing version field")
	}
	return json.Marshal(doc)
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := Document()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(b)
	}
}
