package api

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/swaggo/swag"
)

//go:embed docs/openapi.json
var openAPIJSON []byte

// apiDoc is the OpenAPI document handed to the swagger UI. The server URL
// follows the configured base path.
type apiDoc struct {
	mu       sync.RWMutex
	basePath string
}

var doc = &apiDoc{basePath: "/api"}

func init() {
	swag.Register(swag.Name, doc)
}

func (d *apiDoc) setBasePath(basePath string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.basePath = basePath
}

func (d *apiDoc) ReadDoc() string {
	d.mu.RLock()
	basePath := d.basePath
	d.mu.RUnlock()

	var spec map[string]interface{}
	if err := json.Unmarshal(openAPIJSON, &spec); err != nil {
		return string(openAPIJSON)
	}
	spec["servers"] = []map[string]string{{"url": basePath}}

	out, err := json.Marshal(spec)
	if err != nil {
		return string(openAPIJSON)
	}
	return string(out)
}
