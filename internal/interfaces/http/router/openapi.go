package router

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag/v2"
)

// DocsPath serves the Swagger UI at DocsPath/index.html and the document
// at DocsPath/doc.json
const DocsPath = "/swagger"

// apiDocs is the document served by the Swagger UI. swag keeps a single
// global registry, so every engine built in one process shares it.
var apiDocs = &openAPIDoc{}

func init() {
	swag.Register(swag.Name, apiDocs)
}

// openAPIDoc renders the route table as an OpenAPI 3 document
type openAPIDoc struct {
	mu        sync.RWMutex
	title     string
	public    []Route
	protected []Route
}

func (d *openAPIDoc) set(title string, public, protected []Route) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
	d.public = public
	d.protected = protected
}

// ReadDoc implements swag.Swagger
func (d *openAPIDoc) ReadDoc() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	paths := map[string]map[string]any{}
	add := func(r Route, secured bool) {
		path, params := openAPIPath(r.Path)
		op := map[string]any{
			"tags":      []string{routeTag(r.Path)},
			"responses": map[string]any{"200": map[string]any{"description": "OK"}},
		}
		if len(params) > 0 {
			op["parameters"] = params
		}
		if secured {
			op["security"] = []map[string][]string{{"BearerAuth": {}}}
		}
		if r.Permission != "" {
			op["x-permission"] = r.Permission
			op["summary"] = r.Permission
		}
		if paths[path] == nil {
			paths[path] = map[string]any{}
		}
		paths[path][strings.ToLower(r.Method)] = op
	}
	for _, r := range d.public {
		add(r, false)
	}
	for _, r := range d.protected {
		add(r, true)
	}

	doc := map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": d.title, "version": "1.0"},
		"paths":   paths,
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"BearerAuth": map[string]any{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
			},
		},
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// openAPIPath converts gin ":param" segments to "{param}" and lists them
func openAPIPath(path string) (string, []map[string]any) {
	segments := strings.Split(path, "/")
	var params []map[string]any
	for i, s := range segments {
		if strings.HasPrefix(s, ":") {
			name := s[1:]
			segments[i] = "{" + name + "}"
			params = append(params, map[string]any{
				"name":     name,
				"in":       "path",
				"required": true,
				"schema":   map[string]string{"type": "string"},
			})
		}
	}
	return strings.Join(segments, "/"), params
}

// routeTag groups operations by their resource, e.g. "/admin/area/page"
// becomes "admin/area"
func routeTag(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "/")
}

func registerDocs(engine *gin.Engine) {
	engine.GET(DocsPath+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
