// Package swaggerkit serves Swagger UI and an OpenAPI document built from the mounted routes
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	phttp "mealmax/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	uiPath  = "/api/docs"
	docPath = uiPath + "/doc.json"
	apiBase = "/api/v1"
)

// Mount serves the UI under /api/docs/ when enabled
// the document is built on first request so routes mounted after Mount are included
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	var (
		once sync.Once
		doc  []byte
	)
	r.Get(uiPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, uiPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(docPath, func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() { doc = Document(r.Mux()) })
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	})
	r.Handle(uiPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docPath),
	))
}

type operation struct {
	OperationID string              `json:"operationId"`
	Tags        []string            `json:"tags"`
	Responses   map[string]response `json:"responses"`
}

type response struct {
	Description string `json:"description"`
}

// Document walks h (a chi router) and lists every /api/v1 route as an OpenAPI path
// anything that is not a chi router yields a document without paths
func Document(h http.Handler) []byte {
	paths := map[string]map[string]operation{}
	if routes, ok := h.(chi.Routes); ok {
		_ = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if !strings.HasPrefix(route, apiBase+"/") {
				return nil
			}
			p := strings.TrimSuffix(strings.TrimPrefix(route, apiBase), "/")
			if p == "" {
				return nil
			}
			if paths[p] == nil {
				paths[p] = map[string]operation{}
			}
			paths[p][strings.ToLower(method)] = operation{
				OperationID: opID(method, p),
				Tags:        []string{tag(p)},
				Responses:   map[string]response{"default": {Description: "envelope"}},
			}
			return nil
		})
	}

	b, _ := json.Marshal(map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]string{"title": "MealMax API", "version": "0.1.0"},
		"servers": []map[string]string{{"url": apiBase}},
		"tags":    tags(paths),
		"paths":   paths,
	})
	return b
}

// tag is the first path segment, e.g. meals for /meals/{id}
func tag(p string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")
	return seg
}

func tags(paths map[string]map[string]operation) []map[string]string {
	seen := map[string]bool{}
	for p := range paths {
		seen[tag(p)] = true
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	list := make([]map[string]string, len(out))
	for i, t := range out {
		list[i] = map[string]string{"name": t}
	}
	return list
}

func opID(method, p string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, seg := range strings.Split(p, "/") {
		seg = strings.Trim(seg, "{}")
		for _, part := range strings.FieldsFunc(seg, func(r rune) bool { return r == '-' || r == '_' }) {
			b.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}
	return b.String()
}
