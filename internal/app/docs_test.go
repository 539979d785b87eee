package app

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	_ "stockfolio/docs"
	"stockfolio/internal/repository"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var pathVar = regexp.MustCompile(`\{(\w+):[^}]*\}`)

func TestSwaggerDocMatchesRoutes(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc), "swagger-документ должен быть валидным JSON")

	routes := map[string]string{}
	router := NewRouter(repository.NewMemoryTabRepository(), "")
	err = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tpl, err := route.GetPathTemplate()
		if err != nil || !strings.HasPrefix(tpl, "/api/") {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		routes[pathVar.ReplaceAllString(tpl, "{$1}")] = strings.ToLower(methods[0])
		return nil
	})
	require.NoError(t, err)
	require.Len(t, routes, 4)

	assert.Len(t, doc.Paths, len(routes))
	for path, method := range routes {
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "нет описания для %s", path) {
			assert.Contains(t, ops, method, path)
		}
	}
}
