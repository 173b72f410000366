package api

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiraggahujaa/metaverse-workspace/docs"
)

var pathParam = regexp.MustCompile(`:(\w+)`)

// undocumented routes serve pages or operations tooling, not the JSON API.
var undocumented = map[string]bool{
	"GET /":             true,
	"GET /auth/signin":  true,
	"GET /auth/signup":  true,
	"GET /health":       true,
	"GET /health/ready": true,
	"GET /metrics":      true,
	"GET /swagger":      true,
	"GET /swagger/*":    true,
}

func TestSwaggerDocMatchesRoutes(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[strings.ToUpper(method)+" "+path] = true
		}
	}

	env := newTestEnv(t, nil)
	served := map[string]bool{}
	for _, r := range env.e.Routes() {
		key := r.Method + " " + r.Path
		if undocumented[key] {
			continue
		}
		key = r.Method + " " + pathParam.ReplaceAllString(r.Path, "{$1}")
		served[key] = true
		assert.True(t, documented[key], "route %s has no swagger operation", key)
	}
	for key := range documented {
		assert.True(t, served[key], "swagger operation %s has no route", key)
	}
}
