package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	assert "github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/netnix-sa/moquist/internal/route"
	"github.com/netnix-sa/moquist/internal/schema"
	"github.com/netnix-sa/moquist/internal/value"
)

func testServer(t *testing.T, routes route.Table) *Server {
	t.Helper()
	return &Server{
		Builder: value.New(schema.Map{}),
		Routes:  routes,
		Seed:    0,
		Scale:   4,
		Logger:  zap.NewNop(),
	}
}

func TestHandlerServesStaticRoute(t *testing.T) {
	routes := route.Table{
		{Path: "/health", Response: schema.DataType{Kind: schema.KindBoolean, Bool: true}},
	}
	s := testServer(t, routes)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body)
}

func TestHandlerResolvesDynamicSegment(t *testing.T) {
	routes := route.Table{
		{Path: "/users/:id", Response: schema.DataType{
			Kind: schema.KindString,
			Str:  &schema.StringExpr{Kind: schema.StringVariable, Variable: "this.id"},
		}},
	}
	route.Order(routes)
	s := testServer(t, routes)

	req := httptest.NewRequest(http.MethodGet, "/users/abc123", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "abc123", body)
}

func TestHandlerUnknownPathIsNotFound(t *testing.T) {
	s := testServer(t, route.Table{})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChiPatternTranslatesColonSyntax(t *testing.T) {
	assert.Equal(t, "/users/{id}", chiPattern("/users/:id"))
	assert.Equal(t, "/a/{x}/b/{y}", chiPattern("/a/:x/b/:y"))
	assert.Equal(t, "/static", chiPattern("/static"))
}
