// Package route implements the Route Ingester: it walks the "routes" tree
// of a configuration document into a flat, ordered list of fully-qualified
// paths paired with a compiled response DataType, ready to be registered
// against an HTTP router.
package route

import (
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/netnix-sa/moquist/internal/schema"
)

// Route is a fully-qualified HTTP path paired with the DataType that
// defines its response.
type Route struct {
	Path     string
	Response schema.DataType
}

// Table is the ordered sequence of routes a server registers, in
// registration order: every static path (one whose last segment has no
// ":") precedes every dynamic path.
type Table []Route

// Ingest recursively walks root's "routes" tree, accumulating the
// fully-qualified path by concatenating each ancestor segment onto the
// parent's path exactly as written in the configuration — no separator is
// inserted, so route keys are expected to carry their own leading "/" as
// the reference configuration format does.
func Ingest(root gjson.Result) (Table, error) {
	var table Table
	var walkErr error

	var walk func(node gjson.Result, parent string)
	walk = func(node gjson.Result, parent string) {
		routes := node.Get("routes")
		if !routes.Exists() || !routes.IsObject() {
			return
		}

		routes.ForEach(func(key, child gjson.Result) bool {
			path := parent + key.String()

			if resp := child.Get("response"); resp.Exists() {
				dt, err := compileResponse(resp)
				if err != nil {
					walkErr = err
					return false
				}
				table = append(table, Route{Path: path, Response: dt})
			}

			walk(child, path)
			return walkErr == nil
		})
	}

	walk(root, "")
	if walkErr != nil {
		return nil, walkErr
	}

	Order(table)

	return table, nil
}

// Order sorts table in place so that every static path (last segment
// without ":") precedes every dynamic path. Within each partition, routes
// are sorted lexicographically by path for a deterministic registration
// sequence.
func Order(table Table) {
	sort.SliceStable(table, func(i, j int) bool {
		iDynamic := isDynamic(table[i].Path)
		jDynamic := isDynamic(table[j].Path)

		if iDynamic != jDynamic {
			return !iDynamic
		}

		return table[i].Path < table[j].Path
	})
}

func isDynamic(path string) bool {
	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	return strings.Contains(last, ":")
}

// compileResponse compiles a route's "response" value per the Route
// Ingester's shape table; the first matching form wins.
func compileResponse(resp gjson.Result) (schema.DataType, error) {
	if resp.Type == gjson.String {
		return responseFromSchemaRef(resp.String()), nil
	}

	if resp.IsObject() {
		schemaVal := resp.Get("schema")
		if !schemaVal.Exists() {
			return schema.DataType{Kind: schema.KindNull}, nil
		}

		if schemaVal.Type == gjson.String {
			return responseFromSchemaRef(schemaVal.String()), nil
		}

		if schemaVal.IsObject() {
			return schema.CompileResponseSchema(schemaVal)
		}
	}

	return schema.DataType{Kind: schema.KindNull}, nil
}

// responseFromSchemaRef handles both "Name" and "Name[]" reference forms.
func responseFromSchemaRef(name string) schema.DataType {
	if strings.Contains(name, "[]") {
		name = strings.Replace(name, "[]", "", 1)
		elem := schema.DataType{Kind: schema.KindObject, Obj: &schema.ObjectExpr{Kind: schema.ObjectSchemaRef, SchemaName: name}}
		return schema.DataType{Kind: schema.KindArray, Arr: &schema.ArrayExpr{Kind: schema.ArrayGenerated, Element: &elem}}
	}

	return schema.DataType{Kind: schema.KindObject, Obj: &schema.ObjectExpr{Kind: schema.ObjectSchemaRef, SchemaName: name}}
}
