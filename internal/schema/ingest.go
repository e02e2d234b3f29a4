package schema

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Ingest walks the top-level "schemas" object of a parsed configuration
// document and compiles each entry into a Schema, building the process-
// lifetime Map that the Value Builder resolves named references against.
// Unknown top-level keys inside a schema entry (anything besides "fields")
// are ignored.
func Ingest(root gjson.Result) (Map, error) {
	out := make(Map)

	schemas := root.Get("schemas")
	if !schemas.Exists() {
		return out, nil
	}

	if !schemas.IsObject() {
		return nil, errors.New(`"schemas" must be an object mapping schema name to schema description`)
	}

	var ferr error
	schemas.ForEach(func(key, val gjson.Result) bool {
		name := key.String()

		fields, err := compileSchemaFields(val)
		if err != nil {
			ferr = errors.Wrapf(err, "schema %q", name)
			return false
		}

		out[name] = &Schema{Name: name, Fields: fields}
		return true
	})
	if ferr != nil {
		return nil, ferr
	}

	return out, nil
}
