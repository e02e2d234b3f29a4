// Package config loads the configuration document a server is started
// with: a JSON5-flavored file (comments and trailing commas allowed) that
// the Schema Ingester and Route Ingester both read from.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
)

// Load reads the file at path, strips JSON5-style comments and trailing
// commas with hujson, and parses the result into a gjson.Result ready for
// the ingesters to walk. Any failure here is a startup error: the caller
// is expected to log it and exit rather than attempt to serve with a
// partially-loaded configuration.
func Load(path string) (gjson.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, errors.Wrapf(err, "reading configuration file %q", path)
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return gjson.Result{}, errors.Wrapf(err, "configuration file %q is not valid JSON5", path)
	}

	if !gjson.ValidBytes(standardized) {
		return gjson.Result{}, errors.Errorf("configuration file %q did not parse into a valid JSON document", path)
	}

	root := gjson.ParseBytes(standardized)
	if !root.IsObject() {
		return gjson.Result{}, errors.Errorf("configuration file %q must contain a top-level object", path)
	}

	return root, nil
}
