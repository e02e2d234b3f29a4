package value

import (
	"bytes"
	"encoding/json"
)

// Object is a JSON object that remembers insertion order. encoding/json
// sorts the keys of a plain map[string]interface{} alphabetically when
// marshaling, which would silently discard the field order the Value
// Builder is required to preserve (see Object construction in the Value
// Builder contract), so every generated object is built as one of these
// instead.
type Object struct {
	keys   []string
	values map[string]interface{}
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]interface{})}
}

// Set appends key to the iteration order the first time it's seen; a
// repeated key keeps its original position and only its value is updated.
func (o *Object) Set(key string, val interface{}) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = val
}

// MarshalJSON implements json.Marshaler, writing members in insertion
// order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
