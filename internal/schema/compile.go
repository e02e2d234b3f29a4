package schema

import (
	"math"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/netnix-sa/moquist/internal/template"
)

// Compile turns a single raw field description into a DataType. The
// dispatch order below follows the Field Compiler table exactly: the first
// matching shape wins.
func Compile(v gjson.Result) (DataType, error) {
	switch v.Type {
	case gjson.Null:
		return DataType{Kind: KindNull}, nil

	case gjson.True, gjson.False:
		return DataType{Kind: KindBoolean, Bool: v.Bool()}, nil

	case gjson.String:
		return DataType{Kind: KindString, Str: &StringExpr{Kind: StringLiteral, Literal: v.String()}}, nil

	case gjson.Number:
		return compileNumberLiteral(v.Num), nil

	case gjson.JSON:
		if v.IsArray() {
			return compileArrayLiteral(v)
		}
		if v.IsObject() {
			return compileObjectShape(v)
		}
	}

	return DataType{Kind: KindNull}, nil
}

func compileNumberLiteral(n float64) DataType {
	if n == math.Trunc(n) {
		return DataType{Kind: KindNumber, Num: &NumberExpr{Kind: NumberLiteral, Literal: IntegerPrim(int64(n))}}
	}
	return DataType{Kind: KindNumber, Num: &NumberExpr{Kind: NumberLiteral, Literal: FloatPrim(n)}}
}

func compileArrayLiteral(v gjson.Result) (DataType, error) {
	elems := v.Array()
	out := make([]DataType, 0, len(elems))
	for _, e := range elems {
		dt, err := Compile(e)
		if err != nil {
			return DataType{}, err
		}
		out = append(out, dt)
	}
	return DataType{Kind: KindArray, Arr: &ArrayExpr{Kind: ArrayLiteral, Literal: out}}, nil
}

// compileObjectShape dispatches the object forms of a field description:
// template, range, date, items (generated array), fields (inline object),
// and enum/values. An object matching none of these compiles to Null.
func compileObjectShape(v gjson.Result) (DataType, error) {
	if tmpl := v.Get("template"); tmpl.Exists() && tmpl.Type == gjson.String {
		exprs, err := template.Parse(tmpl.String())
		if err != nil {
			return DataType{}, errors.Wrap(err, "compiling template field")
		}
		return DataType{Kind: KindString, Str: &StringExpr{Kind: StringTemplate, Template: toStringExprs(exprs)}}, nil
	}

	if rng := v.Get("range"); rng.Exists() {
		min, max, err := compileRange(rng)
		if err != nil {
			return DataType{}, err
		}
		return DataType{Kind: KindNumber, Num: &NumberExpr{Kind: NumberRange, RangeMin: min, RangeMax: max}}, nil
	}

	if date := v.Get("date"); date.Exists() {
		frame := ParseFrame(date.Get("frame").String())
		return DataType{Kind: KindString, Str: &StringExpr{Kind: StringDate, Frame: frame}}, nil
	}

	if items := v.Get("items"); items.Exists() {
		return compileItems(items)
	}

	if fields := v.Get("fields"); fields.Exists() && fields.IsObject() {
		compiled, err := compileSchemaFields(v)
		if err != nil {
			return DataType{}, err
		}
		return DataType{Kind: KindObject, Obj: &ObjectExpr{Kind: ObjectFields, Fields: compiled}}, nil
	}

	if enumVals, ok := firstStringArray(v, "enum", "values"); ok {
		return DataType{Kind: KindEnum, Enum: enumVals}, nil
	}

	return DataType{Kind: KindNull}, nil
}

// CompileResponseSchema compiles the object form of a route's
// `response.schema` value (see internal/route): either
// `{"items": {"schema": <fieldobj>}}`, producing a generated array of
// inline objects, or a bare `<fieldobj>` with a "fields" object, producing
// a single inline object.
func CompileResponseSchema(schemaVal gjson.Result) (DataType, error) {
	if items := schemaVal.Get("items"); items.Exists() {
		return compileItems(items)
	}

	fields, err := compileSchemaFields(schemaVal)
	if err != nil {
		return DataType{}, err
	}

	return DataType{Kind: KindObject, Obj: &ObjectExpr{Kind: ObjectFields, Fields: fields}}, nil
}

// compileItems handles `{"items": {"schema": ...}}`, the generated-array
// form. The referenced schema may be a name (the form the Field Compiler
// table documents) or an inline field object (the form the Route Ingester
// uses for `items.schema` nested under a raw response definition); both are
// honored here so a field description and a route response can share this
// helper.
func compileItems(items gjson.Result) (DataType, error) {
	schemaVal := items.Get("schema")
	if !schemaVal.Exists() {
		return DataType{Kind: KindNull}, nil
	}

	if schemaVal.Type == gjson.String {
		elem := DataType{Kind: KindObject, Obj: &ObjectExpr{Kind: ObjectSchemaRef, SchemaName: schemaVal.String()}}
		return DataType{Kind: KindArray, Arr: &ArrayExpr{Kind: ArrayGenerated, Element: &elem}}, nil
	}

	if schemaVal.IsObject() {
		fields, err := compileSchemaFields(schemaVal)
		if err != nil {
			return DataType{}, err
		}
		elem := DataType{Kind: KindObject, Obj: &ObjectExpr{Kind: ObjectFields, Fields: fields}}
		return DataType{Kind: KindArray, Arr: &ArrayExpr{Kind: ArrayGenerated, Element: &elem}}, nil
	}

	return DataType{Kind: KindNull}, nil
}

// compileRange accepts either `{"min": a, "max": b}` or `[a, b]`.
func compileRange(rng gjson.Result) (NumberPrim, NumberPrim, error) {
	var minVal, maxVal gjson.Result

	switch {
	case rng.IsArray():
		arr := rng.Array()
		if len(arr) != 2 {
			return NumberPrim{}, NumberPrim{}, errors.New("range array must have exactly two elements")
		}
		minVal, maxVal = arr[0], arr[1]

	case rng.IsObject():
		minVal, maxVal = rng.Get("min"), rng.Get("max")
		if !minVal.Exists() || !maxVal.Exists() {
			return NumberPrim{}, NumberPrim{}, errors.New("range object requires both \"min\" and \"max\"")
		}

	default:
		return NumberPrim{}, NumberPrim{}, errors.New("range must be an object {min,max} or a two-element array")
	}

	min, err := numberPrimFromResult(minVal, "min")
	if err != nil {
		return NumberPrim{}, NumberPrim{}, err
	}
	max, err := numberPrimFromResult(maxVal, "max")
	if err != nil {
		return NumberPrim{}, NumberPrim{}, err
	}

	if max.AsFloat() <= min.AsFloat() {
		return NumberPrim{}, NumberPrim{}, errors.Errorf("range requires max (%v) greater than min (%v)", max.AsFloat(), min.AsFloat())
	}

	return min, max, nil
}

func numberPrimFromResult(v gjson.Result, label string) (NumberPrim, error) {
	if v.Type != gjson.Number {
		return NumberPrim{}, errors.Errorf("range %s must be a number", label)
	}

	n := v.Num
	if n == math.Trunc(n) {
		return IntegerPrim(int64(n)), nil
	}
	return FloatPrim(n), nil
}

// compileSchemaFields iterates the "fields" sub-object of obj in document
// order, compiling each one. Field order is preserved; if a field name
// repeats, the last write wins but the field keeps its first position,
// which is the deterministic and minimally-surprising reading of an
// unexpected duplicate.
func compileSchemaFields(obj gjson.Result) ([]Field, error) {
	fieldsObj := obj.Get("fields")
	if !fieldsObj.Exists() {
		return nil, nil
	}

	var out []Field
	position := make(map[string]int)
	var ferr error

	fieldsObj.ForEach(func(key, val gjson.Result) bool {
		dt, err := Compile(val)
		if err != nil {
			ferr = errors.Wrapf(err, "field %q", key.String())
			return false
		}

		name := key.String()
		if idx, ok := position[name]; ok {
			out[idx] = Field{Name: name, Type: dt}
		} else {
			position[name] = len(out)
			out = append(out, Field{Name: name, Type: dt})
		}

		return true
	})

	if ferr != nil {
		return nil, ferr
	}

	return out, nil
}

// firstStringArray returns the string elements of whichever of keys exists
// first on v.
func firstStringArray(v gjson.Result, keys ...string) ([]string, bool) {
	for _, key := range keys {
		arr := v.Get(key)
		if !arr.Exists() || !arr.IsArray() {
			continue
		}

		elems := arr.Array()
		out := make([]string, 0, len(elems))
		for _, e := range elems {
			out = append(out, e.String())
		}
		return out, true
	}

	return nil, false
}

func toStringExprs(exprs []template.Expr) []StringExpr {
	out := make([]StringExpr, 0, len(exprs))
	for _, e := range exprs {
		switch e.Kind {
		case template.KindLiteral:
			out = append(out, StringExpr{Kind: StringLiteral, Literal: e.Literal})
		case template.KindRange:
			out = append(out, StringExpr{Kind: StringRange, RangeMin: e.RangeMin, RangeMax: e.RangeMax})
		case template.KindVariable:
			out = append(out, StringExpr{Kind: StringVariable, Variable: e.Variable})
		}
	}
	return out
}
