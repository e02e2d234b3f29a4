// Package value implements the Value Builder: the request-time side of the
// pipeline that turns a compiled DataType and a Context into a concrete
// JSON-able value, consulting a schema.Map to resolve named references and
// the fake package for name/field/role/UUID-shaped strings.
package value

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/netnix-sa/moquist/internal/fake"
	"github.com/netnix-sa/moquist/internal/schema"
)

// defaultMaxDepth bounds recursion so that a schema whose fields reference
// themselves (directly or through a generated array) fails a single
// request instead of looping forever. Cyclic-schema detection at
// ingestion time is explicitly out of scope (see spec Non-goals); this is
// the generation-time safety net the design notes call for instead.
const defaultMaxDepth = 200

// ErrMaxDepthExceeded is wrapped into the error returned when generation
// recurses past the configured bound.
var ErrMaxDepthExceeded = errors.New("maximum generation depth exceeded (possible schema reference cycle)")

// Builder renders DataType values against a read-only schema.Map. A
// Builder has no mutable state of its own and is safe to share across
// concurrently-handled requests.
type Builder struct {
	Schemas  schema.Map
	MaxDepth int
}

// New returns a Builder backed by schemas, using the default recursion
// bound.
func New(schemas schema.Map) *Builder {
	return &Builder{Schemas: schemas, MaxDepth: defaultMaxDepth}
}

// Build renders dt against ctx into a value ready for JSON encoding: a
// Go bool, int64, float64, string, nil, []interface{}, or *Object.
func (b *Builder) Build(dt schema.DataType, ctx Context) (interface{}, error) {
	return b.build(dt, ctx, 0)
}

func (b *Builder) build(dt schema.DataType, ctx Context, depth int) (interface{}, error) {
	if depth > b.maxDepth() {
		return nil, ErrMaxDepthExceeded
	}

	switch dt.Kind {
	case schema.KindNull:
		return nil, nil

	case schema.KindBoolean:
		return dt.Bool, nil

	case schema.KindEnum:
		if len(dt.Enum) == 0 {
			return nil, errors.New("enum field has no candidate values")
		}
		key := hashedKey(ctx)
		return dt.Enum[key%uint64(len(dt.Enum))], nil

	case schema.KindString:
		if dt.Str == nil {
			return nil, errors.New("string field is missing its expression")
		}
		return b.renderString(*dt.Str, ctx, hashedKey(ctx))

	case schema.KindNumber:
		if dt.Num == nil {
			return nil, errors.New("number field is missing its expression")
		}
		return b.renderNumber(*dt.Num, hashedKey(ctx))

	case schema.KindArray:
		if dt.Arr == nil {
			return nil, errors.New("array field is missing its expression")
		}
		return b.buildArray(*dt.Arr, ctx, depth)

	case schema.KindObject:
		if dt.Obj == nil {
			return nil, errors.New("object field is missing its expression")
		}
		return b.buildObject(*dt.Obj, ctx, depth)
	}

	return nil, errors.Errorf("unrecognized datatype kind %v", dt.Kind)
}

func (b *Builder) maxDepth() int {
	if b.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return b.MaxDepth
}

// buildArray implements Array(Literal(...)) and Array(Generated(...)).
func (b *Builder) buildArray(expr schema.ArrayExpr, ctx Context, depth int) (interface{}, error) {
	switch expr.Kind {
	case schema.ArrayLiteral:
		out := make([]interface{}, 0, len(expr.Literal))
		for _, elem := range expr.Literal {
			v, err := b.build(elem, ctx, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case schema.ArrayGenerated:
		if expr.Element == nil {
			return nil, errors.New("generated array is missing its element template")
		}

		key := hashedKey(ctx)
		out := make([]interface{}, 0, ctx.Size)
		for i := uint64(0); i < ctx.Size; i++ {
			elemCtx := Context{ID: nil, Seed: key + i, Size: ctx.Size}
			v, err := b.build(*expr.Element, elemCtx, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	return nil, errors.Errorf("unrecognized array expr kind %v", expr.Kind)
}

// buildObject implements Object(Object(fields)) and Object(Schema(name)).
func (b *Builder) buildObject(expr schema.ObjectExpr, ctx Context, depth int) (interface{}, error) {
	var fields []schema.Field

	switch expr.Kind {
	case schema.ObjectFields:
		fields = expr.Fields

	case schema.ObjectSchemaRef:
		s, ok := b.Schemas.Lookup(expr.SchemaName)
		if !ok {
			return nil, errors.Errorf("unknown schema reference %q", expr.SchemaName)
		}
		fields = s.Fields

	default:
		return nil, errors.Errorf("unrecognized object expr kind %v", expr.Kind)
	}

	key := hashedKey(ctx)
	fieldCtx := Context{ID: ctx.ID, Seed: key, Size: ctx.Size}

	obj := NewObject()
	for _, field := range fields {
		v, err := b.build(field.Type, fieldCtx, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", field.Name)
		}
		obj.Set(field.Name, v)
	}

	return obj, nil
}

// renderNumber implements Number(Literal|Range|Variable).
func (b *Builder) renderNumber(expr schema.NumberExpr, key uint64) (interface{}, error) {
	switch expr.Kind {
	case schema.NumberLiteral:
		if expr.Literal.IsInt {
			return expr.Literal.Int, nil
		}
		return expr.Literal.Float, nil

	case schema.NumberRange:
		return numberInRange(expr.RangeMin, expr.RangeMax, key)

	case schema.NumberVariable:
		if expr.Variable == "this.id" {
			return int64(key), nil
		}
		n, err := strconv.ParseInt(expr.Variable, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "number variable %q is not an integer", expr.Variable)
		}
		return n, nil
	}

	return nil, errors.Errorf("unrecognized number expr kind %v", expr.Kind)
}

func numberInRange(min, max schema.NumberPrim, key uint64) (interface{}, error) {
	if min.IsInt && max.IsInt {
		diff := uint64(max.Int - min.Int)
		return min.Int + int64(key%diff), nil
	}

	minF, maxF := min.AsFloat(), max.AsFloat()
	diff := maxF - minF

	keyF := float64(key)
	rem := remEuclidF(keyF, diff)
	val := minF + rem

	if isNonFinite(val) {
		return nil, errors.New("number range produced a non-finite value")
	}
	return val, nil
}

// renderString implements String(expr), recursively rendering expr (and,
// for Template, its children) into a single string.
func (b *Builder) renderString(expr schema.StringExpr, ctx Context, key uint64) (string, error) {
	switch expr.Kind {
	case schema.StringLiteral:
		return expr.Literal, nil

	case schema.StringRange:
		diff := uint64(expr.RangeMax - expr.RangeMin)
		val := expr.RangeMin + int64(key%diff)
		return strconv.FormatInt(val, 10), nil

	case schema.StringVariable:
		return b.renderVariable(expr.Variable, ctx, key), nil

	case schema.StringDate:
		return renderDate(expr.Frame, key), nil

	case schema.StringTemplate:
		var sb strings.Builder
		for _, child := range expr.Template {
			s, err := b.renderString(child, ctx, key)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		}
		return sb.String(), nil
	}

	return "", errors.Errorf("unrecognized string expr kind %v", expr.Kind)
}

// renderVariable dispatches the recognized string-variable tokens (spec
// §4.5); anything else falls through to the literal variable name.
func (b *Builder) renderVariable(name string, ctx Context, key uint64) string {
	switch name {
	case "FULL_NAME":
		return fake.FullName(key)
	case "FIELD.name":
		return fake.FieldName(key)
	case "FIELD.value":
		return fake.FieldValue(key)
	case "this.id":
		if ctx.ID != nil {
			return *ctx.ID
		}
		return ""
	case "this.id::UUID", "this.id::UUIDv4":
		return fake.UUIDv4(key)
	case "ADJECTIVE":
		return fake.Adjective(key)
	case "ROLE":
		return fake.Role(key)
	default:
		return name
	}
}
