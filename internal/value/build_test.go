package value

import (
	"encoding/json"
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/netnix-sa/moquist/internal/schema"
)

func strp(s string) *string { return &s }

func TestBuildLiteralScalars(t *testing.T) {
	b := New(nil)

	v, err := b.Build(schema.DataType{Kind: schema.KindNull}, Context{})
	assert.NoError(t, err)
	assert.Nil(t, v)

	v, err = b.Build(schema.DataType{Kind: schema.KindBoolean, Bool: true}, Context{})
	assert.NoError(t, err)
	assert.Equal(t, true, v)

	str := &schema.StringExpr{Kind: schema.StringLiteral, Literal: "hi"}
	v, err = b.Build(schema.DataType{Kind: schema.KindString, Str: str}, Context{})
	assert.NoError(t, err)
	assert.Equal(t, "hi", v)
}

func TestBuildIsDeterministicForSameIDAndSeed(t *testing.T) {
	b := New(nil)
	dt := schema.DataType{Kind: schema.KindString, Str: &schema.StringExpr{Kind: schema.StringVariable, Variable: "FULL_NAME"}}
	ctx := Context{ID: strp("abc123"), Seed: 7, Size: 16}

	v1, err := b.Build(dt, ctx)
	assert.NoError(t, err)
	v2, err := b.Build(dt, ctx)
	assert.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestBuildNumberRangeIsWithinBounds(t *testing.T) {
	b := New(nil)
	dt := schema.DataType{Kind: schema.KindNumber, Num: &schema.NumberExpr{
		Kind:     schema.NumberRange,
		RangeMin: schema.IntegerPrim(10),
		RangeMax: schema.IntegerPrim(20),
	}}

	for seed := uint64(0); seed < 50; seed++ {
		v, err := b.Build(dt, Context{Seed: seed})
		assert.NoError(t, err)
		n, ok := v.(int64)
		assert.True(t, ok)
		assert.GreaterOrEqual(t, n, int64(10))
		assert.Less(t, n, int64(20))
	}
}

func TestBuildGeneratedArrayHonorsContextSize(t *testing.T) {
	b := New(nil)
	elem := schema.DataType{Kind: schema.KindNumber, Num: &schema.NumberExpr{Kind: schema.NumberVariable, Variable: "this.id"}}
	dt := schema.DataType{Kind: schema.KindArray, Arr: &schema.ArrayExpr{Kind: schema.ArrayGenerated, Element: &elem}}

	v, err := b.Build(dt, Context{Seed: 0, Size: 5})
	assert.NoError(t, err)

	arr, ok := v.([]interface{})
	assert.True(t, ok)
	assert.Len(t, arr, 5)
}

func TestBuildObjectFieldsPreservesOrderInJSON(t *testing.T) {
	b := New(nil)
	dt := schema.DataType{Kind: schema.KindObject, Obj: &schema.ObjectExpr{
		Kind: schema.ObjectFields,
		Fields: []schema.Field{
			{Name: "z", Type: schema.DataType{Kind: schema.KindBoolean, Bool: true}},
			{Name: "a", Type: schema.DataType{Kind: schema.KindBoolean, Bool: false}},
		},
	}}

	v, err := b.Build(dt, Context{})
	assert.NoError(t, err)

	out, err := json.Marshal(v)
	assert.NoError(t, err)
	assert.Equal(t, `{"z":true,"a":false}`, string(out))
}

func TestBuildResolvesSchemaReference(t *testing.T) {
	schemas := schema.Map{
		"User": &schema.Schema{Name: "User", Fields: []schema.Field{
			{Name: "id", Type: schema.DataType{Kind: schema.KindNumber, Num: &schema.NumberExpr{Kind: schema.NumberVariable, Variable: "this.id"}}},
		}},
	}
	b := New(schemas)

	dt := schema.DataType{Kind: schema.KindObject, Obj: &schema.ObjectExpr{Kind: schema.ObjectSchemaRef, SchemaName: "User"}}
	v, err := b.Build(dt, Context{ID: strp("x")})
	assert.NoError(t, err)

	obj, ok := v.(*Object)
	assert.True(t, ok)
	out, err := json.Marshal(obj)
	assert.NoError(t, err)
	assert.Contains(t, string(out), `"id":`)
}

func TestBuildUnknownSchemaReferenceErrors(t *testing.T) {
	b := New(schema.Map{})
	dt := schema.DataType{Kind: schema.KindObject, Obj: &schema.ObjectExpr{Kind: schema.ObjectSchemaRef, SchemaName: "Nope"}}
	_, err := b.Build(dt, Context{})
	assert.Error(t, err)
}

func TestBuildEnumPicksFromCandidates(t *testing.T) {
	b := New(nil)
	dt := schema.DataType{Kind: schema.KindEnum, Enum: []string{"red", "green", "blue"}}

	v, err := b.Build(dt, Context{Seed: 1})
	assert.NoError(t, err)
	assert.Contains(t, []string{"red", "green", "blue"}, v)
}

func TestBuildStopsAtMaxDepth(t *testing.T) {
	b := &Builder{Schemas: schema.Map{}, MaxDepth: 2}

	var dt schema.DataType
	dt = schema.DataType{Kind: schema.KindObject, Obj: &schema.ObjectExpr{Kind: schema.ObjectFields, Fields: []schema.Field{
		{Name: "self", Type: schema.DataType{Kind: schema.KindObject, Obj: &schema.ObjectExpr{Kind: schema.ObjectFields, Fields: []schema.Field{
			{Name: "self", Type: schema.DataType{Kind: schema.KindObject, Obj: &schema.ObjectExpr{Kind: schema.ObjectFields, Fields: []schema.Field{
				{Name: "self", Type: schema.DataType{Kind: schema.KindNull}},
			}}}},
		}}}},
	}}}

	_, err := b.Build(dt, Context{})
	assert.ErrorIs(t, err, ErrMaxDepthExceeded)
}

func TestRenderVariableThisIDFallsBackToEmptyWithoutID(t *testing.T) {
	b := New(nil)
	dt := schema.DataType{Kind: schema.KindString, Str: &schema.StringExpr{Kind: schema.StringVariable, Variable: "this.id"}}

	v, err := b.Build(dt, Context{})
	assert.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestRenderVariableThisIDReturnsPathParam(t *testing.T) {
	b := New(nil)
	dt := schema.DataType{Kind: schema.KindString, Str: &schema.StringExpr{Kind: schema.StringVariable, Variable: "this.id"}}

	v, err := b.Build(dt, Context{ID: strp("abc")})
	assert.NoError(t, err)
	assert.Equal(t, "abc", v)
}
