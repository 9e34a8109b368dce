package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenPadsPaths(t *testing.T) {
	o := mustParse(t, regionGrid())
	require.Equal(t, 3, o.LevelCount())

	leaves, err := Flatten(o, o.LevelCount())
	require.NoError(t, err)
	require.Len(t, leaves, 2)

	assert.Equal(t, 3, leaves[0].Row)
	assert.Equal(t, []string{"North", "Bus", ""}, leaves[0].Path)
	assert.Equal(t, []any{"b1"}, leaves[0].Fields)
	assert.Equal(t, []string{"South", "Bus", ""}, leaves[1].Path)

	for _, leaf := range leaves {
		assert.Len(t, leaf.Path, o.LevelCount())
	}
}

func TestFlattenWiderLevelCount(t *testing.T) {
	o := mustParse(t, regionGrid())

	leaves, err := Flatten(o, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "Bus", "", "", ""}, leaves[0].Path)
}

func TestFlattenSkipsRowsWithoutValue(t *testing.T) {
	full := mustParse(t, gridOf("Fleet", "Fleet|a", "Fleet|b", "Fleet|c"))
	blank := mustParse(t, gridOf("Fleet", "Fleet|a", "Fleet", "Fleet|c"))

	all, err := Flatten(full, 1)
	require.NoError(t, err)
	some, err := Flatten(blank, 1)
	require.NoError(t, err)

	assert.Len(t, all, 3)
	assert.Len(t, some, 2)
	assert.Equal(t, 1, some[0].Row)
	assert.Equal(t, 3, some[1].Row)
	assert.Equal(t, []string{"Fleet"}, some[1].Path)
}

func TestFlattenSkipsMarkerRows(t *testing.T) {
	o := mustParse(t, gridOf("Fleet", "Bus", "Bus|x", "Итого: Bus|99"))

	leaves, err := Flatten(o, o.LevelCount())
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, 2, leaves[0].Row)
}

func TestFlattenAncestorOverflow(t *testing.T) {
	o := mustParse(t, regionGrid())

	_, err := Flatten(o, 1)
	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, InvariantAncestorOverflow, se.Invariant)
	assert.Equal(t, 3, se.Row)
}

func TestFlattenLeafWithoutAncestors(t *testing.T) {
	o := mustParse(t, gridOf("Fleet|x"))

	_, err := Flatten(o, 1)
	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, InvariantNoAncestors, se.Invariant)
	assert.Equal(t, 0, se.Row)
}

func TestFlattenConvertsFields(t *testing.T) {
	g := NewGrid([][]string{
		{"Fleet", "", "", ""},
		{"Fleet", "Bus", "1 234", "3,5"},
		{"Fleet", "Car", "7.0", ""},
	}, 0)
	layout := testLayout()
	layout.Fields = []Field{
		{Column: 1, Kind: FieldText, Name: "Item"},
		{Column: 2, Kind: FieldInt, Name: "Count"},
		{Column: 3, Kind: FieldFloat, Name: "Amount"},
	}
	o, err := Parse(g, layout)
	require.NoError(t, err)

	leaves, err := Flatten(o, 1)
	require.NoError(t, err)
	require.Len(t, leaves, 2)
	assert.Equal(t, []any{"Bus", int64(1234), 3.5}, leaves[0].Fields)
	assert.Equal(t, []any{"Car", int64(7), nil}, leaves[1].Fields)
}

func TestFlattenInvalidField(t *testing.T) {
	g := NewGrid([][]string{
		{"Fleet", ""},
		{"Fleet", "many"},
	}, 0)
	layout := testLayout()
	layout.Fields = []Field{{Column: 1, Kind: FieldInt}}
	o, err := Parse(g, layout)
	require.NoError(t, err)

	_, err = Flatten(o, 1)
	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, InvariantInvalidField, se.Invariant)
	assert.Equal(t, 1, se.Row)
}

func TestConvertField(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    FieldKind
		want    any
		wantErr bool
	}{
		{"text kept verbatim", " Bus ", FieldText, " Bus ", false},
		{"empty kind is text", "12", "", "12", false},
		{"int", "42", FieldInt, int64(42), false},
		{"int with nbsp groups", "1\u00a0000", FieldInt, int64(1000), false},
		{"int from whole float", "3.0", FieldInt, int64(3), false},
		{"int rejects fraction", "3.5", FieldInt, nil, true},
		{"blank int", "  ", FieldInt, nil, false},
		{"float decimal comma", "12,25", FieldFloat, 12.25, false},
		{"float negative", "-0.5", FieldFloat, -0.5, false},
		{"float rejects text", "n/a", FieldFloat, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertField(tt.input, tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAncestorColumns(t *testing.T) {
	assert.Equal(t, []string{"Category", "Subdivision-1", "Subdivision-2"}, AncestorColumns(3))
	assert.Empty(t, AncestorColumns(0))
}

func TestFieldNames(t *testing.T) {
	g := NewGrid([][]string{
		{"Name", "Item", ""},
		{"Fleet", "", ""},
	}, 0)
	layout := testLayout()
	layout.FirstDataRow = 1
	layout.HeaderRow = 0
	layout.Fields = []Field{{Column: 1}, {Column: 2}, {Column: 1, Name: "Override"}}

	o, err := Parse(g, layout)
	require.NoError(t, err)
	assert.Equal(t, []string{"Item", "Column 3", "Override"}, FieldNames(o))
}
