package gdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_AppendRow(t *testing.T) {
	f := NewFrame("a", "b")
	require.NoError(t, f.AppendRow(int64(1), "x"))
	require.NoError(t, f.AppendRow(nil, "y"))

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []any{int64(1), nil}, f.Column("a"))
	assert.Equal(t, []string{"a", "b"}, f.Names())

	err := f.AppendRow(1)
	assert.Error(t, err)
}

func TestFrame_SetConst(t *testing.T) {
	f := NewFrame("a")
	require.NoError(t, f.AppendRow(1))
	require.NoError(t, f.AppendRow(2))

	f.SetConst("region", "NH")
	assert.Equal(t, []string{"a", "region"}, f.Names())
	assert.Equal(t, []any{"NH", "NH"}, f.Column("region"))
}

func TestFrame_SetLengthMismatch(t *testing.T) {
	f := NewFrame("a")
	require.NoError(t, f.AppendRow(1))

	err := f.Set("b", []any{1, 2})
	assert.Error(t, err)
	assert.False(t, f.Has("b"))
}

func TestFrame_Append(t *testing.T) {
	a := NewFrame("x", "y")
	require.NoError(t, a.AppendRow(1, "a"))
	b := NewFrame("y", "x")
	require.NoError(t, b.AppendRow("b", 2))

	require.NoError(t, a.Append(b))
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []any{1, 2}, a.Column("x"))
	assert.Equal(t, []any{"a", "b"}, a.Column("y"))
}

func TestFrame_AppendDivergentColumns(t *testing.T) {
	a := NewFrame("x", "y")
	b := NewFrame("x", "z")
	assert.Error(t, a.Append(b))

	c := NewFrame("x")
	assert.Error(t, a.Append(c))
}

func TestReadOptions_Wants(t *testing.T) {
	assert.True(t, ReadOptions{}.Wants("anything"))
	opts := ReadOptions{Columns: []string{"a"}}
	assert.True(t, opts.Wants("a"))
	assert.False(t, opts.Wants("b"))
}

func TestFieldKind_String(t *testing.T) {
	assert.Equal(t, "Integer", KindInteger.String())
	assert.Equal(t, "Real", KindReal.String())
	assert.Equal(t, "Other", FieldKind(99).String())
}
