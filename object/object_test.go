package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictStrictTypeKeyEquality(t *testing.T) {
	d := NewDict()
	d.Set(&Number{Value: 1}, &String{Value: "number one"})
	d.Set(&String{Value: "1"}, &String{Value: "string one"})

	v, ok := d.Get(&Number{Value: 1})
	assert.True(t, ok)
	assert.Equal(t, "number one", v.(*String).Value)

	v, ok = d.Get(&String{Value: "1"})
	assert.True(t, ok)
	assert.Equal(t, "string one", v.(*String).Value)

	assert.Equal(t, 2, d.Len())
}

func TestDictSetOverwritesInPlace(t *testing.T) {
	d := NewDict()
	d.Set(&String{Value: "k"}, &Number{Value: 1})
	d.Set(&String{Value: "k"}, &Number{Value: 2})
	assert.Equal(t, 1, d.Len())
	v, _ := d.Get(&String{Value: "k"})
	assert.Equal(t, float64(2), v.(*Number).Value)
}

func TestListIsReferenceShared(t *testing.T) {
	l := NewList([]Value{&Number{Value: 1}})
	alias := l
	alias.Items = append(alias.Items, &Number{Value: 2})
	assert.Len(t, l.Items, 2)
}

func TestBooleanSingletonsAreDistinctIdentities(t *testing.T) {
	assert.True(t, IsBoolean(True))
	assert.True(t, IsBoolean(False))
	assert.NotSame(t, True, False)
	assert.False(t, IsBoolean(&Number{Value: 1}))
}

func TestUnitIsDistinctFromEmptyList(t *testing.T) {
	unit := TheUnit
	list := NewList(nil)
	assert.NotEqual(t, unit.Type(), list.Type())
	assert.Equal(t, "()", unit.String())
	assert.Equal(t, "[]", list.String())
}
