package model_test

import (
	"testing"

	"github.com/CodMac/dts-flow/model"
	"github.com/stretchr/testify/assert"
)

func TestMember_Equal(t *testing.T) {
	a := model.Member{Kind: model.MethodMember, Name: "m", Shape: "m(x: number): void;"}
	b := model.Member{Kind: model.MethodMember, Name: "m", Shape: "m(x:  number):\n\tvoid"}

	assert.True(t, a.Equal(b), "independently parsed occurrences of one signature are equal")
	assert.False(t, a.Equal(model.Member{Kind: model.PropertyMember, Name: "m", Shape: a.Shape}))
	assert.False(t, a.Equal(model.Member{Kind: model.MethodMember, Name: "m", Shape: "m(x: string): void"}))
}

func TestDeclarationNode_MaybeAddMembers(t *testing.T) {
	x := model.Member{Kind: model.PropertyMember, Name: "x", Shape: "x: string"}
	y := model.Member{Kind: model.PropertyMember, Name: "y", Shape: "y: number"}

	d := model.NewDeclarationNode(nil, "Foo", []model.Member{x, x})
	assert.Equal(t, []model.Member{x}, d.Members())

	assert.Equal(t, 1, d.MaybeAddMembers(y, x))
	assert.Equal(t, 0, d.MaybeAddMembers())
	assert.Equal(t, []model.Member{x, y}, d.Members())
	assert.False(t, d.IsAnonymous())
	assert.Equal(t, model.Declaration, d.Kind())
}

func TestNode_AddChild(t *testing.T) {
	m := model.NewModuleNode("m")
	first := model.NewDeclarationNode(nil, "a", nil)
	replacement := model.NewDeclarationNode(nil, "a", nil)

	m.AddChild("a", first)
	m.AddChild("b", model.NewNamespaceNode("b"))
	m.AddChild("a", replacement)

	children := m.Children()
	assert.Len(t, children, 2)
	assert.Equal(t, "a", children[0].Key)
	assert.Same(t, replacement, children[0].Node)

	_, ok := m.Child("missing")
	assert.False(t, ok)
	assert.Nil(t, m.Location())
}
