package typescript_test

import (
	"testing"

	"github.com/CodMac/dts-flow/core"
	"github.com/CodMac/dts-flow/x/typescript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// findNamed 深度优先查找第一个指定类型且 name 字段文本匹配的节点
func findNamed(n *sitter.Node, src []byte, kind, name string) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Kind() == kind {
		if nameNode := n.ChildByFieldName("name"); nameNode != nil && nameNode.Utf8Text(src) == name {
			return n
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if found := findNamed(n.NamedChild(uint(i)), src, kind, name); found != nil {
			return found
		}
	}
	return nil
}

func TestChecker_QualifiedPaths(t *testing.T) {
	const source = `
declare module "m" {
  namespace N {
    interface I { a: string }
  }
  interface Top { b: string }
}
declare namespace A.B {
  function f(): void;
}
`
	root, src := parseSource(t, source)
	checker, err := typescript.NewChecker(root, src)
	require.NoError(t, err)

	tests := []struct {
		kind, name, want string
	}{
		{"interface_declaration", "I", `"m".N.I`},
		{"interface_declaration", "Top", `"m".Top`},
		{"function_signature", "f", "A.B.f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := findNamed(root, *src, tt.kind, tt.name)
			require.NotNil(t, decl)
			sym := checker.SymbolAtLocation(decl.ChildByFieldName("name"))
			require.NotNil(t, sym)
			assert.Equal(t, tt.want, checker.FormatQualifiedPath(sym, tt.name, false))
		})
	}
}

func TestChecker_MergedDeclarationsShareSymbol(t *testing.T) {
	const source = `
declare namespace A { interface X { a: string } }
declare namespace A { interface X { b: string } }
declare namespace B { interface X { c: string } }
`
	root, src := parseSource(t, source)
	checker, err := typescript.NewChecker(root, src)
	require.NoError(t, err)

	var syms []*core.Symbol
	var collect func(n *sitter.Node)
	collect = func(n *sitter.Node) {
		if n.Kind() == "interface_declaration" {
			syms = append(syms, checker.SymbolAtLocation(n.ChildByFieldName("name")))
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			collect(n.NamedChild(uint(i)))
		}
	}
	collect(root)

	require.Len(t, syms, 3)
	assert.Same(t, syms[0], syms[1])
	assert.NotSame(t, syms[0], syms[2])
	assert.Equal(t, "B.X", checker.FormatQualifiedPath(syms[2], "X", false))
}

func TestChecker_DefaultExport(t *testing.T) {
	root, src := parseSource(t, "export default interface Config { name: string }")
	checker, err := typescript.NewChecker(root, src)
	require.NoError(t, err)

	decl := findNamed(root, *src, "interface_declaration", "Config")
	require.NotNil(t, decl)
	sym := checker.SymbolAtLocation(decl.ChildByFieldName("name"))
	require.NotNil(t, sym)
	assert.True(t, sym.IsDefault)
	assert.Equal(t, "Config", checker.FormatQualifiedPath(sym, "Config", false))
	assert.Equal(t, "default", checker.FormatQualifiedPath(sym, "Config", true))
}

func TestChecker_UnknownLocation(t *testing.T) {
	root, src := parseSource(t, "interface A {}")
	checker, err := typescript.NewChecker(root, src)
	require.NoError(t, err)

	assert.Nil(t, checker.SymbolAtLocation(nil))
	assert.Nil(t, checker.SymbolAtLocation(root))
	assert.Equal(t, "A", checker.FormatQualifiedPath(nil, "A", false))
}
