package typescript_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CodMac/dts-flow/core"
	"github.com/CodMac/dts-flow/model"
	"github.com/CodMac/dts-flow/parser"
	"github.com/CodMac/dts-flow/x/typescript"
	"github.com/stretchr/testify/require"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

func getTestFilePath(name string) string {
	currentDir, _ := filepath.Abs(filepath.Dir("."))
	return filepath.Join(currentDir, "testdata", name)
}

func parseSource(t *testing.T, source string) (*sitter.Node, *[]byte) {
	t.Helper()
	p, err := parser.NewParser(core.LangTypeScript)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	src := []byte(source)
	root, err := p.Parse(src)
	require.NoError(t, err)
	return root, &src
}

func parseTestFile(t *testing.T, name string) (*sitter.Node, *[]byte) {
	t.Helper()
	data, err := os.ReadFile(getTestFilePath(name))
	require.NoError(t, err)
	return parseSource(t, string(data))
}

// translate 以给定的会话开关运行一次完整遍历
func translate(t *testing.T, name, source string, withSession bool) *core.FileContext {
	t.Helper()
	root, src := parseSource(t, source)

	var session core.SymbolSession
	if withSession {
		checker, err := typescript.NewChecker(root, src)
		require.NoError(t, err)
		session = checker
	}

	fCtx := core.NewFileContext(name, root, src, core.NewFactory(typescript.NewMemberExtractor(src), session))
	require.NoError(t, typescript.NewTypeScriptWalker(nil).Walk(fCtx))
	return fCtx
}

func childOf(t *testing.T, n model.Node, keys ...string) model.Node {
	t.Helper()
	current := n
	for _, k := range keys {
		next, ok := current.Child(k)
		require.Truef(t, ok, "missing child %q, have %v", k, childKeys(current))
		current = next
	}
	return current
}

func childKeys(n model.Node) []string {
	var keys []string
	for _, c := range n.Children() {
		keys = append(keys, c.Key)
	}
	return keys
}

func translateWalker() core.Walker {
	return typescript.NewTypeScriptWalker(nil)
}
