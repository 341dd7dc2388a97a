package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CodMac/dts-flow/core"
	"github.com/CodMac/dts-flow/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	p, err := parser.NewParser(core.LangTypeScript)
	require.NoError(t, err)
	defer p.Close()

	root, err := p.Parse([]byte(`declare module "m" { interface Foo { a: string } }`))
	require.NoError(t, err)
	assert.Equal(t, "program", root.Kind())
	assert.False(t, root.HasError())
}

func TestParser_ParseFile(t *testing.T) {
	p, err := parser.NewParser(core.LangTypeScript)
	require.NoError(t, err)
	defer p.Close()

	path := filepath.Join(t.TempDir(), "a.d.ts")
	require.NoError(t, os.WriteFile(path, []byte("declare function f(): void;\n"), 0644))

	root, src, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "declare function f(): void;\n", string(*src))
	assert.Equal(t, uint(1), root.NamedChildCount())

	_, _, err = p.ParseFile(filepath.Join(t.TempDir(), "missing.d.ts"))
	assert.Error(t, err)
}

func TestGetLanguage_Unsupported(t *testing.T) {
	_, err := parser.GetLanguage("cobol")
	assert.Error(t, err)

	_, err = parser.NewParser("cobol")
	assert.Error(t, err)
}
