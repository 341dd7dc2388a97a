package output_test

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodMac/dts-flow/core"
	"github.com/CodMac/dts-flow/model"
	"github.com/CodMac/dts-flow/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGlobalContext 构造一个不依赖语法树的输出树：
// a.d.ts -> module$m -> {foo1, foo2, Foo}
func buildGlobalContext(t *testing.T) *core.GlobalContext {
	t.Helper()
	f := core.NewFactory(nil, nil)
	fCtx := core.NewFileContext("a.d.ts", nil, nil, f)

	m := f.GetOrCreateModule("m")
	fCtx.Output.AddChild("module$m", m)
	f.RegisterFunctionDeclaration(nil, "foo", m)
	f.RegisterFunctionDeclaration(nil, "foo", m)
	foo := f.GetOrCreateDeclaration(nil, "Foo", core.ScopeOf(m, nil))
	foo.MaybeAddMembers(model.Member{Kind: model.PropertyMember, Name: "a", Shape: "a: string"})
	m.AddChild("Foo", foo)

	gc := core.NewGlobalContext("run-test")
	gc.RegisterFileContext(fCtx)
	return gc
}

func TestFlatten(t *testing.T) {
	gc := buildGlobalContext(t)
	fCtx := gc.Files()[0]

	records, rels := output.Flatten(gc.RunID, fCtx.FilePath, fCtx.Output)
	require.Len(t, records, 5)
	require.Len(t, rels, 4)

	var paths []string
	for _, r := range records {
		paths = append(paths, r.Path)
		assert.Equal(t, "run-test", r.RunID)
	}
	assert.Equal(t, []string{"", "module$m", "module$m/foo1", "module$m/foo2", "module$m/Foo"}, paths)
	assert.Equal(t, model.File, records[0].Kind)
	assert.Len(t, records[4].Members, 1)

	assert.Equal(t, model.Contain, rels[0].Type)
	assert.Equal(t, "module$m", rels[0].Key)
	assert.Equal(t, "module$m/Foo", rels[3].Target.Path)
}

func TestFlatten_Cycle(t *testing.T) {
	m := model.NewModuleNode("m")
	ns := model.NewNamespaceNode("N")
	m.AddChild("namespace$N", ns)
	ns.AddChild("module$m", m)
	root := model.NewFileNode("a.d.ts", nil)
	root.AddChild("module$m", m)

	records, rels := output.Flatten("run", "a.d.ts", root)
	require.Len(t, records, 3)
	assert.Len(t, rels, 2)
	assert.Equal(t, "module$m/namespace$N", records[2].Path)
}

func TestFlatten_KeysWithSlash(t *testing.T) {
	f := core.NewFactory(nil, nil)
	root := model.NewFileNode("a.d.ts", nil)
	fp := f.GetOrCreateModule("lodash/fp")
	root.AddChild("module$lodash/fp", fp)
	fp.AddChild("Foo", f.GetOrCreateDeclaration(nil, "Foo", core.ScopeOf(fp, nil)))
	root.AddChild("module$50%", f.GetOrCreateModule("50%"))

	records, _ := output.Flatten("run", "a.d.ts", root)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"module$lodash/fp", "Foo"}, output.SplitPath(records[2].Path))
	assert.Equal(t, []string{"module$50%"}, output.SplitPath(records[3].Path))
	assert.Nil(t, output.SplitPath(records[0].Path))
}

func TestExporter_JsonL(t *testing.T) {
	gc := buildGlobalContext(t)
	dir := t.TempDir()

	nc, rc, err := output.NewExporter(dir, output.JsonL).Export(context.Background(), gc)
	require.NoError(t, err)
	assert.Equal(t, 5, nc)
	assert.Equal(t, 4, rc)

	f, err := os.Open(filepath.Join(dir, "node.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lines int
	for scanner.Scan() {
		var rec output.NodeRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		assert.Equal(t, "a.d.ts", rec.File)
		lines++
	}
	assert.Equal(t, 5, lines)
}

func TestExporter_Mermaid(t *testing.T) {
	gc := buildGlobalContext(t)
	dir := t.TempDir()

	assert.Equal(t, output.Mermaid, output.EffectiveType(output.Mermaid, gc))
	nc, rc, err := output.NewExporter(dir, output.Mermaid).Export(context.Background(), gc)
	require.NoError(t, err)
	assert.Equal(t, 5, nc)
	assert.Equal(t, 4, rc)

	html, err := os.ReadFile(filepath.Join(dir, "visualization.html"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(html), "-- foo1 -->"))
}

func TestExporter_SQLite(t *testing.T) {
	gc := buildGlobalContext(t)
	dir := t.TempDir()

	declCount, nodeCount, err := output.NewExporter(dir, output.SQLite).Export(context.Background(), gc)
	require.NoError(t, err)
	assert.Equal(t, 1, declCount)
	assert.Equal(t, 5, nodeCount)

	db, err := sql.Open("sqlite", filepath.Join(dir, "index.db"))
	require.NoError(t, err)
	defer db.Close()

	var qn string
	var members int
	require.NoError(t, db.QueryRow(`SELECT qualified_name, member_count FROM declarations WHERE run_id = ?`, "run-test").Scan(&qn, &members))
	assert.Equal(t, "m$Foo", qn)
	assert.Equal(t, 1, members)
}

func TestExporter_UnsupportedType(t *testing.T) {
	_, _, err := output.NewExporter(t.TempDir(), "xml").Export(context.Background(), buildGlobalContext(t))
	assert.Error(t, err)
}
