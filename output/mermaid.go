package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/CodMac/dts-flow/core"
	"github.com/CodMac/dts-flow/model"
	"github.com/pkg/errors"
)

// ExportMermaidHTML 每个文件一个 subgraph，边为 CONTAIN 关系
func (p *Exporter) ExportMermaidHTML(gCtx *core.GlobalContext) (int, int, error) {
	f, err := os.Create(filepath.Join(p.outputDir, "visualization.html"))
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to create visualization.html")
	}
	defer f.Close()

	fmt.Fprintln(f, `<!DOCTYPE html><html><head><meta charset="UTF-8"><script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script></head>
<body><div class="mermaid">graph LR`)

	nodeCount, relCount := 0, 0
	for _, fCtx := range gCtx.Files() {
		records, rels := Flatten(gCtx.RunID, fCtx.FilePath, fCtx.Output)

		fmt.Fprintf(f, "  subgraph sg%s [📄 %s]\n", strings.TrimPrefix(safeID(fCtx.FilePath, ""), "n"), fCtx.FilePath)
		for _, rec := range records {
			fmt.Fprintf(f, "    %s%s\n", safeID(fCtx.FilePath, rec.Path), getNodeShape(rec.Kind, displayName(rec)))
			nodeCount++
		}
		fmt.Fprintln(f, "  end")

		for _, rel := range rels {
			fmt.Fprintf(f, "  %s -- %s --> %s\n", safeID(fCtx.FilePath, rel.Source.Path), rel.Key, safeID(fCtx.FilePath, rel.Target.Path))
			relCount++
		}
	}

	fmt.Fprintln(f, `</div><script>mermaid.initialize({startOnLoad:true, maxTextSize:1000000});</script></body></html>`)

	return nodeCount, relCount, nil
}

// 辅助函数

// safeID 字母数字原样保留，其余字符编码为 _<hex>_，保证不同 (file, path) 不会映射到同一个 id
func safeID(file, path string) string {
	if path == "" {
		return "n_" + encodeID(file)
	}
	return "n_" + encodeID(file+"\x00"+path)
}

func encodeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(&b, "_%x_", r)
	}
	return b.String()
}

func displayName(rec *NodeRecord) string {
	if rec.Name != "" {
		return rec.Name
	}
	if keys := SplitPath(rec.Path); len(keys) > 0 {
		return keys[len(keys)-1]
	}
	return rec.File
}

func getNodeShape(kind model.NodeKind, name string) string {
	name = strings.ReplaceAll(name, "\"", "#quot;")
	switch kind {
	case model.Module, model.Namespace:
		return fmt.Sprintf("([\"%s <small>(%s)</small>\"])", name, kind)
	case model.Declaration:
		return fmt.Sprintf("[\"%s <small>(%s)</small>\"]", name, kind)
	case model.Import, model.Export, model.ExportDeclaration:
		return fmt.Sprintf("[/\"%s <small>(%s)</small>\"/]", name, kind)
	default:
		return fmt.Sprintf("[\"%s <small>(%s)</small>\"]", name, kind)
	}
}
