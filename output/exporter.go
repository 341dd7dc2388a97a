package output

import (
	"context"
	"fmt"
	"os"

	"github.com/CodMac/dts-flow/core"
	"github.com/pkg/errors"
)

type OutType string

const (
	JsonL   OutType = "jsonl"
	Mermaid OutType = "mermaid"
	SQLite  OutType = "sqlite"
)

const MaxMermaidNodes = 200

type Exporter struct {
	outputDir  string
	outputType OutType
}

func NewExporter(outputDir string, outputType OutType) *Exporter {
	return &Exporter{outputDir: outputDir, outputType: outputType}
}

// Export 按输出类型导出，返回 (节点数/声明数, 关系数/节点数)
func (p *Exporter) Export(ctx context.Context, gCtx *core.GlobalContext) (int, int, error) {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return 0, 0, errors.Wrapf(err, "failed to create output dir: %v", p.outputDir)
	}

	switch p.outputType {
	case JsonL:
		return p.ExportJsonL(gCtx)
	case Mermaid:
		return p.ExportMermaidHTML(gCtx)
	case SQLite:
		return p.ExportSQLite(ctx, gCtx)
	}
	return 0, 0, fmt.Errorf("unsupported output type: %s", p.outputType)
}

// EffectiveType 规模过大时 Mermaid 渲染可能失败，自动降级为 jsonl
func EffectiveType(requested OutType, gCtx *core.GlobalContext) OutType {
	if requested != Mermaid {
		return requested
	}
	total := 0
	for _, fCtx := range gCtx.Files() {
		records, _ := Flatten(gCtx.RunID, fCtx.FilePath, fCtx.Output)
		total += len(records)
	}
	if total > MaxMermaidNodes {
		return JsonL
	}
	return Mermaid
}
