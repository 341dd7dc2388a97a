package output

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/CodMac/dts-flow/core"
	"github.com/pkg/errors"
)

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{encoder: json.NewEncoder(w)}
}

func (w *JSONLWriter) Write(v interface{}) error { return w.encoder.Encode(v) }

// ExportJsonL 写出 node.jsonl 与 relation.jsonl
func (p *Exporter) ExportJsonL(gCtx *core.GlobalContext) (int, int, error) {
	nodeFile, err := os.Create(filepath.Join(p.outputDir, "node.jsonl"))
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to create node.jsonl")
	}
	defer nodeFile.Close()

	relFile, err := os.Create(filepath.Join(p.outputDir, "relation.jsonl"))
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to create relation.jsonl")
	}
	defer relFile.Close()

	nodeWriter, relWriter := NewJSONLWriter(nodeFile), NewJSONLWriter(relFile)
	nodeCount, relCount := 0, 0
	for _, fCtx := range gCtx.Files() {
		records, rels := Flatten(gCtx.RunID, fCtx.FilePath, fCtx.Output)
		for _, rec := range records {
			if err := nodeWriter.Write(rec); err != nil {
				return nodeCount, relCount, errors.Wrap(err, "failed to write node")
			}
			nodeCount++
		}
		for _, rel := range rels {
			if err := relWriter.Write(rel); err != nil {
				return nodeCount, relCount, errors.Wrap(err, "failed to write relation")
			}
			relCount++
		}
	}
	return nodeCount, relCount, nil
}
