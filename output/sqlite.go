package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"

	"github.com/CodMac/dts-flow/core"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS declarations (
	run_id         TEXT NOT NULL,
	file           TEXT NOT NULL,
	qualified_name TEXT NOT NULL,
	name           TEXT NOT NULL,
	member_count   INTEGER NOT NULL,
	start_line     INTEGER,
	PRIMARY KEY (run_id, file, qualified_name)
);
CREATE TABLE IF NOT EXISTS members (
	run_id         TEXT NOT NULL,
	file           TEXT NOT NULL,
	qualified_name TEXT NOT NULL,
	ordinal        INTEGER NOT NULL,
	kind           TEXT NOT NULL,
	name           TEXT,
	shape          TEXT NOT NULL,
	PRIMARY KEY (run_id, file, qualified_name, ordinal)
);
CREATE TABLE IF NOT EXISTS nodes (
	run_id TEXT NOT NULL,
	file   TEXT NOT NULL,
	path   TEXT NOT NULL,
	kind   TEXT NOT NULL,
	name   TEXT,
	record TEXT NOT NULL
);
`

// ExportSQLite 把每个文件的声明注册表（按限定名）与输出树写入 index.db
func (p *Exporter) ExportSQLite(ctx context.Context, gCtx *core.GlobalContext) (int, int, error) {
	db, err := sql.Open("sqlite", filepath.Join(p.outputDir, "index.db"))
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to open index.db")
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return 0, 0, errors.Wrap(err, "failed to create schema")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	declCount, nodeCount := 0, 0
	for _, fCtx := range gCtx.Files() {
		for _, qd := range fCtx.Factory.Declarations() {
			startLine := 0
			if loc := qd.Node.Location(); loc != nil {
				startLine = loc.StartLine
			}
			members := qd.Node.Members()
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO declarations (run_id, file, qualified_name, name, member_count, start_line) VALUES (?, ?, ?, ?, ?, ?)`,
				gCtx.RunID, fCtx.FilePath, qd.QualifiedName, qd.Node.Name(), len(members), startLine); err != nil {
				return declCount, nodeCount, errors.Wrapf(err, "failed to insert declaration: %v", qd.QualifiedName)
			}
			for i, m := range members {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO members (run_id, file, qualified_name, ordinal, kind, name, shape) VALUES (?, ?, ?, ?, ?, ?, ?)`,
					gCtx.RunID, fCtx.FilePath, qd.QualifiedName, i, string(m.Kind), m.Name, m.Shape); err != nil {
					return declCount, nodeCount, errors.Wrapf(err, "failed to insert member of: %v", qd.QualifiedName)
				}
			}
			declCount++
		}

		records, _ := Flatten(gCtx.RunID, fCtx.FilePath, fCtx.Output)
		for _, rec := range records {
			data, err := json.Marshal(rec)
			if err != nil {
				return declCount, nodeCount, err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO nodes (run_id, file, path, kind, name, record) VALUES (?, ?, ?, ?, ?, ?)`,
				gCtx.RunID, fCtx.FilePath, rec.Path, string(rec.Kind), rec.Name, string(data)); err != nil {
				return declCount, nodeCount, errors.Wrapf(err, "failed to insert node: %v", rec.Path)
			}
			nodeCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return declCount, nodeCount, errors.Wrap(err, "failed to commit")
	}
	return declCount, nodeCount, nil
}
