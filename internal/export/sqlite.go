package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/os-report/internal/common"
	"github.com/joseph-ayodele/os-report/internal/entity"
)

const reportSchema = `
CREATE TABLE IF NOT EXISTS os_report (
	run_id         TEXT    NOT NULL,
	row_index      INTEGER NOT NULL,
	file_name      TEXT    NOT NULL,
	matricula      TEXT    NOT NULL,
	nome           TEXT    NOT NULL,
	tem_assinatura TEXT    NOT NULL,
	status_leitura TEXT    NOT NULL,
	descricao      TEXT    NOT NULL,
	funcao         TEXT    NOT NULL,
	PRIMARY KEY (run_id, row_index)
)`

const insertRow = `
INSERT INTO os_report (run_id, row_index, file_name, matricula, nome, tem_assinatura, status_leitura, descricao, funcao)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// WriteSQLite appends the records of runID to the os_report table of the
// database at path, all in one transaction. Earlier runs are left untouched.
func (s *Service) WriteSQLite(ctx context.Context, path string, runID uuid.UUID, records []entity.ReportRecord) error {
	start := time.Now()
	log := common.LoggerWithRun(ctx, s.logger)

	if err := writeSQLite(ctx, path, runID, records); err != nil {
		log.Error("export.sqlite.failed", "path", path, "err", err)
		return common.ReportWriteError(path, err)
	}
	log.Info("export.sqlite.ok",
		"path", path,
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func writeSQLite(ctx context.Context, path string, runID uuid.UUID, records []entity.ReportRecord) error {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return common.WrapError(err, "open db")
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, reportSchema); err != nil {
		return common.WrapError(err, "exec schema")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertRow)
	if err != nil {
		return common.WrapError(err, "prepare insert")
	}
	defer stmt.Close()

	id := runID.String()
	for i, rec := range records {
		v := rec.Values()
		if _, err := stmt.ExecContext(ctx, id, i, v[0], v[1], v[2], v[3], v[4], v[5], v[6]); err != nil {
			return common.WrapError(err, fmt.Sprintf("insert row %d", i))
		}
	}
	if err := tx.Commit(); err != nil {
		return common.WrapError(err, "commit")
	}
	return nil
}
