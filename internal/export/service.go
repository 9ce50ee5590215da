package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/os-report/constants"
	"github.com/joseph-ayodele/os-report/internal/common"
	"github.com/joseph-ayodele/os-report/internal/entity"
)

// SheetName is the single worksheet of the report workbook.
const SheetName = "Relatório"

// Service produces the batch report in its output formats.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildXLSX returns an XLSX workbook (as bytes) with one row per record, in order.
func (s *Service) BuildXLSX(records []entity.ReportRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Reuse the default sheet so the workbook has no empty first tab.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range constants.ReportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	for r, rec := range records {
		for c, v := range rec.Values() {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("row %d: %w", r+1, err)
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 40) // file name
	_ = f.SetColWidth(SheetName, "B", "B", 12) // identifier
	_ = f.SetColWidth(SheetName, "C", "C", 36) // name
	_ = f.SetColWidth(SheetName, "D", "D", 16)
	_ = f.SetColWidth(SheetName, "E", "E", 30) // read status
	_ = f.SetColWidth(SheetName, "F", "F", 20)
	_ = f.SetColWidth(SheetName, "G", "G", 30) // role
	_ = f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX builds the workbook and writes it to path. Every failure is a
// report-write error; the caller decides whether the run goes on.
func (s *Service) WriteXLSX(ctx context.Context, path string, records []entity.ReportRecord) error {
	start := time.Now()
	log := common.LoggerWithRun(ctx, s.logger)

	data, err := s.BuildXLSX(records)
	if err != nil {
		log.Error("export.xlsx.build_failed", "path", path, "err", err)
		return common.ReportWriteError(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error("export.xlsx.write_failed", "path", path, "err", err)
		return common.ReportWriteError(path, err)
	}

	log.Info("export.xlsx.ok",
		"path", path,
		"rows", len(records),
		"bytes", len(data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
