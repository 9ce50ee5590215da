package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joseph-ayodele/os-report/constants"
	"github.com/joseph-ayodele/os-report/internal/common"
	"github.com/joseph-ayodele/os-report/internal/entity"
	"github.com/joseph-ayodele/os-report/internal/extract"
	"github.com/joseph-ayodele/os-report/internal/ingest"
	"github.com/joseph-ayodele/os-report/internal/signature"
)

// Options are the per-run switches of the processor.
type Options struct {
	// ForceSignatureOK reports every signature as present.
	ForceSignatureOK bool
	// ForceDescriptionOK reports every description as present.
	ForceDescriptionOK bool
}

// BatchStats summarizes one ProcessBatch call.
type BatchStats struct {
	Total        int
	ReadFailures int
	Signed       int
	Identified   int
}

// Processor coordinates the read stage (text + signature) then the fields
// stage, and turns the outcome into a report row.
type Processor struct {
	Logger *slog.Logger
	Read   *ReadStage
	Fields *FieldsStage
	Opts   Options
}

func NewProcessor(logger *slog.Logger, read *ReadStage, fields *FieldsStage, opts Options) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Read: read, Fields: fields, Opts: opts}
}

// ProcessFile builds the report row for one file. It never fails: a read
// error is recorded in the row's read status.
func (p *Processor) ProcessFile(ctx context.Context, file ingest.FileEntry) entity.ReportRecord {
	log := common.LoggerWithRun(ctx, p.Logger)

	res := extract.EmptyResult()
	signed := false
	status := constants.StatusOK

	out, err := p.Read.Run(ctx, file.Path)
	if err != nil {
		status = constants.ReadErrorPrefix + err.Error()
		readErr := common.NewAppError(common.CodeDocumentRead, file.Name, errors.Join(common.ErrDocumentRead, err))
		log.Error("processor.read.failed", "file", file.Name, "err", readErr)
	} else {
		signed = out.Evidence != signature.EvidenceNone
		res = p.Fields.Run(out)
		log.Info("processor.read.ok",
			"file", file.Name,
			"pages", out.Pages,
			"evidence", out.Evidence.String(),
			"warnings", len(out.Warnings),
			"elapsed_ms", out.Duration.Milliseconds(),
		)
		if missing := res.Missing(); len(missing) > 0 {
			log.Debug("processor.fields.missing", "file", file.Name, "fields", missing)
		}
	}

	rec := entity.ReportRecord{
		FileName:    file.Name,
		Identifier:  res.Identifier,
		Name:        res.Name,
		Role:        res.Role,
		ReadStatus:  status,
		Signature:   constants.StatusAbsent,
		Description: res.Description.String(),
	}
	if signed || p.Opts.ForceSignatureOK {
		rec.Signature = constants.StatusOK
	}
	if p.Opts.ForceDescriptionOK {
		rec.Description = constants.StatusOK
	}
	return rec
}

// ProcessBatch processes files one by one in input order. On cancellation it
// returns the rows built so far together with the context error.
func (p *Processor) ProcessBatch(ctx context.Context, files []ingest.FileEntry) ([]entity.ReportRecord, BatchStats, error) {
	log := common.LoggerWithRun(ctx, p.Logger)
	records := make([]entity.ReportRecord, 0, len(files))
	var stats BatchStats

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			log.Warn("processor.batch.cancelled", "processed", i, "total", len(files))
			return records, stats, err
		}
		rec := p.ProcessFile(ctx, f)
		records = append(records, rec)

		stats.Total++
		if !rec.ReadOK() {
			stats.ReadFailures++
		}
		if rec.Signature == constants.StatusOK {
			stats.Signed++
		}
		if rec.HasIdentifier() {
			stats.Identified++
		}
	}

	log.Info("processor.batch.done",
		"total", stats.Total,
		"read_failures", stats.ReadFailures,
		"signed", stats.Signed,
		"identified", stats.Identified,
	)
	return records, stats, nil
}
