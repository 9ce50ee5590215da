package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/os-report/internal/common"
	"github.com/joseph-ayodele/os-report/internal/document"
	"github.com/joseph-ayodele/os-report/internal/export"
	"github.com/joseph-ayodele/os-report/internal/extract"
	"github.com/joseph-ayodele/os-report/internal/ingest"
	"github.com/joseph-ayodele/os-report/internal/pipeline"
	"github.com/joseph-ayodele/os-report/internal/rename"
	"github.com/joseph-ayodele/os-report/internal/rules"
	"github.com/joseph-ayodele/os-report/internal/signature"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// .env, then environment; flags that were set explicitly win.
	if err := common.LoadDotEnv(".env"); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	cfg := common.LoadConfig()

	var (
		dir        = flag.String("dir", cfg.Batch.Dir, "directory with the work-order PDFs (env OS_DIR)")
		out        = flag.String("out", cfg.Report.XLSXPath, "output XLSX report path (env OS_REPORT_FILE)")
		sqlitePath = flag.String("sqlite", cfg.Report.SQLitePath, "also export the report to this SQLite database (env OS_SQLITE_PATH)")
		rulesFile  = flag.String("rules", cfg.Rules.File, "JSON or YAML rules file overriding the built-in extraction rules (env OS_RULES_FILE)")
		ignoreSig  = flag.Bool("ignore-signature", cfg.Batch.IgnoreSignature, "report every signature as OK (env OS_IGNORE_SIGNATURE)")
		ignoreDesc = flag.Bool("ignore-description", cfg.Batch.IgnoreDescription, "report every description as OK (env OS_IGNORE_DESCRIPTION)")
		maxPages   = flag.Int("max-pages", cfg.Batch.MaxTextPages, "pages of text fed to field extraction (env OS_MAX_TEXT_PAGES)")
		noRename   = flag.Bool("no-rename", false, "skip the rename stage")
		assumeYes  = flag.Bool("yes", false, "rename without asking")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	cfg.Batch.Dir = *dir
	cfg.Batch.MaxTextPages = *maxPages
	cfg.Batch.IgnoreSignature = *ignoreSig
	cfg.Batch.IgnoreDescription = *ignoreDesc
	cfg.Report.XLSXPath = *out
	cfg.Report.SQLitePath = *sqlitePath
	cfg.Rules.File = *rulesFile

	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		printError("Error: invalid --log-level %q\n", *logLevel)
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ruleSet, err := rules.Load(cfg.Rules.File)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.New()
	ctx = common.WithRunID(ctx, runID)
	log := common.LoggerWithRun(ctx, logger)

	absDir, _ := filepath.Abs(cfg.Batch.Dir)
	fmt.Printf("--- Iniciando Análise em: %s ---\n", absDir)

	// List input
	var lister ingest.Lister = ingest.NewDirLister(true, logger)
	files, stats, err := lister.ListDirectory(ctx, cfg.Batch.Dir)
	if err != nil {
		log.Error("failed to list directory", "dir", cfg.Batch.Dir, "error", err)
		os.Exit(1)
	}
	log.Info("listing complete", "scanned", stats.Scanned, "matched", stats.Matched, "skipped", stats.Skipped)
	if len(files) == 0 {
		fmt.Println("Nenhum arquivo PDF encontrado.")
		return
	}

	// Wire extraction
	extractor, err := extract.NewExtractor(ruleSet.Extraction, logger)
	if err != nil {
		log.Error("invalid extraction rules", "error", err)
		os.Exit(1)
	}
	classifier := signature.NewClassifier(ruleSet.Signature, logger)
	reader := document.NewPDFReader(cfg.Batch.MaxTextPages, logger)

	processor := pipeline.NewProcessor(
		logger,
		pipeline.NewReadStage(reader, classifier, cfg.Batch.MaxTextPages, logger),
		pipeline.NewFieldsStage(extractor),
		pipeline.Options{
			ForceSignatureOK:   cfg.Batch.IgnoreSignature,
			ForceDescriptionOK: cfg.Batch.IgnoreDescription,
		},
	)

	records, batch, err := processor.ProcessBatch(ctx, files)
	interrupted := err != nil
	if interrupted {
		log.Warn("batch interrupted; writing partial report", "processed", len(records), "error", err)
	}

	// Export; an interrupt must not cancel the partial report
	exportCtx := context.WithoutCancel(ctx)
	exporter := export.NewService(logger)
	if err := exporter.WriteXLSX(exportCtx, cfg.Report.XLSXPath, records); err != nil {
		printError("ERRO: Não foi possível salvar o Excel. Verifique se '%s' está aberto.\n", cfg.Report.XLSXPath)
	} else {
		fmt.Printf("Relatório gerado: %s\n", cfg.Report.XLSXPath)
	}
	if cfg.Report.SQLitePath != "" {
		if err := exporter.WriteSQLite(exportCtx, cfg.Report.SQLitePath, runID, records); err != nil {
			printError("ERRO: Não foi possível gravar o banco SQLite '%s': %v\n", cfg.Report.SQLitePath, err)
		}
	}

	fmt.Printf("- Arquivos processados: %d\n", batch.Total)
	fmt.Printf("- Falhas de leitura: %d\n", batch.ReadFailures)
	fmt.Printf("- Com assinatura: %d\n", batch.Signed)
	fmt.Printf("- Com matrícula: %d\n", batch.Identified)

	if interrupted || *noRename {
		return
	}

	// Rename stage
	fmt.Println("\n>>> ETAPA DE RENOMEAÇÃO <<<")
	confirmed := *assumeYes
	if !confirmed {
		confirmed, err = rename.Confirm(os.Stdin, os.Stdout)
		if err != nil {
			log.Error("failed to read confirmation", "error", err)
			os.Exit(1)
		}
	}
	if !confirmed {
		fmt.Println("Renomeação cancelada pelo usuário.")
		return
	}

	summary, err := rename.NewRenamer(os.Stdout, logger).Apply(ctx, cfg.Batch.Dir, records)
	if err != nil {
		log.Warn("rename interrupted", "error", err)
	}
	fmt.Printf("\nResumo da Renomeação: %s\n", summary)
}
