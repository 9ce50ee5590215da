// Package rename prefixes processed files with the identifier found in them.
package rename

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joseph-ayodele/os-report/constants"
	"github.com/joseph-ayodele/os-report/internal/common"
	"github.com/joseph-ayodele/os-report/internal/entity"
)

// Prompt is the confirmation question shown before any file is touched.
const Prompt = "Deseja renomear os arquivos conforme as matrículas encontradas? (S/N): "

var yes = map[string]bool{"s": true, "sim": true, "y": true, "yes": true}

// Confirm writes Prompt to out and reads one answer line from in.
// Anything but s/sim/y/yes (any case), including end of input, declines.
func Confirm(in io.Reader, out io.Writer) (bool, error) {
	if _, err := io.WriteString(out, Prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := cases.Lower(language.BrazilianPortuguese).String(strings.TrimSpace(line))
	return yes[answer], nil
}

// Action is what the rename stage decided for one file.
type Action int

const (
	ActionSkip Action = iota
	ActionIdentify
	ActionMarkError
)

// TargetName returns the new base name for a file and the action it implies.
// Files already carrying the matching prefix are skipped.
func TargetName(name, identifier string) (string, Action) {
	if identifier != "" && identifier != constants.NotAvailable {
		if strings.HasPrefix(name, identifier+" -") {
			return name, ActionSkip
		}
		return identifier + constants.IdentifierSep + name, ActionIdentify
	}
	if strings.HasPrefix(name, constants.ErrorPrefix) {
		return name, ActionSkip
	}
	return constants.ErrorPrefixSpace + name, ActionMarkError
}

// Summary counts the outcome of a rename pass.
type Summary struct {
	Renamed     int
	MarkedError int
	Skipped     int
	Failed      int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d arquivos renomeados com sucesso, %d marcados com erro, %d ignorados, %d falhas.",
		s.Renamed, s.MarkedError, s.Skipped, s.Failed)
}

// Renamer applies TargetName to every record of a batch inside one directory.
type Renamer struct {
	out    io.Writer
	logger *slog.Logger
}

// NewRenamer reports per-file progress to out (the operator's terminal).
func NewRenamer(out io.Writer, logger *slog.Logger) *Renamer {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renamer{out: out, logger: logger}
}

// Apply renames the files of records found in dir. Failures are isolated per
// file; the pass stops early only when ctx is cancelled.
func (r *Renamer) Apply(ctx context.Context, dir string, records []entity.ReportRecord) (Summary, error) {
	log := common.LoggerWithRun(ctx, r.logger)
	var sum Summary

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		name := rec.FileName
		from := filepath.Join(dir, name)
		if _, err := os.Stat(from); err != nil {
			log.Debug("rename.skip.missing", "file", name, "err", err)
			sum.Skipped++
			continue
		}

		target, action := TargetName(name, rec.Identifier)
		if action == ActionSkip {
			fmt.Fprintf(r.out, "Ignorado (Já renomeado): %s\n", name)
			sum.Skipped++
			continue
		}

		if err := renameFile(from, filepath.Join(dir, target)); err != nil {
			fmt.Fprintf(r.out, "[ERRO] Falha ao renomear '%s': %v\n", name, err)
			log.Error("rename.failed", "file", name, "target", target, "err", err)
			sum.Failed++
			continue
		}

		if action == ActionIdentify {
			fmt.Fprintf(r.out, "[OK] Renomeado: '%s' -> '%s'\n", name, target)
			sum.Renamed++
		} else {
			fmt.Fprintf(r.out, "[AVISO] Matrícula não encontrada. Marcado como ERROR: '%s'\n", target)
			sum.MarkedError++
		}
		log.Info("rename.ok", "file", name, "target", target)
	}

	log.Info("rename.done",
		"renamed", sum.Renamed,
		"marked_error", sum.MarkedError,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
	)
	return sum, nil
}

// renameFile refuses to overwrite an existing file.
func renameFile(from, to string) error {
	if _, err := os.Lstat(to); err == nil {
		return common.NewAppError(common.CodeRename, to, errors.Join(common.ErrRename, os.ErrExist))
	}
	if err := os.Rename(from, to); err != nil {
		return common.NewAppError(common.CodeRename, to, errors.Join(common.ErrRename, err))
	}
	return nil
}
