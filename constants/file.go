package constants

import "strings"

// AllowedExtensions holds the file extensions picked up from the input directory.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// DefaultReportFile is the report name used when none is configured.
const DefaultReportFile = "Relatorio_Completo_OS.xlsx"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
