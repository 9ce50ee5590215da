package constants

// Report cell values. These exact strings land in the spreadsheet.
const (
	StatusOK     = "OK"
	StatusAbsent = "Ausente"
	NotAvailable = "N/A"

	// ReadErrorPrefix precedes the error text in the read-status column.
	ReadErrorPrefix = "Erro: "
)

// Rename prefixes.
const (
	ErrorPrefix      = "ERROR -"
	ErrorPrefixSpace = ErrorPrefix + " "
	IdentifierSep    = " - "
)
