package entity

import "github.com/joseph-ayodele/os-report/constants"

// ReportRecord is one report row, built once per processed document.
type ReportRecord struct {
	FileName    string `json:"file_name"`
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Signature   string `json:"signature"`
	ReadStatus  string `json:"read_status"`
	Description string `json:"description"`
	Role        string `json:"role"`
}

// Values returns the cells in constants.ReportColumns order.
func (r ReportRecord) Values() []string {
	return []string{
		orNA(r.FileName),
		orNA(r.Identifier),
		orNA(r.Name),
		orNA(r.Signature),
		orNA(r.ReadStatus),
		orNA(r.Description),
		orNA(r.Role),
	}
}

// HasIdentifier reports whether the row carries an extracted identifier.
func (r ReportRecord) HasIdentifier() bool {
	return r.Identifier != "" && r.Identifier != constants.NotAvailable
}

// ReadOK reports whether the document was read without error.
func (r ReportRecord) ReadOK() bool {
	return r.ReadStatus == constants.StatusOK
}

func orNA(s string) string {
	if s == "" {
		return constants.NotAvailable
	}
	return s
}
