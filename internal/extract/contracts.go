package extract

import "github.com/joseph-ayodele/os-report/constants"

// DescriptionStatus reports whether the job description block carries content.
type DescriptionStatus int

const (
	DescriptionAbsent DescriptionStatus = iota
	DescriptionPresent
)

// String returns the report cell value for the status.
func (s DescriptionStatus) String() string {
	if s == DescriptionPresent {
		return constants.StatusOK
	}
	return constants.StatusAbsent
}

// Result holds the fields pulled out of one document.
// Absent string fields hold constants.NotAvailable, never "".
type Result struct {
	Identifier  string
	Name        string
	Role        string
	Description DescriptionStatus
}

// EmptyResult is the all-absent result used when nothing could be read.
func EmptyResult() Result {
	return Result{
		Identifier:  constants.NotAvailable,
		Name:        constants.NotAvailable,
		Role:        constants.NotAvailable,
		Description: DescriptionAbsent,
	}
}

// FieldRule describes one labeled value: the label and the tokens that end it.
type FieldRule struct {
	Label       string   `json:"label"`
	Terminators []string `json:"terminators"`
}

// Rules configures the extraction heuristics for one document template.
type Rules struct {
	SectionHeading string `json:"section_heading"`

	IdentifierDigits int `json:"identifier_digits"`
	IdentifierMin    int `json:"identifier_min"`
	IdentifierMax    int `json:"identifier_max"`

	Name FieldRule `json:"name"`
	Role FieldRule `json:"role"`

	// OrganizationMarker discards a captured name that is really a company field.
	OrganizationMarker string `json:"organization_marker"`

	DescriptionLabel      string `json:"description_label"`
	DescriptionTerminator string `json:"description_terminator"`
	DescriptionMinLength  int    `json:"description_min_length"`
}

// DefaultRules matches the work-order template the tool was written for.
func DefaultRules() Rules {
	return Rules{
		SectionHeading:   "DADOS DO FUNCIONÁRIO",
		IdentifierDigits: 6,
		IdentifierMin:    40000,
		IdentifierMax:    76906,
		Name: FieldRule{
			Label:       "Nome",
			Terminators: []string{`"`, "Centro", "Matrícula", "Endereço", "Data", "CNPJ"},
		},
		Role: FieldRule{
			Label:       "Função",
			Terminators: []string{`"`, "CTPS", "CNAE", "Bairro", "RG", "CNPJ", "Data"},
		},
		OrganizationMarker:    "CONSTRUTORA",
		DescriptionLabel:      "Descrição Função",
		DescriptionTerminator: "Agentes das Atividades",
		DescriptionMinLength:  2,
	}
}
