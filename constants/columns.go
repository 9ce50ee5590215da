package constants

// ReportColumns is the fixed column order of the report.
var ReportColumns = []string{
	"Nome do Arquivo .pdf",
	"Matrícula",
	"Nome",
	"Tem assinatura",
	"Status de leitura",
	"Descrição da Função",
	"Função (Cargo)",
}
