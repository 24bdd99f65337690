package domain

// Nomes dos campos reconhecidos nas linhas brutas recebidas na importação.
// Os nomes são em português e sensíveis a maiúsculas, por convenção da
// planilha de origem.
const (
	FieldData     = "Data"
	FieldCartao   = "Cartão"
	FieldDinheiro = "Dinheiro"
	FieldPix      = "Pix"
)

// SalesRecord representa uma linha de vendas diárias após a normalização
// numérica, mas antes do enriquecimento de calendário. A data permanece
// crua (sem parse) até a etapa de enriquecimento.
type SalesRecord struct {
	Data     string  `json:"Data"`
	Cartao   float64 `json:"Cartão"`
	Dinheiro float64 `json:"Dinheiro"`
	Pix      float64 `json:"Pix"`
}
