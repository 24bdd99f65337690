package domain

const (
	// AliquotaSimples é a alíquota única do Simples Nacional aplicada sobre a
	// receita tributável (cartão + pix).
	AliquotaSimples = 0.06

	// EncargosFolha é o multiplicador de encargos trabalhistas aplicado sobre
	// o salário base para estimar a despesa total com pessoal.
	EncargosFolha = 1.55
)

// StatementParams são os três parâmetros de negócio da DRE.
type StatementParams struct {
	SalarioMinimo        float64 `json:"salario_minimo"`
	HonorarioContador    float64 `json:"honorario_contador"`
	PercentualFornecedor float64 `json:"percentual_fornecedor"`
}

// FinancialStatement é a DRE derivada de uma AggregateView: o encadeamento
// fixo da receita bruta até o lucro líquido. Toda margem é 0 quando seu
// denominador é 0.
type FinancialStatement struct {
	ReceitaBruta         float64 `json:"receita_bruta"`
	ReceitaTributavel    float64 `json:"receita_tributavel"`
	ReceitaNaoTributavel float64 `json:"receita_nao_tributavel"`
	ImpostoSimples       float64 `json:"imposto_simples"`
	ReceitaLiquida       float64 `json:"receita_liquida"`

	CPV         float64 `json:"cpv"`
	LucroBruto  float64 `json:"lucro_bruto"`
	MargemBruta float64 `json:"margem_bruta"`

	DespesasPessoal           float64 `json:"despesas_pessoal"`
	DespesasContabeis         float64 `json:"despesas_contabeis"`
	DespesasAdministrativas   float64 `json:"despesas_administrativas"`
	TotalDespesasOperacionais float64 `json:"total_despesas_operacionais"`

	LucroOperacional  float64 `json:"lucro_operacional"`
	MargemOperacional float64 `json:"margem_operacional"`

	LucroAntesImpostos float64 `json:"lucro_antes_impostos"`
	LucroLiquido       float64 `json:"lucro_liquido"`
	MargemLiquida      float64 `json:"margem_liquida"`
}
