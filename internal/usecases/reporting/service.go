package reporting

import (
	"github.com/vfg2006/vendas-dre-api/internal/domain"
)

// BuildStatement calcula a DRE a partir da visão agregada e dos três
// parâmetros de negócio. A função é pura e a ordem de cálculo é fixa: cada
// passo depende apenas dos anteriores. Resultados negativos são preservados,
// nunca saturados.
func BuildStatement(view *domain.AggregateView, params domain.StatementParams) *domain.FinancialStatement {
	statement := &domain.FinancialStatement{}

	// Visão vazia produz demonstrativo inteiramente zerado, inclusive as
	// despesas fixas: não há exercício a demonstrar.
	if view.IsEmpty() {
		return statement
	}

	methods := view.PaymentMethods

	// 1-2. Receita bruta e o recorte tributável por canal: cartão e pix
	// compõem a base do Simples; dinheiro fica fora da base.
	statement.ReceitaBruta = methods.Cartao + methods.Dinheiro + methods.Pix
	statement.ReceitaTributavel = methods.Cartao + methods.Pix
	statement.ReceitaNaoTributavel = methods.Dinheiro

	// 3-4. Imposto presumido e receita líquida.
	statement.ImpostoSimples = statement.ReceitaTributavel * domain.AliquotaSimples
	statement.ReceitaLiquida = statement.ReceitaBruta - statement.ImpostoSimples

	// 5-6. CPV como percentual da receita bruta e lucro bruto.
	statement.CPV = statement.ReceitaBruta * (params.PercentualFornecedor / 100)
	statement.LucroBruto = statement.ReceitaLiquida - statement.CPV
	statement.MargemBruta = marginOf(statement.LucroBruto, statement.ReceitaLiquida)

	// 7. Despesas operacionais: pessoal (salário base com encargos),
	// honorários contábeis e administrativas (reservado, sempre 0).
	statement.DespesasPessoal = params.SalarioMinimo * domain.EncargosFolha
	statement.DespesasContabeis = params.HonorarioContador
	statement.DespesasAdministrativas = 0
	statement.TotalDespesasOperacionais = statement.DespesasPessoal +
		statement.DespesasContabeis +
		statement.DespesasAdministrativas

	// 8. Resultado operacional.
	statement.LucroOperacional = statement.LucroBruto - statement.TotalDespesasOperacionais
	statement.MargemOperacional = marginOf(statement.LucroOperacional, statement.ReceitaLiquida)

	// 9-10. Sem linha de resultado financeiro neste modelo, e o Simples já
	// cobre o imposto de renda: LAIR e lucro líquido repetem o operacional.
	statement.LucroAntesImpostos = statement.LucroOperacional
	statement.LucroLiquido = statement.LucroAntesImpostos
	statement.MargemLiquida = marginOf(statement.LucroLiquido, statement.ReceitaLiquida)

	return statement
}

// marginOf calcula a margem percentual com guarda de divisão por zero:
// denominador não positivo resulta em 0, nunca NaN.
func marginOf(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}

	return numerator / denominator * 100
}
