package reporting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vfg2006/vendas-dre-api/internal/domain"
)

// RenderStatement formata a DRE como uma cascata textual ordenada, da
// receita bruta ao lucro líquido. Linhas de dedução são prefixadas com (-).
// Sem lógica de negócio: apenas apresentação.
func RenderStatement(statement *domain.FinancialStatement) string {
	var b strings.Builder

	b.WriteString("DEMONSTRAÇÃO DO RESULTADO DO EXERCÍCIO\n")
	b.WriteString(strings.Repeat("=", 58) + "\n")

	writeLine(&b, "Receita Bruta", statement.ReceitaBruta)
	writeLine(&b, "  Receita Tributável (Cartão + Pix)", statement.ReceitaTributavel)
	writeLine(&b, "  Receita Não Tributável (Dinheiro)", statement.ReceitaNaoTributavel)
	writeLine(&b, "(-) Impostos (Simples Nacional)", statement.ImpostoSimples)
	writeLine(&b, "Receita Líquida", statement.ReceitaLiquida)
	writeLine(&b, "(-) CPV", statement.CPV)
	writeLineWithMargin(&b, "Lucro Bruto", statement.LucroBruto, statement.MargemBruta)
	writeLine(&b, "(-) Despesas com Pessoal", statement.DespesasPessoal)
	writeLine(&b, "(-) Honorários Contábeis", statement.DespesasContabeis)
	writeLine(&b, "(-) Despesas Administrativas", statement.DespesasAdministrativas)
	writeLine(&b, "Total de Despesas Operacionais", statement.TotalDespesasOperacionais)
	writeLineWithMargin(&b, "Lucro Operacional", statement.LucroOperacional, statement.MargemOperacional)
	writeLine(&b, "Lucro Antes dos Impostos", statement.LucroAntesImpostos)
	writeLineWithMargin(&b, "Lucro Líquido", statement.LucroLiquido, statement.MargemLiquida)

	return b.String()
}

func writeLine(b *strings.Builder, label string, value float64) {
	fmt.Fprintf(b, "%-38s %18s\n", label, FormatBRL(value))
}

func writeLineWithMargin(b *strings.Builder, label string, value, margin float64) {
	fmt.Fprintf(b, "%-38s %18s  (%s%%)\n", label, FormatBRL(value), FormatBRL(margin))
}

// FormatBRL formata um valor na convenção brasileira: ponto como separador
// de milhar, vírgula como separador decimal, sempre duas casas. Implementado
// à mão porque a formatação por locale do sistema é justamente o que este
// pipeline elimina.
func FormatBRL(value float64) string {
	negative := value < 0

	fixed := strconv.FormatFloat(math.Abs(value), 'f', 2, 64)
	parts := strings.SplitN(fixed, ".", 2)

	formatted := groupThousands(parts[0]) + "," + parts[1]
	if negative {
		formatted = "-" + formatted
	}

	return formatted
}

// groupThousands insere pontos a cada três dígitos, da direita para a
// esquerda.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return strings.Join(groups, ".")
}
