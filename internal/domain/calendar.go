package domain

import "time"

// Tabelas fixas de nomes de meses e dias da semana em português.
// Nunca dependemos do locale do sistema operacional: a disponibilidade de
// locales pt_BR varia entre ambientes e quebraria o determinismo do pipeline.
var monthNames = [13]string{
	"",
	"Janeiro",
	"Fevereiro",
	"Março",
	"Abril",
	"Maio",
	"Junho",
	"Julho",
	"Agosto",
	"Setembro",
	"Outubro",
	"Novembro",
	"Dezembro",
}

// weekdayNames é indexada pelo dia da semana ISO (0 = Segunda-feira).
var weekdayNames = [7]string{
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
	"Domingo",
}

// MonthName retorna o nome do mês (1-12) a partir da tabela fixa.
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthNames[int(month)]
}

// ISOWeekday converte o dia da semana do Go (Domingo = 0) para o índice ISO
// (Segunda-feira = 0 ... Domingo = 6).
func ISOWeekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// WeekdayName retorna o nome do dia da semana na convenção Segunda→Domingo.
func WeekdayName(date time.Time) string {
	return weekdayNames[ISOWeekday(date)]
}

// WeekdayOrder retorna a sequência fixa Segunda→Domingo usada para ordenar
// agregações por dia da semana.
func WeekdayOrder() []string {
	order := make([]string, len(weekdayNames))
	copy(order, weekdayNames[:])
	return order
}
