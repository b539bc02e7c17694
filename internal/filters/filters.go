// Package filters filtros de período e texto compartilhados por todos os
// relatórios. Os predicados são puros; cada motor os aplica linha a linha.
package filters

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/excel"
)

// Filters objeto de valor imutável. Campo ausente (zero) casa com tudo.
// Data exata tem precedência sobre ano/mês.
type Filters struct {
	Date      string `json:"date,omitempty"` // YYYY-MM-DD
	Month     int    `json:"month,omitempty"`
	Year      int    `json:"year,omitempty"`
	Comprador string `json:"comprador,omitempty"`
	Filial    string `json:"filial,omitempty"`
}

// Options opções de filtro efetivamente observadas na passada.
type Options struct {
	Compradores []string `json:"compradores"`
	Filiais     []string `json:"filiais"`
}

// Granularity granularidade padrão aplicada quando a query não traz período.
type Granularity string

const (
	GranularityNone  Granularity = "none"
	GranularityYear  Granularity = "year"
	GranularityMonth Granularity = "month"
)

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func asInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

// Parse monta Filters a partir dos parâmetros da query, aplicando a
// granularidade padrão com base em now quando necessário.
func Parse(query map[string]string, now time.Time, granularity Granularity) Filters {
	f := Filters{
		Comprador: strings.TrimSpace(query["comprador"]),
		Filial:    strings.TrimSpace(query["filial"]),
	}

	if raw := strings.TrimSpace(query["date"]); dateKeyPattern.MatchString(raw) {
		f.Date = raw
	}
	if m := asInt(query["month"]); m >= 1 && m <= 12 {
		f.Month = m
	}
	if y := asInt(query["year"]); y >= 2000 && y <= 2100 {
		f.Year = y
	}

	if f.Date == "" {
		switch granularity {
		case GranularityMonth:
			if f.Month == 0 {
				f.Month = int(now.Month())
			}
			if f.Year == 0 {
				f.Year = now.Year()
			}
		case GranularityYear:
			if f.Year == 0 {
				f.Year = now.Year()
			}
		}
	}

	// Data exata preenche ano/mês ausentes para exibição; a precedência da
	// data em MatchesPeriod não muda.
	if f.Date != "" {
		if y := asInt(f.Date[0:4]); y != 0 && f.Year == 0 {
			f.Year = y
		}
		if m := asInt(f.Date[5:7]); m != 0 && f.Month == 0 {
			f.Month = m
		}
	}

	return f
}

// MatchesPeriod data ausente nunca casa. Data exata compara o dia calendário
// UTC; senão ano+mês; senão só ano; sem período, casa sempre.
func MatchesPeriod(date time.Time, f Filters) bool {
	if date.IsZero() {
		return false
	}
	if f.Date != "" {
		return excel.DateKeyUTC(date) == f.Date
	}
	if f.Year != 0 && f.Month != 0 {
		u := date.UTC()
		return u.Year() == f.Year && int(u.Month()) == f.Month
	}
	if f.Year != 0 {
		return date.UTC().Year() == f.Year
	}
	return true
}

// MatchesText contém-substring sem caixa; filtro vazio casa com tudo.
func MatchesText(value, filter string) bool {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" {
		return true
	}
	v := strings.ToLower(strings.TrimSpace(value))
	return strings.Contains(v, f)
}
