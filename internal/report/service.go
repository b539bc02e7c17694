// Package report motores de agregação dos relatórios de suprimentos.
// Cada consulta faz uma única passada linear sobre as linhas da tabela,
// normalizando células por nome de coluna e acumulando por chave de grupo.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/dataset"
)

// Service ponto de entrada das consultas. Só muta estado compartilhado via o
// slot interno do cache de datasets.
type Service struct {
	cache *dataset.Cache
	now   func() time.Time
}

// NewService cria o serviço sobre o cache de datasets.
func NewService(cache *dataset.Cache) *Service {
	return &Service{cache: cache, now: time.Now}
}

// NewServiceWithClock variante com relógio injetado, usada nos testes.
func NewServiceWithClock(cache *dataset.Cache, now func() time.Time) *Service {
	return &Service{cache: cache, now: now}
}

// inicioDoDia normaliza para a meia-noite do dia calendário da própria data.
func inicioDoDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// diasEntre dias calendário de inicio até fim (piso em granularidade de dia).
func diasEntre(inicio, fim time.Time) int {
	return int(inicioDoDia(fim).Sub(inicioDoDia(inicio)).Hours() / 24)
}

// Vãos negativos ou acima disso são ruído de qualidade de dado, não erro.
const maxLeadTimeDias = 3650

func leadTimeValido(dias int) bool {
	return dias >= 0 && dias <= maxLeadTimeDias
}

func media(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ordenaLeadTimes rankeia pelo score total, estável, e corta no top.
func ordenaLeadTimes(itens []LeadTimesPorComprador, top int) []LeadTimesPorComprador {
	sort.SliceStable(itens, func(i, j int) bool {
		return itens[i].TotalDias > itens[j].TotalDias
	})
	if top > 0 && len(itens) > top {
		itens = itens[:top]
	}
	return itens
}
