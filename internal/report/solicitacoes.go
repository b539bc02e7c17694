package report

import (
	"sort"
	"strings"
	"time"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/buyers"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/excel"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/filters"
)

// Colunas da planilha de solicitações (aba Gd_Edicao).
type solicitacaoCols struct {
	situacaoItem      int
	statusNecessidade int
	codigoSolic       int
	sequencialItem    int
	codigoItem        int
	descricaoItem     int
	especificacao     int
	motivo            int
	quantidade        int
	cotacaoFirst      int
	cotacaoLast       int
	usuarioAlteracao  int
	dataAlteracao     int
	dataEmissao       int
	dataInclusao      int
	dataNecessidade   int
	unidade           int
	usuarioSolic      int
	comprador         int
	codigoContrato    int
	filial            int
	nomeFilial        int
}

func newSolicitacaoCols(t *excel.Table) solicitacaoCols {
	return solicitacaoCols{
		situacaoItem:      t.First("Situação do Item"),
		statusNecessidade: t.First("Status da necessidade"),
		codigoSolic:       t.First("Código da solicitação"),
		sequencialItem:    t.First("Sequencial do item"),
		codigoItem:        t.First("Código do item"),
		descricaoItem:     t.First("Descrição do item"),
		especificacao:     t.First("Especificação"),
		motivo:            t.First("Motivo"),
		quantidade:        t.First("Quantidade solicitada"),
		cotacaoFirst:      t.First("Código da cotação"),
		cotacaoLast:       t.Last("Código da cotação"),
		usuarioAlteracao:  t.First("Usuário de alteração"),
		dataAlteracao:     t.First("Data de alteração"),
		dataEmissao:       t.First("Data de emissão"),
		dataInclusao:      t.First("Data de inclusão"),
		dataNecessidade:   t.First("Data de necessidade"),
		unidade:           t.First("Unidade"),
		usuarioSolic:      t.First("Usuário solicitante"),
		comprador:         t.First("Nome do comprador"),
		codigoContrato:    t.First("Código do contrato"),
		filial:            t.First("Filial"),
		nomeFilial:        t.First("Nome Filial"),
	}
}

func isoDate(cell any) string {
	d, ok := excel.AsDate(cell)
	if !ok || !excel.ReasonableYear(d) {
		return ""
	}
	return d.UTC().Format(time.RFC3339)
}

// normalizeSolicitacao projeção tipada de uma linha da aba Gd_Edicao.
func normalizeSolicitacao(row []any, cols solicitacaoCols) SolicitacaoItem {
	var item SolicitacaoItem

	item.SituacaoItem, _ = excel.AsNonEmptyString(excel.Cell(row, cols.situacaoItem))
	item.StatusNecessidade, _ = excel.AsNonEmptyString(excel.Cell(row, cols.statusNecessidade))
	item.CodigoSolicitacao, _ = excel.AsNonEmptyString(excel.Cell(row, cols.codigoSolic))
	item.SequencialItem, _ = excel.AsNumber(excel.Cell(row, cols.sequencialItem))
	item.CodigoItem, _ = excel.AsNonEmptyString(excel.Cell(row, cols.codigoItem))
	item.DescricaoItem, _ = excel.AsNonEmptyString(excel.Cell(row, cols.descricaoItem))
	item.Especificacao, _ = excel.AsNonEmptyString(excel.Cell(row, cols.especificacao))
	item.Motivo, _ = excel.AsNonEmptyString(excel.Cell(row, cols.motivo))
	item.QuantidadeSolicitada, _ = excel.AsNumber(excel.Cell(row, cols.quantidade))

	// A coluna da cotação aparece duplicada em alguns exports; vale a
	// primeira ocorrência com célula presente.
	cotacao := excel.Cell(row, cols.cotacaoFirst)
	if cotacao == nil {
		cotacao = excel.Cell(row, cols.cotacaoLast)
	}
	item.CodigoCotacao, _ = excel.AsNonEmptyString(cotacao)

	item.UsuarioAlteracao, _ = excel.AsNonEmptyString(excel.Cell(row, cols.usuarioAlteracao))
	item.DataAlteracao = isoDate(excel.Cell(row, cols.dataAlteracao))
	item.DataEmissao = isoDate(excel.Cell(row, cols.dataEmissao))
	item.DataInclusao = isoDate(excel.Cell(row, cols.dataInclusao))
	item.DataNecessidade = isoDate(excel.Cell(row, cols.dataNecessidade))
	item.Unidade, _ = excel.AsNonEmptyString(excel.Cell(row, cols.unidade))
	item.UsuarioSolicitante, _ = excel.AsNonEmptyString(excel.Cell(row, cols.usuarioSolic))

	comprador, _ := excel.AsNonEmptyString(excel.Cell(row, cols.comprador))
	item.NomeComprador = buyers.NormalizeLabel(comprador)

	item.CodigoContrato, _ = excel.AsNonEmptyString(excel.Cell(row, cols.codigoContrato))
	item.Filial, _ = excel.AsNonEmptyString(excel.Cell(row, cols.filial))
	item.NomeFilial, _ = excel.AsNonEmptyString(excel.Cell(row, cols.nomeFilial))
	return item
}

// isOpenItem item sem situação é considerado em aberto.
func isOpenItem(situacaoItem string) bool {
	if situacaoItem == "" {
		return true
	}
	normalized := lower(situacaoItem)
	return normalized != "baixado" && normalized != "cancelado"
}

// isCotacaoStatus fase ativa de cotação ("A cotar", "Em cotação", ...).
func isCotacaoStatus(status string) bool {
	normalized := lower(status)
	if normalized == "" {
		return false
	}
	if normalized == "a cotar" {
		return true
	}
	return strings.HasPrefix(normalized, "em cot")
}

// rawFilialDaLinha nome bruto da unidade: "Nome Filial" com fallback "Filial".
func rawFilialDaLinha(row []any, cols solicitacaoCols) string {
	cell := excel.Cell(row, cols.nomeFilial)
	if cell == nil {
		cell = excel.Cell(row, cols.filial)
	}
	raw, _ := excel.AsNonEmptyString(cell)
	return raw
}

// DashboardCounts contadores da home: itens abertos com necessidade no mês
// corrente, quantos já atrasaram e quantos vencem dentro da janela.
func (s *Service) DashboardCounts(windowDays int) (*DashboardCounts, error) {
	if windowDays <= 0 {
		windowDays = 7
	}

	table, err := s.cache.Load(datafiles.KindSolicitacoes)
	if err != nil {
		return nil, err
	}

	iNeed := table.First("Data de necessidade")
	iSituacao := table.First("Situação do Item")

	now := s.now()
	targetYear := now.Year()
	targetMonth := int(now.Month())

	var counts DashboardCounts
	for _, row := range table.Rows {
		situacao, _ := excel.AsNonEmptyString(excel.Cell(row, iSituacao))
		if !isOpenItem(situacao) {
			continue
		}

		need, ok := excel.AsDate(excel.Cell(row, iNeed))
		if !ok || !excel.ReasonableYear(need) {
			continue
		}
		u := need.UTC()
		if u.Year() != targetYear || int(u.Month()) != targetMonth {
			continue
		}

		counts.ItensEmAberto++

		diasAtraso := diasEntre(need, now)
		if diasAtraso > 0 {
			counts.ItensAtrasados++
			continue
		}
		if restantes := -diasAtraso; restantes >= 0 && restantes <= windowDays {
			counts.ItensProximos++
		}
	}
	return &counts, nil
}

// DelayedItemsPage itens abertos em fase de cotação cuja necessidade já
// venceu, com filtros e opções da página. limit corta durante a passada.
func (s *Service) DelayedItemsPage(f filters.Filters, limit int) (*ItensPageData, error) {
	return s.slaItemsPage(f, limit, 0, true)
}

// ExpiringItemsPage itens abertos em fase de cotação que vencem dentro da
// janela de dias.
func (s *Service) ExpiringItemsPage(f filters.Filters, windowDays, limit int) (*ItensPageData, error) {
	if windowDays <= 0 {
		windowDays = 7
	}
	return s.slaItemsPage(f, limit, windowDays, false)
}

func (s *Service) slaItemsPage(f filters.Filters, limit, windowDays int, delayed bool) (*ItensPageData, error) {
	table, err := s.cache.Load(datafiles.KindSolicitacoes)
	if err != nil {
		return nil, err
	}
	cols := newSolicitacaoCols(table)

	optCompradores := make(opcoes)
	optFiliais := make(opcoes)

	now := s.now()
	minYear := now.Year()
	items := []SolicitacaoItemComSla{}

	for _, row := range table.Rows {
		situacao, _ := excel.AsNonEmptyString(excel.Cell(row, cols.situacaoItem))
		if !isOpenItem(situacao) {
			continue
		}

		need, ok := excel.AsDate(excel.Cell(row, cols.dataNecessidade))
		if !ok || !excel.ReasonableYear(need) {
			continue
		}
		if need.UTC().Year() < minYear {
			continue
		}
		if !filters.MatchesPeriod(need, f) {
			continue
		}

		status, _ := excel.AsNonEmptyString(excel.Cell(row, cols.statusNecessidade))
		if !isCotacaoStatus(status) {
			continue
		}

		rawBuyer, _ := excel.AsNonEmptyString(excel.Cell(row, cols.comprador))
		if buyers.ShouldExclude(rawBuyer) {
			continue
		}
		comprador := buyers.NormalizeLabel(rawBuyer)

		rawFilial := rawFilialDaLinha(row, cols)
		filial, ok := filialDaLinha(rawFilial)
		if !ok {
			continue
		}

		optCompradores.adicionar(comprador)
		optFiliais.adicionar(filial)

		if !filters.MatchesText(comprador, f.Comprador) || !matchesFilial(filial, rawFilial, f.Filial) {
			continue
		}

		var dias int
		if delayed {
			dias = diasEntre(need, now)
			if dias <= 0 {
				continue
			}
		} else {
			dias = diasEntre(now, need)
			if dias < 0 || dias > windowDays {
				continue
			}
		}

		items = append(items, SolicitacaoItemComSla{
			SolicitacaoItem: normalizeSolicitacao(row, cols),
			Dias:            dias,
		})
		if limit > 0 && len(items) >= limit {
			break
		}
	}

	if delayed {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Dias > items[j].Dias })
	} else {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Dias < items[j].Dias })
	}

	return &ItensPageData{
		Filters: f,
		Options: filters.Options{
			Compradores: optCompradores.ordenadas(),
			Filiais:     optFiliais.ordenadas(),
		},
		Items: items,
	}, nil
}

// DelayedItems variante simples para a home: sem filtros nem restrição de
// status de cotação, só itens abertos já vencidos.
func (s *Service) DelayedItems(limit int) ([]SolicitacaoItemComSla, error) {
	return s.slaItems(limit, 0, true)
}

// ExpiringItems variante simples da janela de vencimento.
func (s *Service) ExpiringItems(windowDays, limit int) ([]SolicitacaoItemComSla, error) {
	if windowDays <= 0 {
		windowDays = 7
	}
	return s.slaItems(limit, windowDays, false)
}

func (s *Service) slaItems(limit, windowDays int, delayed bool) ([]SolicitacaoItemComSla, error) {
	table, err := s.cache.Load(datafiles.KindSolicitacoes)
	if err != nil {
		return nil, err
	}
	cols := newSolicitacaoCols(table)

	now := s.now()
	minYear := now.Year()
	items := []SolicitacaoItemComSla{}

	for _, row := range table.Rows {
		situacao, _ := excel.AsNonEmptyString(excel.Cell(row, cols.situacaoItem))
		if !isOpenItem(situacao) {
			continue
		}

		need, ok := excel.AsDate(excel.Cell(row, cols.dataNecessidade))
		if !ok || !excel.ReasonableYear(need) {
			continue
		}
		if need.UTC().Year() < minYear {
			continue
		}

		var dias int
		if delayed {
			dias = diasEntre(need, now)
			if dias <= 0 {
				continue
			}
		} else {
			dias = diasEntre(now, need)
			if dias < 0 || dias > windowDays {
				continue
			}
		}

		items = append(items, SolicitacaoItemComSla{
			SolicitacaoItem: normalizeSolicitacao(row, cols),
			Dias:            dias,
		})
		if limit > 0 && len(items) >= limit {
			break
		}
	}

	if delayed {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Dias > items[j].Dias })
	} else {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Dias < items[j].Dias })
	}
	return items, nil
}
