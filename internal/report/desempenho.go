package report

import (
	"strings"
	"time"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/buyers"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/excel"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/filters"
)

// Colunas do export de suprimentos usadas pelo desempenho. A planilha repete
// nomes entre o lado da solicitação e o do pedido; a primeira ocorrência é a
// que vale para estas métricas.
type desempenhoCols struct {
	comprador      int
	filialPedido   int
	filialSolic    int
	emissaoPedido  int
	pedido         int
	codigoSolic    int
	valorItem      int
	situItemPedido int
	alteracaoPc    int
	aprovSolic     int
	aprovPedido    int
	envioMapa      int
	aprovMapa      int
	codigoCotacao  int
}

func newDesempenhoCols(t *excel.Table) desempenhoCols {
	return desempenhoCols{
		comprador:      t.First("Nome do comprador"),
		filialPedido:   t.First("Nome Filial Pedido"),
		filialSolic:    t.First("Nome Filial da solicitação"),
		emissaoPedido:  t.First("Dt.Emissão"),
		pedido:         t.First("Número do pedido"),
		codigoSolic:    t.First("Código da solicitação"),
		valorItem:      t.First("Vlr.Total Item"),
		situItemPedido: t.First("Situação do Item Pedido"),
		alteracaoPc:    t.First("DATA ALTERAÇÃO PC"),
		aprovSolic:     t.First("DATA APROVAÇÃO SOLICITAÇÃO"),
		aprovPedido:    t.First("DATA APROVAÇÃO PEDIDO"),
		envioMapa:      t.First("DATA DO ENVIO DA COTAÇÃO PARA APROVAÇÃO"),
		aprovMapa:      t.First("DATA DA APROVAÇÃO - COTAÇÃO"),
		codigoCotacao:  t.First("Código da cotação"),
	}
}

// desempenhoRow projeção tipada de uma linha para esta agregação.
type desempenhoRow struct {
	comprador      string
	filial         string
	pedido         string
	codigoSolic    string
	codigoCotacao  string
	situItemPedido string
	valorItem      float64
	temValor       bool
	emissaoPedido  time.Time
	alteracaoPc    time.Time
	aprovSolic     time.Time
	aprovPedido    time.Time
	envioMapa      time.Time
	aprovMapa      time.Time
}

func projetaDesempenho(row []any, cols desempenhoCols) (desempenhoRow, bool) {
	rawBuyer, _ := excel.AsNonEmptyString(excel.Cell(row, cols.comprador))
	if buyers.ShouldExclude(rawBuyer) {
		return desempenhoRow{}, false
	}

	filial, ok := excel.AsNonEmptyString(excel.Cell(row, cols.filialPedido))
	if !ok {
		if filial, ok = excel.AsNonEmptyString(excel.Cell(row, cols.filialSolic)); !ok {
			filial = semFilialLabel
		}
	}

	p := desempenhoRow{
		comprador: buyers.NormalizeLabel(rawBuyer),
		filial:    filial,
	}
	p.pedido, _ = excel.AsNonEmptyString(excel.Cell(row, cols.pedido))
	p.codigoSolic, _ = excel.AsNonEmptyString(excel.Cell(row, cols.codigoSolic))
	p.codigoCotacao, _ = excel.AsNonEmptyString(excel.Cell(row, cols.codigoCotacao))
	p.situItemPedido, _ = excel.AsNonEmptyString(excel.Cell(row, cols.situItemPedido))
	p.valorItem, p.temValor = excel.AsNumber(excel.Cell(row, cols.valorItem))
	p.emissaoPedido, _ = excel.AsDate(excel.Cell(row, cols.emissaoPedido))
	p.alteracaoPc, _ = excel.AsDate(excel.Cell(row, cols.alteracaoPc))
	p.aprovSolic, _ = excel.AsDate(excel.Cell(row, cols.aprovSolic))
	p.aprovPedido, _ = excel.AsDate(excel.Cell(row, cols.aprovPedido))
	p.envioMapa, _ = excel.AsDate(excel.Cell(row, cols.envioMapa))
	p.aprovMapa, _ = excel.AsDate(excel.Cell(row, cols.aprovMapa))
	return p, true
}

type leadTimeAcc struct {
	compraTotal float64
	compraCount int
	aprovTotal  float64
	aprovCount  int
	mapaTotal   float64
	mapaCount   int
}

// DesempenhoPageData KPIs de desempenho, lead times por comprador e rankings
// de valor/pedidos/itens, tudo em uma única passada.
func (s *Service) DesempenhoPageData(f filters.Filters, top int) (*DesempenhoPageData, error) {
	if top <= 0 {
		top = 10
	}

	table, err := s.cache.Load(datafiles.KindExportSuprimentos)
	if err != nil {
		return nil, err
	}
	cols := newDesempenhoCols(table)

	optCompradores := make(opcoes)
	optFiliais := make(opcoes)

	var (
		valorTotal     float64
		itensAtendidos int
	)
	solicitacoesAtendidas := make(conjunto)
	revisoes := make(conjunto)

	var valorPorComprador contagem
	var itensPorComprador contagem
	var pcsPorComprador distintos

	ltPorComprador := make(map[string]*leadTimeAcc)
	ltOrdem := []string{}
	seenCompra := make(conjunto)
	seenAprov := make(conjunto)
	seenMapa := make(conjunto)

	var (
		ltComprasTotal float64
		ltComprasCount int
		ltAprovTotal   float64
		ltAprovCount   int
		ltMapaTotal    float64
		ltMapaCount    int
	)

	ltDoComprador := func(comprador string) *leadTimeAcc {
		acc, ok := ltPorComprador[comprador]
		if !ok {
			acc = &leadTimeAcc{}
			ltPorComprador[comprador] = acc
			ltOrdem = append(ltOrdem, comprador)
		}
		return acc
	}

	for _, row := range table.Rows {
		p, ok := projetaDesempenho(row, cols)
		if !ok {
			continue
		}

		// Opções de filtro refletem o período selecionado, antes dos
		// filtros de texto de comprador/filial.
		emPeriodo := filters.MatchesPeriod(p.emissaoPedido, f) ||
			filters.MatchesPeriod(p.envioMapa, f) ||
			filters.MatchesPeriod(p.alteracaoPc, f)
		if emPeriodo {
			optCompradores.adicionar(p.comprador)
			optFiliais.adicionar(p.filial)
		}

		if !filters.MatchesText(p.comprador, f.Comprador) || !filters.MatchesText(p.filial, f.Filial) {
			continue
		}

		// Compras (base: emissão do pedido).
		if filters.MatchesPeriod(p.emissaoPedido, f) {
			if p.temValor && p.valorItem != 0 {
				valorTotal += p.valorItem
				valorPorComprador.somar(p.comprador, p.valorItem)
			}

			if p.pedido != "" {
				pcsPorComprador.adicionar(p.comprador, p.pedido)
			}
			itensPorComprador.somar(p.comprador, 1)

			if strings.Contains(lower(p.situItemPedido), "atendid") {
				itensAtendidos++
				if p.codigoSolic != "" {
					solicitacoesAtendidas.adicionar(p.codigoSolic)
				}
			}

			// Lead time compras: aprovação da solicitação -> aprovação do
			// pedido, uma vez por solicitação.
			if p.codigoSolic != "" && !p.aprovSolic.IsZero() && !p.aprovPedido.IsZero() && !seenCompra.contem(p.codigoSolic) {
				seenCompra.adicionar(p.codigoSolic)
				if dias := diasEntre(p.aprovSolic, p.aprovPedido); leadTimeValido(dias) {
					ltComprasTotal += float64(dias)
					ltComprasCount++
					acc := ltDoComprador(p.comprador)
					acc.compraTotal += float64(dias)
					acc.compraCount++
				}
			}

			// Lead time aprovação PC: emissão -> aprovação, uma vez por pedido.
			if p.pedido != "" && !p.emissaoPedido.IsZero() && !p.aprovPedido.IsZero() && !seenAprov.contem(p.pedido) {
				seenAprov.adicionar(p.pedido)
				if dias := diasEntre(p.emissaoPedido, p.aprovPedido); leadTimeValido(dias) {
					ltAprovTotal += float64(dias)
					ltAprovCount++
					acc := ltDoComprador(p.comprador)
					acc.aprovTotal += float64(dias)
					acc.aprovCount++
				}
			}
		}

		// Revisões (base: data de alteração do PC).
		if filters.MatchesPeriod(p.alteracaoPc, f) && p.pedido != "" {
			revisoes.adicionar(p.pedido)
		}

		// Lead time mapa: envio -> aprovação da cotação, uma vez por cotação.
		if filters.MatchesPeriod(p.envioMapa, f) {
			if !p.envioMapa.IsZero() && !p.aprovMapa.IsZero() && p.codigoCotacao != "" && !seenMapa.contem(p.codigoCotacao) {
				seenMapa.adicionar(p.codigoCotacao)
				if dias := diasEntre(p.envioMapa, p.aprovMapa); leadTimeValido(dias) {
					ltMapaTotal += float64(dias)
					ltMapaCount++
					acc := ltDoComprador(p.comprador)
					acc.mapaTotal += float64(dias)
					acc.mapaCount++
				}
			}
		}
	}

	leadTimes := make([]LeadTimesPorComprador, 0, len(ltOrdem))
	for _, comprador := range ltOrdem {
		acc := ltPorComprador[comprador]
		ltCompras := excel.Round2(media(acc.compraTotal, acc.compraCount))
		ltAprov := excel.Round2(media(acc.aprovTotal, acc.aprovCount))
		ltMapa := excel.Round2(media(acc.mapaTotal, acc.mapaCount))
		leadTimes = append(leadTimes, LeadTimesPorComprador{
			Comprador:     comprador,
			LtComprasDias: ltCompras,
			LtAprovPcDias: ltAprov,
			LtMapaDias:    ltMapa,
			TotalDias:     excel.Round2(ltCompras + ltAprov + ltMapa),
		})
	}
	leadTimes = ordenaLeadTimes(leadTimes, top)

	valor := make([]CompradorValor, 0, top)
	for _, kv := range valorPorComprador.ranking(top) {
		valor = append(valor, CompradorValor{Comprador: kv.Chave, Valor: excel.Round2(kv.Valor)})
	}

	pcs := make([]CompradorPCs, 0, top)
	for _, kv := range pcsPorComprador.ranking(top) {
		pcs = append(pcs, CompradorPCs{Comprador: kv.Chave, PCs: int(kv.Valor)})
	}

	itens := make([]CompradorItens, 0, top)
	for _, kv := range itensPorComprador.ranking(top) {
		itens = append(itens, CompradorItens{Comprador: kv.Chave, Itens: int(kv.Valor)})
	}

	return &DesempenhoPageData{
		Filters: f,
		Options: filters.Options{
			Compradores: optCompradores.ordenadas(),
			Filiais:     optFiliais.ordenadas(),
		},
		Kpis: DesempenhoKpis{
			ValorTotal:            excel.Round2(valorTotal),
			ItensAtendidos:        itensAtendidos,
			SolicitacoesAtendidas: len(solicitacoesAtendidas),
			Revisoes:              len(revisoes),
			LtComprasDias:         excel.Round2(media(ltComprasTotal, ltComprasCount)),
			LtMapaDias:            excel.Round2(media(ltMapaTotal, ltMapaCount)),
			LtAprovPcDias:         excel.Round2(media(ltAprovTotal, ltAprovCount)),
		},
		LeadTimesPorComprador: leadTimes,
		ValorPorComprador:     valor,
		PcsPorComprador:       pcs,
		ItensPorComprador:     itens,
	}, nil
}
