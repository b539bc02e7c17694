package report

import (
	"sort"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/buyers"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/excel"
)

// LeadTimeSummary resumo da página inicial: lead time médio de compras por
// comprador no ano, gasto e PCs do mês, e filas de aprovação abertas.
// Este caller usa a janela alargada de anos (dados históricos do export).
func (s *Service) LeadTimeSummary(year, month, top int) (*LeadTimeSummary, error) {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if top <= 0 {
		top = 15
	}

	table, err := s.cache.Load(datafiles.KindExportSuprimentos)
	if err != nil {
		return nil, err
	}

	iComprador := table.First("Nome do comprador")
	iAprovSolic := table.First("DATA APROVAÇÃO SOLICITAÇÃO")
	iAprovPedido := table.First("DATA APROVAÇÃO PEDIDO")
	iEmissao := table.First("Dt.Emissão")
	iPedido := table.First("Número do pedido")
	iValorItem := table.First("Vlr.Total Item")
	iCodigoSolic := table.First("Código da solicitação")
	iCotacao := table.First("Código da cotação")
	iEnvioMapa := table.First("DATA DO ENVIO DA COTAÇÃO PARA APROVAÇÃO")
	iAprovMapa := table.First("DATA DA APROVAÇÃO - COTAÇÃO")

	var leadTimePorComprador contagem
	var leadTimeContagens contagem
	seenSolic := make(conjunto)

	var gastoPorComprador contagem
	pcsNoMes := make(conjunto)
	var itensPorComprador contagem
	var mapasPorComprador distintos
	var pcsAprovPorComprador distintos

	for _, row := range table.Rows {
		rawBuyer, _ := excel.AsNonEmptyString(excel.Cell(row, iComprador))
		if buyers.ShouldExclude(rawBuyer) {
			continue
		}
		comprador := buyers.NormalizeLabel(rawBuyer)

		aprovSolic, temAprovSolic := excel.AsDate(excel.Cell(row, iAprovSolic))
		aprovPedido, temAprovPedido := excel.AsDate(excel.Cell(row, iAprovPedido))
		emissao, temEmissao := excel.AsDate(excel.Cell(row, iEmissao))
		emissaoNoAno := temEmissao && excel.ReasonableYearWide(emissao) && emissao.UTC().Year() == year

		// Lead time de compras: o ano é o da aprovação da solicitação,
		// contado uma vez por solicitação.
		if temAprovSolic && temAprovPedido && excel.ReasonableYearWide(aprovSolic) && aprovSolic.UTC().Year() == year {
			if codSolic, ok := excel.AsNonEmptyString(excel.Cell(row, iCodigoSolic)); ok && !seenSolic.contem(codSolic) {
				seenSolic.adicionar(codSolic)
				if dias := diasEntre(aprovSolic, aprovPedido); leadTimeValido(dias) {
					leadTimePorComprador.somar(comprador, float64(dias))
					leadTimeContagens.somar(comprador, 1)
				}
			}
		}

		// Itens por comprador no ano (referência: emissão do pedido).
		if emissaoNoAno {
			itensPorComprador.somar(comprador, 1)
		}

		// Gasto por comprador no mês selecionado.
		if emissaoNoAno && int(emissao.UTC().Month()) == month {
			valor, _ := excel.AsNumber(excel.Cell(row, iValorItem))
			gastoPorComprador.somar(comprador, valor)
		}

		pedido, temPedido := excel.AsNonEmptyString(excel.Cell(row, iPedido))

		// PCs emitidos no mês (únicos).
		if temPedido && emissaoNoAno && int(emissao.UTC().Month()) == month {
			pcsNoMes.adicionar(pedido)
		}

		// Mapas em aprovação: cotação enviada no ano e ainda sem aprovação.
		envioMapa, temEnvio := excel.AsDate(excel.Cell(row, iEnvioMapa))
		_, temAprovMapa := excel.AsDate(excel.Cell(row, iAprovMapa))
		if temEnvio && excel.ReasonableYearWide(envioMapa) && envioMapa.UTC().Year() == year && !temAprovMapa {
			if codCot, ok := excel.AsNonEmptyString(excel.Cell(row, iCotacao)); ok {
				mapasPorComprador.adicionar(comprador, codCot)
			}
		}

		// PCs em aprovação: pedido emitido no ano e ainda sem aprovação.
		if temPedido && emissaoNoAno && !temAprovPedido {
			pcsAprovPorComprador.adicionar(comprador, pedido)
		}
	}

	leadTime := make([]CompradorLeadTime, 0, leadTimePorComprador.tamanho())
	for _, comprador := range leadTimePorComprador.ordem {
		total := leadTimePorComprador.valor(comprador)
		count := int(leadTimeContagens.valor(comprador))
		leadTime = append(leadTime, CompradorLeadTime{
			Comprador:         comprador,
			LeadTimeMedioDias: media(total, count),
		})
	}
	sort.SliceStable(leadTime, func(i, j int) bool {
		return leadTime[i].LeadTimeMedioDias > leadTime[j].LeadTimeMedioDias
	})
	if len(leadTime) > top {
		leadTime = leadTime[:top]
	}

	gasto := make([]CompradorValor, 0, top)
	for _, kv := range gastoPorComprador.ranking(top) {
		gasto = append(gasto, CompradorValor{Comprador: kv.Chave, Valor: excel.Round2(kv.Valor)})
	}

	itens := make([]CompradorItens, 0, top)
	for _, kv := range itensPorComprador.ranking(top) {
		itens = append(itens, CompradorItens{Comprador: kv.Chave, Itens: int(kv.Valor)})
	}

	mapas := make([]CompradorMapas, 0, top)
	for _, kv := range mapasPorComprador.ranking(top) {
		mapas = append(mapas, CompradorMapas{Comprador: kv.Chave, Mapas: int(kv.Valor)})
	}

	pcsAprov := make([]CompradorPCs, 0, top)
	for _, kv := range pcsAprovPorComprador.ranking(top) {
		pcsAprov = append(pcsAprov, CompradorPCs{Comprador: kv.Chave, PCs: int(kv.Valor)})
	}

	return &LeadTimeSummary{
		Year:                 year,
		Month:                month,
		LeadTimePorComprador: leadTime,
		GastoPorCompradorMes: gasto,
		PcsEmitidosMes:       len(pcsNoMes),
		ItensPorComprador:    itens,
		MapasEmAprovacao:     mapas,
		PcsEmAprovacao:       pcsAprov,
	}, nil
}
