package report

import (
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/buyers"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/excel"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/filters"
)

const topFiliais = 12

// BuyerYearSummary panorama anual por comprador sobre a planilha de
// solicitações, sem filtros de texto: itens e solicitações por comprador,
// por filial e a série mensal.
func (s *Service) BuyerYearSummary(year, month, top int) (*CompradoresSummary, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if top <= 0 {
		top = 30
	}

	table, err := s.cache.Load(datafiles.KindSolicitacoes)
	if err != nil {
		return nil, err
	}
	cols := newSolicitacaoCols(table)

	var itensPorComprador contagem
	var solicPorComprador distintos
	var itensPorFilial contagem
	itensPorMes := make(map[int]int)
	solicPorMes := make(map[int]conjunto)
	solicAno := make(conjunto)

	for _, row := range table.Rows {
		emissao, ok := excel.AsDate(excel.Cell(row, cols.dataEmissao))
		if !ok || !excel.ReasonableYear(emissao) {
			continue
		}
		u := emissao.UTC()
		if u.Year() != year {
			continue
		}
		if month >= 1 && month <= 12 && int(u.Month()) != month {
			continue
		}

		rawBuyer, _ := excel.AsNonEmptyString(excel.Cell(row, cols.comprador))
		if buyers.ShouldExclude(rawBuyer) {
			continue
		}
		comprador := buyers.NormalizeLabel(rawBuyer)
		itensPorComprador.somar(comprador, 1)

		codSol, temSol := excel.AsNonEmptyString(excel.Cell(row, cols.codigoSolic))
		if temSol {
			solicPorComprador.adicionar(comprador, codSol)
			solicAno.adicionar(codSol)
		}

		rawFilial := rawFilialDaLinha(row, cols)
		if filial, ok := filialDaLinha(rawFilial); ok {
			itensPorFilial.somar(filial, 1)
		}

		m := int(u.Month())
		itensPorMes[m]++
		if temSol {
			set, ok := solicPorMes[m]
			if !ok {
				set = make(conjunto)
				solicPorMes[m] = set
			}
			set.adicionar(codSol)
		}
	}

	itens := make([]CompradorItens, 0, top)
	for _, kv := range itensPorComprador.ranking(top) {
		itens = append(itens, CompradorItens{Comprador: kv.Chave, Itens: int(kv.Valor)})
	}

	solicitacoes := make([]CompradorSolicitacoes, 0, top)
	for _, kv := range solicPorComprador.ranking(top) {
		solicitacoes = append(solicitacoes, CompradorSolicitacoes{Comprador: kv.Chave, Solicitacoes: int(kv.Valor)})
	}

	filiais := make([]FilialItens, 0, topFiliais)
	for _, kv := range itensPorFilial.ranking(topFiliais) {
		filiais = append(filiais, FilialItens{Filial: kv.Chave, Itens: int(kv.Valor)})
	}

	volumeItens := make([]MesItens, 0, 12)
	volumeSolic := make([]MesSolicitacoes, 0, 12)
	totalItens := 0
	for m := 1; m <= 12; m++ {
		volumeItens = append(volumeItens, MesItens{Mes: m, Itens: itensPorMes[m]})
		volumeSolic = append(volumeSolic, MesSolicitacoes{Mes: m, Solicitacoes: len(solicPorMes[m])})
		totalItens += itensPorMes[m]
	}

	return &CompradoresSummary{
		Year:                     year,
		Month:                    month,
		TotalItens:               totalItens,
		TotalSolicitacoes:        len(solicAno),
		TotalCompradores:         itensPorComprador.tamanho(),
		TotalFiliais:             itensPorFilial.tamanho(),
		ItensPorFilial:           filiais,
		ItensPorComprador:        itens,
		SolicitacoesPorComprador: solicitacoes,
		VolumeSolicitacoesPorMes: volumeSolic,
		VolumeItensPorMes:        volumeItens,
	}, nil
}

// CompradoresPageData página de compradores: demanda em aberto do período
// (itens ainda não baixados nem convertidos em pedido) por comprador e
// filial, mais a série anual de volume.
func (s *Service) CompradoresPageData(f filters.Filters, top int) (*CompradoresPageData, error) {
	if top <= 0 {
		top = 30
	}

	table, err := s.cache.Load(datafiles.KindSolicitacoes)
	if err != nil {
		return nil, err
	}
	cols := newSolicitacaoCols(table)

	now := s.now()
	periodFilters := f
	if periodFilters.Year == 0 {
		periodFilters.Year = now.Year()
	}
	if periodFilters.Month == 0 {
		periodFilters.Month = int(now.Month())
	}
	yearOnly := filters.Filters{Year: periodFilters.Year}

	optCompradores := make(opcoes)
	optFiliais := make(opcoes)

	var itensPorComprador contagem
	var solicPorComprador distintos
	filiaisTotal := make(conjunto)
	var itensPorFilial contagem
	itensPorMes := make(map[int]int)
	solicPorMes := make(map[int]conjunto)
	solicTotal := make(conjunto)

	for _, row := range table.Rows {
		emissao, ok := excel.AsDate(excel.Cell(row, cols.dataEmissao))
		if !ok || !excel.ReasonableYear(emissao) {
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

		codSol, temSol := excel.AsNonEmptyString(excel.Cell(row, cols.codigoSolic))
		status, _ := excel.AsNonEmptyString(excel.Cell(row, cols.statusNecessidade))
		situacao, _ := excel.AsNonEmptyString(excel.Cell(row, cols.situacaoItem))

		// A série anual de volume considera o ano todo, filtrado só por
		// comprador/filial.
		if filters.MatchesText(comprador, f.Comprador) && matchesFilial(filial, rawFilial, f.Filial) {
			if filters.MatchesPeriod(emissao, yearOnly) {
				m := int(emissao.UTC().Month())
				itensPorMes[m]++
				if temSol {
					set, ok := solicPorMes[m]
					if !ok {
						set = make(conjunto)
						solicPorMes[m] = set
					}
					set.adicionar(codSol)
				}
			}
		}

		if !filters.MatchesPeriod(emissao, periodFilters) {
			continue
		}
		if !isOpenItem(situacao) {
			continue
		}
		if lower(status) == "pedido" {
			continue
		}

		optCompradores.adicionar(comprador)
		optFiliais.adicionar(filial)

		if !filters.MatchesText(comprador, f.Comprador) || !matchesFilial(filial, rawFilial, f.Filial) {
			continue
		}

		itensPorComprador.somar(comprador, 1)
		filiaisTotal.adicionar(filial)
		if comprador == buyers.BlankLabel || isCotacaoStatus(status) {
			itensPorFilial.somar(filial, 1)
		}

		if temSol {
			solicTotal.adicionar(codSol)
			solicPorComprador.adicionar(comprador, codSol)
		}
	}

	itens := make([]CompradorItens, 0, top)
	totalItens := 0
	for _, chave := range itensPorComprador.ordem {
		totalItens += int(itensPorComprador.valor(chave))
	}
	for _, kv := range itensPorComprador.ranking(top) {
		itens = append(itens, CompradorItens{Comprador: kv.Chave, Itens: int(kv.Valor)})
	}

	solicitacoes := make([]CompradorSolicitacoes, 0, top)
	for _, kv := range solicPorComprador.ranking(top) {
		solicitacoes = append(solicitacoes, CompradorSolicitacoes{Comprador: kv.Chave, Solicitacoes: int(kv.Valor)})
	}

	filiais := make([]FilialItens, 0, topFiliais)
	for _, kv := range itensPorFilial.ranking(topFiliais) {
		filiais = append(filiais, FilialItens{Filial: kv.Chave, Itens: int(kv.Valor)})
	}

	volumeItens := make([]MesItens, 0, 12)
	volumeSolic := make([]MesSolicitacoes, 0, 12)
	for m := 1; m <= 12; m++ {
		volumeItens = append(volumeItens, MesItens{Mes: m, Itens: itensPorMes[m]})
		volumeSolic = append(volumeSolic, MesSolicitacoes{Mes: m, Solicitacoes: len(solicPorMes[m])})
	}

	return &CompradoresPageData{
		Filters: periodFilters,
		Options: filters.Options{
			Compradores: optCompradores.ordenadas(),
			Filiais:     optFiliais.ordenadas(),
		},
		Summary: CompradoresSummary{
			Year:                     periodFilters.Year,
			Month:                    periodFilters.Month,
			TotalItens:               totalItens,
			TotalSolicitacoes:        len(solicTotal),
			TotalCompradores:         itensPorComprador.tamanho(),
			TotalFiliais:             len(filiaisTotal),
			ItensPorFilial:           filiais,
			ItensPorComprador:        itens,
			SolicitacoesPorComprador: solicitacoes,
			VolumeSolicitacoesPorMes: volumeSolic,
			VolumeItensPorMes:        volumeItens,
		},
	}, nil
}
