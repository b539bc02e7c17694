package report

import (
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/buyers"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/excel"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/filters"
)

// ProcessosSummary atalho da página de processos sem filtros de texto.
func (s *Service) ProcessosSummary(year, month, top int) (*ProcessosSummary, error) {
	if year == 0 {
		year = s.now().Year()
	}
	page, err := s.ProcessosPageData(filters.Filters{Year: year, Month: month}, top)
	if err != nil {
		return nil, err
	}
	return &page.Summary, nil
}

// ProcessosPageData quebra por fornecedor, item, frete e condição de
// pagamento das linhas com pedido emitido dentro do período.
func (s *Service) ProcessosPageData(f filters.Filters, top int) (*ProcessosPageData, error) {
	if top <= 0 {
		top = 10
	}

	table, err := s.cache.Load(datafiles.KindExportSuprimentos)
	if err != nil {
		return nil, err
	}

	iComprador := table.First("Nome do comprador")
	iFilialPedido := table.First("Nome Filial Pedido")
	iFilialSolic := table.First("Nome Filial da solicitação")
	iEmissao := table.First("Dt.Emissão")
	iFornecedor := table.First("Nome Fantasia")
	iValorItem := table.First("Vlr.Total Item")
	iTipoFrete := table.First("Tipo de Preço")
	iCondPagto := table.First("Cond.Pagto.")
	// O export repete "Descrição do Item" na solicitação e no pedido; aqui
	// vale a do pedido, que é a última ocorrência.
	iDescItem := table.Last("Descrição do Item")

	optCompradores := make(opcoes)
	optFiliais := make(opcoes)

	var fornecedores contagem
	var valorPorItem contagem
	var frete contagem
	var demanda contagem
	var pagamento contagem

	for _, row := range table.Rows {
		emissao, ok := excel.AsDate(excel.Cell(row, iEmissao))
		if !ok || !filters.MatchesPeriod(emissao, f) {
			continue
		}

		rawBuyer, _ := excel.AsNonEmptyString(excel.Cell(row, iComprador))
		if buyers.ShouldExclude(rawBuyer) {
			continue
		}
		comprador := buyers.NormalizeLabel(rawBuyer)

		filial, ok := excel.AsNonEmptyString(excel.Cell(row, iFilialPedido))
		if !ok {
			if filial, ok = excel.AsNonEmptyString(excel.Cell(row, iFilialSolic)); !ok {
				filial = semFilialLabel
			}
		}

		optCompradores.adicionar(comprador)
		optFiliais.adicionar(filial)

		if !filters.MatchesText(comprador, f.Comprador) || !filters.MatchesText(filial, f.Filial) {
			continue
		}

		valor, _ := excel.AsNumber(excel.Cell(row, iValorItem))

		fornecedor, ok := excel.AsNonEmptyString(excel.Cell(row, iFornecedor))
		if !ok {
			fornecedor = "Sem fornecedor"
		}
		fornecedores.somar(fornecedor, valor)

		item, ok := excel.AsNonEmptyString(excel.Cell(row, iDescItem))
		if !ok {
			item = "Sem item"
		}
		valorPorItem.somar(item, valor)
		demanda.somar(item, 1)

		tipo, ok := excel.AsNonEmptyString(excel.Cell(row, iTipoFrete))
		if !ok {
			tipo = "N/I"
		}
		frete.somar(tipo, 1)

		cond, ok := excel.AsNonEmptyString(excel.Cell(row, iCondPagto))
		if !ok {
			cond = "N/I"
		}
		pagamento.somar(cond, 1)
	}

	topFornecedores := make([]FornecedorValor, 0, top)
	for _, kv := range fornecedores.ranking(top) {
		topFornecedores = append(topFornecedores, FornecedorValor{Fornecedor: kv.Chave, Valor: excel.Round2(kv.Valor)})
	}

	topItens := make([]ItemValor, 0, top)
	for _, kv := range valorPorItem.ranking(top) {
		topItens = append(topItens, ItemValor{Item: kv.Chave, Valor: excel.Round2(kv.Valor)})
	}

	// Frete e condição de pagamento são categorias pequenas, vão inteiras.
	tipoFrete := make([]TipoQuantidade, 0, frete.tamanho())
	for _, kv := range frete.ranking(0) {
		tipoFrete = append(tipoFrete, TipoQuantidade{Tipo: kv.Chave, Quantidade: int(kv.Valor)})
	}

	demandas := make([]ItemQuantidade, 0, top)
	for _, kv := range demanda.ranking(top) {
		demandas = append(demandas, ItemQuantidade{Item: kv.Chave, Quantidade: int(kv.Valor)})
	}

	condicoes := make([]CondicaoQuantidade, 0, pagamento.tamanho())
	for _, kv := range pagamento.ranking(0) {
		condicoes = append(condicoes, CondicaoQuantidade{Condicao: kv.Chave, Quantidade: int(kv.Valor)})
	}

	year := f.Year
	if year == 0 {
		year = s.now().Year()
	}

	return &ProcessosPageData{
		Filters: f,
		Options: filters.Options{
			Compradores: optCompradores.ordenadas(),
			Filiais:     optFiliais.ordenadas(),
		},
		Summary: ProcessosSummary{
			Year:  year,
			Month: f.Month,
			// A planilha não distingue pedidos retroativos; o painel mostra
			// zero até a coluna existir no export.
			PedidosRetroativos:   0,
			TopFornecedoresValor: topFornecedores,
			TopItensValor:        topItens,
			TipoFrete:            tipoFrete,
			DemandasPorItem:      demandas,
			CondicaoPagamento:    condicoes,
		},
	}, nil
}
