package report

import (
	"testing"
	"time"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/filters"
)

// TestProcessosPageData quebras por fornecedor, item, frete e condição de
// pagamento das linhas emitidas no período, com os rótulos de ausência.
func TestProcessosPageData(t *testing.T) {
	linhas := []linhaExport{
		{
			comprador:    "MARIA SILVA",
			filialPedido: "FILIAL SPCA",
			emissao:      data(2026, time.February, 5),
			valorItem:    100,
			fornecedor:   "ACME LTDA",
			tipoFrete:    "CIF",
			condPagto:    "28 DD",
			descItem:     "PARAFUSO SEXTAVADO",
		},
		{
			comprador:    "MARIA SILVA",
			filialPedido: "FILIAL SPCA",
			emissao:      data(2026, time.February, 6),
			valorItem:    300,
			fornecedor:   "ACME LTDA",
			tipoFrete:    "FOB",
			condPagto:    "28 DD",
			descItem:     "PARAFUSO SEXTAVADO",
		},
		// Sem fornecedor, frete ou condição: caem nos rótulos padrão.
		{
			comprador:    "JOSE LIMA",
			filialPedido: "FILIAL RNCE",
			emissao:      data(2026, time.March, 1),
			valorItem:    50,
			descItem:     "LUVA DE PROTECAO",
		},
		// Fora do ano.
		{
			comprador:  "MARIA SILVA",
			emissao:    data(2025, time.December, 1),
			valorItem:  999,
			fornecedor: "OUTRA SA",
		},
		// Operador excluído.
		{
			comprador:  "THIAGO SILVA",
			emissao:    data(2026, time.February, 5),
			valorItem:  999,
			fornecedor: "ACME LTDA",
		},
	}

	s := novoServicoTeste(t, tabelaExport(linhas...), nil)
	page, err := s.ProcessosPageData(filters.Filters{Year: 2026}, 10)
	if err != nil {
		t.Fatal(err)
	}

	if page.Summary.Year != 2026 {
		t.Errorf("ano: want=2026 got=%d", page.Summary.Year)
	}
	if page.Summary.PedidosRetroativos != 0 {
		t.Errorf("pedidos retroativos: want=0 got=%d", page.Summary.PedidosRetroativos)
	}

	if len(page.Summary.TopFornecedoresValor) != 2 {
		t.Fatalf("fornecedores: got=%+v", page.Summary.TopFornecedoresValor)
	}
	if f := page.Summary.TopFornecedoresValor[0]; f.Fornecedor != "ACME LTDA" || f.Valor != 400 {
		t.Errorf("fornecedor[0]: got=%+v", f)
	}
	if f := page.Summary.TopFornecedoresValor[1]; f.Fornecedor != "Sem fornecedor" || f.Valor != 50 {
		t.Errorf("fornecedor[1]: got=%+v", f)
	}

	if len(page.Summary.TopItensValor) != 2 || page.Summary.TopItensValor[0].Item != "PARAFUSO SEXTAVADO" || page.Summary.TopItensValor[0].Valor != 400 {
		t.Errorf("itens por valor: got=%+v", page.Summary.TopItensValor)
	}

	if len(page.Summary.DemandasPorItem) != 2 || page.Summary.DemandasPorItem[0].Quantidade != 2 {
		t.Errorf("demandas: got=%+v", page.Summary.DemandasPorItem)
	}

	// Frete e condição vão inteiros, sem corte de top.
	freteQtd := map[string]int{}
	for _, f := range page.Summary.TipoFrete {
		freteQtd[f.Tipo] = f.Quantidade
	}
	if freteQtd["CIF"] != 1 || freteQtd["FOB"] != 1 || freteQtd["N/I"] != 1 {
		t.Errorf("tipo de frete: got=%+v", page.Summary.TipoFrete)
	}

	condQtd := map[string]int{}
	for _, c := range page.Summary.CondicaoPagamento {
		condQtd[c.Condicao] = c.Quantidade
	}
	if condQtd["28 DD"] != 2 || condQtd["N/I"] != 1 {
		t.Errorf("condição de pagamento: got=%+v", page.Summary.CondicaoPagamento)
	}

	if len(page.Options.Compradores) != 2 {
		t.Errorf("opções de comprador: got=%v", page.Options.Compradores)
	}
}

// TestProcessosSummary o atalho sem filtros assume o ano do relógio.
func TestProcessosSummary(t *testing.T) {
	linha := linhaExport{
		comprador:  "MARIA SILVA",
		emissao:    data(2026, time.February, 5),
		valorItem:  100,
		fornecedor: "ACME LTDA",
	}
	s := novoServicoTeste(t, tabelaExport(linha), nil)

	summary, err := s.ProcessosSummary(0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Year != 2026 {
		t.Errorf("ano padrão: want=2026 got=%d", summary.Year)
	}
	if len(summary.TopFornecedoresValor) != 1 || summary.TopFornecedoresValor[0].Valor != 100 {
		t.Errorf("fornecedores: got=%+v", summary.TopFornecedoresValor)
	}
}
