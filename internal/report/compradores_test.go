package report

import (
	"testing"
	"time"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/filters"
)

// TestBuyerYearSummary panorama anual: itens e solicitações únicas por
// comprador, por filial e a série dos doze meses.
func TestBuyerYearSummary(t *testing.T) {
	linhas := []linhaSolicitacao{
		{codigoSolic: "SC-1", emissao: data(2026, time.January, 10), comprador: "MARIA SILVA", nomeFilial: "ENGEMAN FORTALEZA - CE"},
		// Mesma solicitação em outro item: itens 2, solicitações 1.
		{codigoSolic: "SC-1", emissao: data(2026, time.January, 12), comprador: "MARIA SILVA", nomeFilial: "ENGEMAN FORTALEZA - CE"},
		{codigoSolic: "SC-2", emissao: data(2026, time.February, 3), comprador: "JOSE LIMA", nomeFilial: "PARACURU"},
		// Unidade excluída: a filial não conta, o comprador sim.
		{codigoSolic: "SC-3", emissao: data(2026, time.February, 4), comprador: "JOSE LIMA", nomeFilial: "MONTES CLAROS"},
		// Outro ano.
		{codigoSolic: "SC-4", emissao: data(2025, time.June, 1), comprador: "MARIA SILVA"},
		// Operador excluído.
		{codigoSolic: "SC-5", emissao: data(2026, time.January, 5), comprador: "THIAGO SILVA"},
	}

	s := novoServicoTeste(t, nil, tabelaSolicitacoes(linhas...))
	summary, err := s.BuyerYearSummary(2026, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	if summary.TotalItens != 4 {
		t.Errorf("total de itens: want=4 got=%d", summary.TotalItens)
	}
	if summary.TotalSolicitacoes != 3 {
		t.Errorf("total de solicitações: want=3 got=%d", summary.TotalSolicitacoes)
	}
	if summary.TotalCompradores != 2 {
		t.Errorf("total de compradores: want=2 got=%d", summary.TotalCompradores)
	}
	if summary.TotalFiliais != 2 {
		t.Errorf("total de filiais: want=2 got=%d", summary.TotalFiliais)
	}

	if len(summary.ItensPorComprador) != 2 || summary.ItensPorComprador[0].Comprador != "MARIA SILVA" || summary.ItensPorComprador[0].Itens != 2 {
		t.Errorf("itens por comprador: got=%+v", summary.ItensPorComprador)
	}
	if len(summary.SolicitacoesPorComprador) != 2 || summary.SolicitacoesPorComprador[0].Solicitacoes != 2 {
		t.Errorf("solicitações por comprador: got=%+v", summary.SolicitacoesPorComprador)
	}

	if len(summary.VolumeItensPorMes) != 12 {
		t.Fatalf("série mensal: want=12 got=%d", len(summary.VolumeItensPorMes))
	}
	if summary.VolumeItensPorMes[0].Itens != 2 || summary.VolumeItensPorMes[1].Itens != 2 {
		t.Errorf("volume de itens por mês: got=%+v", summary.VolumeItensPorMes[:2])
	}
	if summary.VolumeSolicitacoesPorMes[0].Solicitacoes != 1 || summary.VolumeSolicitacoesPorMes[1].Solicitacoes != 2 {
		t.Errorf("volume de solicitações por mês: got=%+v", summary.VolumeSolicitacoesPorMes[:2])
	}
}

// TestCompradoresPageData demanda em aberto do mês: itens baixados ou já em
// pedido ficam de fora, e a série anual ignora o recorte de mês.
func TestCompradoresPageData(t *testing.T) {
	linhas := []linhaSolicitacao{
		{status: "Em cotação", codigoSolic: "SC-1", emissao: data(2026, time.March, 2), comprador: "MARIA SILVA", nomeFilial: "ENGEMAN FORTALEZA - CE"},
		{status: "A cotar", codigoSolic: "SC-2", emissao: data(2026, time.March, 3), comprador: "MARIA SILVA", nomeFilial: "ENGEMAN FORTALEZA - CE"},
		// Já virou pedido: sai da demanda em aberto.
		{status: "Pedido", codigoSolic: "SC-3", emissao: data(2026, time.March, 4), comprador: "MARIA SILVA"},
		// Baixado idem.
		{situacao: "Baixado", codigoSolic: "SC-4", emissao: data(2026, time.March, 5), comprador: "MARIA SILVA"},
		// Janeiro conta na série anual, não no mês selecionado.
		{status: "A cotar", codigoSolic: "SC-5", emissao: data(2026, time.January, 8), comprador: "JOSE LIMA", nomeFilial: "PARACURU"},
	}

	s := novoServicoTeste(t, nil, tabelaSolicitacoes(linhas...))
	page, err := s.CompradoresPageData(filters.Filters{Year: 2026, Month: 3}, 0)
	if err != nil {
		t.Fatal(err)
	}

	if page.Summary.Year != 2026 || page.Summary.Month != 3 {
		t.Errorf("período: got=%d/%d", page.Summary.Year, page.Summary.Month)
	}

	if page.Summary.TotalItens != 2 {
		t.Errorf("itens em aberto no mês: want=2 got=%d", page.Summary.TotalItens)
	}
	if page.Summary.TotalCompradores != 1 {
		t.Errorf("compradores no mês: want=1 got=%d", page.Summary.TotalCompradores)
	}
	if len(page.Summary.ItensPorComprador) != 1 || page.Summary.ItensPorComprador[0].Itens != 2 {
		t.Errorf("itens por comprador: got=%+v", page.Summary.ItensPorComprador)
	}

	// Itens em fase de cotação contam por filial.
	if len(page.Summary.ItensPorFilial) != 1 || page.Summary.ItensPorFilial[0].Filial != "FILIAL FORTALEZA" || page.Summary.ItensPorFilial[0].Itens != 2 {
		t.Errorf("itens por filial: got=%+v", page.Summary.ItensPorFilial)
	}

	// A série anual soma março e janeiro, independente do mês selecionado.
	if page.Summary.VolumeItensPorMes[0].Itens != 1 {
		t.Errorf("série anual janeiro: got=%+v", page.Summary.VolumeItensPorMes[0])
	}
	if page.Summary.VolumeItensPorMes[2].Itens != 4 {
		t.Errorf("série anual março: got=%+v", page.Summary.VolumeItensPorMes[2])
	}
}

// TestCompradoresPageDataPadroes sem período na consulta valem o ano e o mês
// do relógio do serviço.
func TestCompradoresPageDataPadroes(t *testing.T) {
	s := novoServicoTeste(t, nil, nil)
	page, err := s.CompradoresPageData(filters.Filters{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if page.Filters.Year != 2026 || page.Filters.Month != 3 {
		t.Errorf("padrões do relógio: got=%+v", page.Filters)
	}
}
