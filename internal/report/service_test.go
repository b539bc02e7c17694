package report

import (
	"testing"
	"time"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/dataset"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/excel"
)

// Infra dos testes: serviço com relógio fixo e tabelas em memória no lugar
// das planilhas, injetadas pelo leitor do cache de datasets.

func horaFixa() time.Time {
	return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func data(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func tabela(header []string, rows ...[]any) *excel.Table {
	return &excel.Table{
		Header: header,
		Rows:   rows,
		Index:  excel.BuildHeaderIndex(header),
	}
}

func novoServicoTeste(t *testing.T, export, solicitacoes *excel.Table) *Service {
	t.Helper()
	if export == nil {
		export = excel.EmptyTable()
	}
	if solicitacoes == nil {
		solicitacoes = excel.EmptyTable()
	}

	resolver := datafiles.NewResolver(t.TempDir())
	read := func(path, sheetName string) (*excel.Table, error) {
		if sheetName == dataset.Sheets[datafiles.KindSolicitacoes] {
			return solicitacoes, nil
		}
		return export, nil
	}
	cache := dataset.NewCacheWithReader(resolver, read, func(string) int64 { return 1 })
	return NewServiceWithClock(cache, horaFixa)
}

// celula datas zero viram célula ausente, como numa planilha real.
func celula(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

var exportHeader = []string{
	"Nome do comprador",
	"Nome Filial Pedido",
	"Nome Filial da solicitação",
	"Dt.Emissão",
	"Número do pedido",
	"Código da solicitação",
	"Vlr.Total Item",
	"Situação do Item Pedido",
	"DATA ALTERAÇÃO PC",
	"DATA APROVAÇÃO SOLICITAÇÃO",
	"DATA APROVAÇÃO PEDIDO",
	"DATA DO ENVIO DA COTAÇÃO PARA APROVAÇÃO",
	"DATA DA APROVAÇÃO - COTAÇÃO",
	"Código da cotação",
	"Nome Fantasia",
	"Tipo de Preço",
	"Cond.Pagto.",
	"Descrição do Item",
}

type linhaExport struct {
	comprador    string
	filialPedido string
	filialSolic  string
	emissao      time.Time
	pedido       string
	codigoSolic  string
	valorItem    float64
	situItem     string
	alteracaoPc  time.Time
	aprovSolic   time.Time
	aprovPedido  time.Time
	envioMapa    time.Time
	aprovMapa    time.Time
	cotacao      string
	fornecedor   string
	tipoFrete    string
	condPagto    string
	descItem     string
}

func (l linhaExport) cells() []any {
	var valor any
	if l.valorItem != 0 {
		valor = l.valorItem
	}
	return []any{
		l.comprador,
		l.filialPedido,
		l.filialSolic,
		celula(l.emissao),
		l.pedido,
		l.codigoSolic,
		valor,
		l.situItem,
		celula(l.alteracaoPc),
		celula(l.aprovSolic),
		celula(l.aprovPedido),
		celula(l.envioMapa),
		celula(l.aprovMapa),
		l.cotacao,
		l.fornecedor,
		l.tipoFrete,
		l.condPagto,
		l.descItem,
	}
}

func tabelaExport(linhas ...linhaExport) *excel.Table {
	rows := make([][]any, 0, len(linhas))
	for _, l := range linhas {
		rows = append(rows, l.cells())
	}
	return tabela(exportHeader, rows...)
}

var solicitacaoHeader = []string{
	"Situação do Item",
	"Status da necessidade",
	"Código da solicitação",
	"Sequencial do item",
	"Código do item",
	"Descrição do item",
	"Especificação",
	"Motivo",
	"Quantidade solicitada",
	"Código da cotação",
	"Usuário de alteração",
	"Data de alteração",
	"Data de emissão",
	"Data de inclusão",
	"Data de necessidade",
	"Unidade",
	"Usuário solicitante",
	"Nome do comprador",
	"Código do contrato",
	"Filial",
	"Nome Filial",
}

type linhaSolicitacao struct {
	situacao    string
	status      string
	codigoSolic string
	descricao   string
	quantidade  float64
	cotacao     string
	emissao     time.Time
	necessidade time.Time
	comprador   string
	filial      string
	nomeFilial  string
}

func (l linhaSolicitacao) cells() []any {
	var qtd any
	if l.quantidade != 0 {
		qtd = l.quantidade
	}
	return []any{
		l.situacao,
		l.status,
		l.codigoSolic,
		nil,
		nil,
		l.descricao,
		nil,
		nil,
		qtd,
		l.cotacao,
		nil,
		nil,
		celula(l.emissao),
		nil,
		celula(l.necessidade),
		nil,
		nil,
		l.comprador,
		nil,
		l.filial,
		l.nomeFilial,
	}
}

func tabelaSolicitacoes(linhas ...linhaSolicitacao) *excel.Table {
	rows := make([][]any, 0, len(linhas))
	for _, l := range linhas {
		rows = append(rows, l.cells())
	}
	return tabela(solicitacaoHeader, rows...)
}

// TestDiasEntre granularidade de dia calendário, com horários ignorados.
func TestDiasEntre(t *testing.T) {
	inicio := time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)
	fim := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
	if got := diasEntre(inicio, fim); got != 3 {
		t.Errorf("diasEntre: want=3 got=%d", got)
	}
	if got := diasEntre(fim, inicio); got != -3 {
		t.Errorf("diasEntre invertido: want=-3 got=%d", got)
	}
	if got := diasEntre(fim, fim); got != 0 {
		t.Errorf("diasEntre mesmo dia: want=0 got=%d", got)
	}
}

// TestLeadTimeValido janela de 0 a 3650 dias; fora disso é ruído de dado.
func TestLeadTimeValido(t *testing.T) {
	if !leadTimeValido(0) || !leadTimeValido(3650) {
		t.Errorf("bordas da janela deveriam ser válidas")
	}
	if leadTimeValido(-1) || leadTimeValido(3651) {
		t.Errorf("fora da janela deveria ser inválido")
	}
}
