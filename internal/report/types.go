package report

import "github.com/LICASKJS/dashboardsuprimentos-2026/internal/filters"

// Estruturas de saída consumidas pela UI externa como dado puro.

// CompradorValor valor somado por comprador.
type CompradorValor struct {
	Comprador string  `json:"comprador"`
	Valor     float64 `json:"valor"`
}

// CompradorItens itens contados por comprador.
type CompradorItens struct {
	Comprador string `json:"comprador"`
	Itens     int    `json:"itens"`
}

// CompradorPCs pedidos distintos por comprador.
type CompradorPCs struct {
	Comprador string `json:"comprador"`
	PCs       int    `json:"pcs"`
}

// CompradorMapas cotações distintas por comprador.
type CompradorMapas struct {
	Comprador string `json:"comprador"`
	Mapas     int    `json:"mapas"`
}

// CompradorSolicitacoes solicitações distintas por comprador.
type CompradorSolicitacoes struct {
	Comprador    string `json:"comprador"`
	Solicitacoes int    `json:"solicitacoes"`
}

// CompradorLeadTime lead time médio por comprador, em dias.
type CompradorLeadTime struct {
	Comprador         string  `json:"comprador"`
	LeadTimeMedioDias float64 `json:"leadTimeMedioDias"`
}

// LeadTimesPorComprador as três médias de lead time e o score de ranking.
type LeadTimesPorComprador struct {
	Comprador     string  `json:"comprador"`
	LtComprasDias float64 `json:"ltComprasDias"`
	LtAprovPcDias float64 `json:"ltAprovPcDias"`
	LtMapaDias    float64 `json:"ltMapaDias"`
	TotalDias     float64 `json:"totalDias"`
}

// DesempenhoKpis indicadores consolidados da página de desempenho.
type DesempenhoKpis struct {
	ValorTotal            float64 `json:"valorTotal"`
	ItensAtendidos        int     `json:"itensAtendidos"`
	SolicitacoesAtendidas int     `json:"solicitacoesAtendidas"`
	Revisoes              int     `json:"revisoes"`
	LtComprasDias         float64 `json:"ltComprasDias"`
	LtMapaDias            float64 `json:"ltMapaDias"`
	LtAprovPcDias         float64 `json:"ltAprovPcDias"`
}

// DesempenhoPageData resposta completa da página de desempenho.
type DesempenhoPageData struct {
	Filters               filters.Filters         `json:"filters"`
	Options               filters.Options         `json:"options"`
	Kpis                  DesempenhoKpis          `json:"kpis"`
	LeadTimesPorComprador []LeadTimesPorComprador `json:"leadTimesPorComprador"`
	ValorPorComprador     []CompradorValor        `json:"valorPorComprador"`
	PcsPorComprador       []CompradorPCs          `json:"pcsPorComprador"`
	ItensPorComprador     []CompradorItens        `json:"itensPorComprador"`
}

// LeadTimeSummary resumo da página inicial.
type LeadTimeSummary struct {
	Year                 int                 `json:"year"`
	Month                int                 `json:"month"`
	LeadTimePorComprador []CompradorLeadTime `json:"leadTimePorComprador"`
	GastoPorCompradorMes []CompradorValor    `json:"gastoPorCompradorMes"`
	PcsEmitidosMes       int                 `json:"pcsEmitidosMes"`
	ItensPorComprador    []CompradorItens    `json:"itensPorComprador"`
	MapasEmAprovacao     []CompradorMapas    `json:"mapasEmAprovacao"`
	PcsEmAprovacao       []CompradorPCs      `json:"pcsEmAprovacao"`
}

// FornecedorValor valor somado por fornecedor.
type FornecedorValor struct {
	Fornecedor string  `json:"fornecedor"`
	Valor      float64 `json:"valor"`
}

// ItemValor valor somado por descrição de item.
type ItemValor struct {
	Item  string  `json:"item"`
	Valor float64 `json:"valor"`
}

// ItemQuantidade demandas contadas por descrição de item.
type ItemQuantidade struct {
	Item       string `json:"item"`
	Quantidade int    `json:"quantidade"`
}

// TipoQuantidade linhas contadas por tipo de frete.
type TipoQuantidade struct {
	Tipo       string `json:"tipo"`
	Quantidade int    `json:"quantidade"`
}

// CondicaoQuantidade linhas contadas por condição de pagamento.
type CondicaoQuantidade struct {
	Condicao   string `json:"condicao"`
	Quantidade int    `json:"quantidade"`
}

// ProcessosSummary aberturas por fornecedor, item, frete e pagamento.
type ProcessosSummary struct {
	Year                 int                  `json:"year"`
	Month                int                  `json:"month,omitempty"`
	PedidosRetroativos   int                  `json:"pedidosRetroativos"`
	TopFornecedoresValor []FornecedorValor    `json:"topFornecedoresValor"`
	TopItensValor        []ItemValor          `json:"topItensValor"`
	TipoFrete            []TipoQuantidade     `json:"tipoFrete"`
	DemandasPorItem      []ItemQuantidade     `json:"demandasPorItem"`
	CondicaoPagamento    []CondicaoQuantidade `json:"condicaoPagamento"`
}

// ProcessosPageData resposta completa da página de processos.
type ProcessosPageData struct {
	Filters filters.Filters  `json:"filters"`
	Options filters.Options  `json:"options"`
	Summary ProcessosSummary `json:"summary"`
}

// FilialItens itens contados por filial.
type FilialItens struct {
	Filial string `json:"filial"`
	Itens  int    `json:"itens"`
}

// MesItens volume de itens por mês calendário (1..12).
type MesItens struct {
	Mes   int `json:"mes"`
	Itens int `json:"itens"`
}

// MesSolicitacoes solicitações distintas por mês calendário (1..12).
type MesSolicitacoes struct {
	Mes          int `json:"mes"`
	Solicitacoes int `json:"solicitacoes"`
}

// CompradoresSummary volumes anuais por comprador, filial e mês.
type CompradoresSummary struct {
	Year                     int                     `json:"year"`
	Month                    int                     `json:"month,omitempty"`
	TotalItens               int                     `json:"totalItens"`
	TotalSolicitacoes        int                     `json:"totalSolicitacoes"`
	TotalCompradores         int                     `json:"totalCompradores"`
	TotalFiliais             int                     `json:"totalFiliais"`
	ItensPorFilial           []FilialItens           `json:"itensPorFilial"`
	ItensPorComprador        []CompradorItens        `json:"itensPorComprador"`
	SolicitacoesPorComprador []CompradorSolicitacoes `json:"solicitacoesPorComprador"`
	VolumeSolicitacoesPorMes []MesSolicitacoes       `json:"volumeSolicitacoesPorMes"`
	VolumeItensPorMes        []MesItens              `json:"volumeItensPorMes"`
}

// CompradoresPageData resposta completa da página de compradores.
type CompradoresPageData struct {
	Filters filters.Filters    `json:"filters"`
	Options filters.Options    `json:"options"`
	Summary CompradoresSummary `json:"summary"`
}

// SolicitacaoItem projeção tipada de uma linha da planilha de solicitações.
// Campos ausentes na origem ficam vazios; datas saem como ISO-8601.
type SolicitacaoItem struct {
	SituacaoItem         string  `json:"situacaoItem,omitempty"`
	StatusNecessidade    string  `json:"statusNecessidade,omitempty"`
	CodigoSolicitacao    string  `json:"codigoSolicitacao,omitempty"`
	SequencialItem       float64 `json:"sequencialItem,omitempty"`
	CodigoItem           string  `json:"codigoItem,omitempty"`
	DescricaoItem        string  `json:"descricaoItem,omitempty"`
	Especificacao        string  `json:"especificacao,omitempty"`
	Motivo               string  `json:"motivo,omitempty"`
	QuantidadeSolicitada float64 `json:"quantidadeSolicitada,omitempty"`
	CodigoCotacao        string  `json:"codigoCotacao,omitempty"`
	UsuarioAlteracao     string  `json:"usuarioAlteracao,omitempty"`
	DataAlteracao        string  `json:"dataAlteracao,omitempty"`
	DataEmissao          string  `json:"dataEmissao,omitempty"`
	DataInclusao         string  `json:"dataInclusao,omitempty"`
	DataNecessidade      string  `json:"dataNecessidade,omitempty"`
	Unidade              string  `json:"unidade,omitempty"`
	UsuarioSolicitante   string  `json:"usuarioSolicitante,omitempty"`
	NomeComprador        string  `json:"nomeComprador,omitempty"`
	CodigoContrato       string  `json:"codigoContrato,omitempty"`
	Filial               string  `json:"filial,omitempty"`
	NomeFilial           string  `json:"nomeFilial,omitempty"`
}

// SolicitacaoItemComSla item com a classificação de SLA em dias: atraso nos
// relatórios de atrasados, dias restantes nos de vencimento.
type SolicitacaoItemComSla struct {
	SolicitacaoItem
	Dias int `json:"dias"`
}

// ItensPageData resposta das páginas de itens atrasados/a vencer.
type ItensPageData struct {
	Filters filters.Filters         `json:"filters"`
	Options filters.Options         `json:"options"`
	Items   []SolicitacaoItemComSla `json:"items"`
}

// DashboardCounts contadores simples da página inicial (mês corrente).
type DashboardCounts struct {
	ItensEmAberto  int `json:"itensEmAberto"`
	ItensAtrasados int `json:"itensAtrasados"`
	ItensProximos  int `json:"itensProximos"`
}
