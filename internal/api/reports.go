package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/filters"
)

func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}

func parseFilters(c *gin.Context, granularity filters.Granularity) filters.Filters {
	query := map[string]string{
		"date":      c.Query("date"),
		"month":     c.Query("month"),
		"year":      c.Query("year"),
		"comprador": c.Query("comprador"),
		"filial":    c.Query("filial"),
	}
	return filters.Parse(query, time.Now(), granularity)
}

// GetDesempenho KPIs de desempenho e lead times por comprador
// GET /api/desempenho
func (h *Handler) GetDesempenho(c *gin.Context) {
	f := parseFilters(c, filters.GranularityYear)
	page, err := h.service.DesempenhoPageData(f, queryInt(c, "top"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetLeadTime resumo de lead time e filas de aprovação da home
// GET /api/leadtime
func (h *Handler) GetLeadTime(c *gin.Context) {
	summary, err := h.service.LeadTimeSummary(queryInt(c, "year"), queryInt(c, "month"), queryInt(c, "top"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetProcessos quebra por fornecedor, item, frete e condição de pagamento
// GET /api/processos
func (h *Handler) GetProcessos(c *gin.Context) {
	f := parseFilters(c, filters.GranularityYear)
	page, err := h.service.ProcessosPageData(f, queryInt(c, "top"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetCompradores demanda em aberto por comprador e filial
// GET /api/compradores
func (h *Handler) GetCompradores(c *gin.Context) {
	f := parseFilters(c, filters.GranularityNone)
	top := queryInt(c, "top")
	if top <= 0 {
		top = h.report.TopCompradores
	}
	page, err := h.service.CompradoresPageData(f, top)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetDashboardCounts contadores de itens do mês corrente
// GET /api/solicitacoes/dashboard
func (h *Handler) GetDashboardCounts(c *gin.Context) {
	window := queryInt(c, "windowDays")
	if window <= 0 {
		window = h.report.JanelaDias
	}
	counts, err := h.service.DashboardCounts(window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, counts)
}

// GetItensAtrasados itens abertos em cotação com necessidade vencida
// GET /api/itens-atrasados
func (h *Handler) GetItensAtrasados(c *gin.Context) {
	f := parseFilters(c, filters.GranularityNone)
	page, err := h.service.DelayedItemsPage(f, queryInt(c, "limit"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetItensVencimento itens abertos em cotação que vencem na janela
// GET /api/itens-vencimento
func (h *Handler) GetItensVencimento(c *gin.Context) {
	f := parseFilters(c, filters.GranularityNone)
	window := queryInt(c, "windowDays")
	if window <= 0 {
		window = h.report.JanelaDias
	}
	page, err := h.service.ExpiringItemsPage(f, window, queryInt(c, "limit"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}
