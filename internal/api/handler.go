// Package api rotas REST do dashboard de suprimentos.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/config"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/planner"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/report"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/upload"
)

// Handler processador da API
type Handler struct {
	service  *report.Service
	resolver *datafiles.Resolver
	uploads  *upload.Manager
	planner  *planner.Store
	report   config.ReportConfig
}

// NewHandler cria o processador da API
func NewHandler(service *report.Service, resolver *datafiles.Resolver, plannerStore *planner.Store, reportCfg config.ReportConfig) *Handler {
	return &Handler{
		service:  service,
		resolver: resolver,
		uploads:  upload.NewManager(resolver),
		planner:  plannerStore,
		report:   reportCfg,
	}
}

// RegisterRoutes registra as rotas da API
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// Relatórios
	router.GET("/desempenho", h.GetDesempenho)
	router.GET("/leadtime", h.GetLeadTime)
	router.GET("/processos", h.GetProcessos)
	router.GET("/compradores", h.GetCompradores)

	// Solicitações
	router.GET("/solicitacoes/dashboard", h.GetDashboardCounts)
	router.GET("/itens-atrasados", h.GetItensAtrasados)
	router.GET("/itens-vencimento", h.GetItensVencimento)

	// Arquivos de dados
	router.GET("/dados/status", h.GetDadosStatus)
	router.POST("/dados/upload", h.PostDadosUpload)
	router.PUT("/dados/upload", h.PutDadosUploadChunk)

	// Planner
	router.GET("/planner/tasks", h.ListPlannerTasks)
	router.POST("/planner/tasks", h.CreatePlannerTask)
	router.PATCH("/planner/tasks/:id", h.UpdatePlannerTask)
	router.DELETE("/planner/tasks/:id", h.DeletePlannerTask)
	router.GET("/planner/plans", h.ListPlannerPlans)
	router.POST("/planner/plans", h.CreatePlannerPlan)
	router.PATCH("/planner/plans/:id", h.UpdatePlannerPlan)
	router.DELETE("/planner/plans/:id", h.DeletePlannerPlan)
	router.GET("/planner/assignees", h.ListPlannerAssignees)
	router.PUT("/planner/assignees", h.ReplacePlannerAssignees)
	router.DELETE("/planner/assignees", h.DeletePlannerAssignee)
}
