package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/config"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/dataset"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/excel"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/planner"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/report"
)

func novoRouterTeste(t *testing.T) (*gin.Engine, *datafiles.Resolver) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resolver := datafiles.NewResolver(t.TempDir())
	read := func(path, sheetName string) (*excel.Table, error) {
		return excel.EmptyTable(), nil
	}
	cache := dataset.NewCacheWithReader(resolver, read, func(string) int64 { return 1 })
	service := report.NewService(cache)
	store := planner.NewStore(resolver.ResolvePath("dados"))

	handler := NewHandler(service, resolver, store, config.ReportConfig{TopCompradores: 30, JanelaDias: 7})
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router, resolver
}

func executa(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodifica(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decodificar resposta: %v\n%s", err, w.Body.String())
	}
}

// TestGetDadosStatus sem uploads as duas planilhas reportam o caminho padrão
// com proveniência default e exists falso.
func TestGetDadosStatus(t *testing.T) {
	router, _ := novoRouterTeste(t)

	w := executa(t, router, http.MethodGet, "/api/dados/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", w.Code)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("cache-control: got=%q", got)
	}

	var resp dadosStatusResponse
	decodifica(t, w, &resp)
	if resp.Suprimentos.Exists || resp.Suprimentos.Source != "default" {
		t.Errorf("suprimentos: got=%+v", resp.Suprimentos)
	}
	if resp.Suprimentos.Path != datafiles.DefaultFiles[datafiles.KindExportSuprimentos] {
		t.Errorf("caminho padrão: got=%q", resp.Suprimentos.Path)
	}
	if resp.Solicitacoes.Source != "default" {
		t.Errorf("solicitações: got=%+v", resp.Solicitacoes)
	}
}

// TestGetDashboardCounts planilha vazia devolve contadores zerados.
func TestGetDashboardCounts(t *testing.T) {
	router, _ := novoRouterTeste(t)

	w := executa(t, router, http.MethodGet, "/api/solicitacoes/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", w.Code)
	}

	var counts report.DashboardCounts
	decodifica(t, w, &counts)
	if counts.ItensEmAberto != 0 || counts.ItensAtrasados != 0 || counts.ItensProximos != 0 {
		t.Errorf("contadores: got=%+v", counts)
	}
}

// TestGetDesempenhoVazio a página responde 200 com agregados vazios mesmo
// sem nenhuma planilha no disco.
func TestGetDesempenhoVazio(t *testing.T) {
	router, _ := novoRouterTeste(t)

	w := executa(t, router, http.MethodGet, "/api/desempenho?year=2026", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", w.Code)
	}

	var page report.DesempenhoPageData
	decodifica(t, w, &page)
	if page.Filters.Year != 2026 {
		t.Errorf("ano do filtro: got=%+v", page.Filters)
	}
	if page.Kpis.ValorTotal != 0 || len(page.ValorPorComprador) != 0 {
		t.Errorf("agregados vazios: got=%+v", page.Kpis)
	}
}

// TestPostDadosUploadContentTypeInvalido content-type desconhecido é 415.
func TestPostDadosUploadContentTypeInvalido(t *testing.T) {
	router, _ := novoRouterTeste(t)

	req := httptest.NewRequest(http.MethodPost, "/api/dados/upload", strings.NewReader("dados"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status: want=415 got=%d", w.Code)
	}
}

// TestPostDadosUploadCompleteDesconhecido concluir upload inexistente é 404.
func TestPostDadosUploadCompleteDesconhecido(t *testing.T) {
	router, _ := novoRouterTeste(t)

	w := executa(t, router, http.MethodPost, "/api/dados/upload", gin.H{
		"op":       "complete",
		"kind":     "solicitacoes",
		"uploadId": "abc123-def456",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: want=404 got=%d body=%s", w.Code, w.Body.String())
	}
}

// TestPostDadosUploadKindInvalido dataset desconhecido é 400.
func TestPostDadosUploadKindInvalido(t *testing.T) {
	router, _ := novoRouterTeste(t)

	w := executa(t, router, http.MethodPost, "/api/dados/upload", gin.H{
		"op":       "abort",
		"kind":     "outro-dataset",
		"uploadId": "abc123-def456",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: want=400 got=%d", w.Code)
	}
}

// TestUploadChunkEConclusao o fluxo em partes completo via API: PUT das
// partes, POST complete e o status refletindo o upload ativo.
func TestUploadChunkEConclusao(t *testing.T) {
	router, _ := novoRouterTeste(t)

	conteudo := "0123456789ABCDE" // 15 bytes
	envia := func(index int, corpo string) *httptest.ResponseRecorder {
		url := "/api/dados/upload?kind=solicitacoes&uploadId=abc123-def456&fileName=solicitacoes.xlsx" +
			"&totalSize=15&chunkSize=10&chunkIndex=" + strconv.Itoa(index) + "&totalChunks=2"
		req := httptest.NewRequest(http.MethodPut, url, strings.NewReader(corpo))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := envia(0, conteudo[:10]); w.Code != http.StatusOK {
		t.Fatalf("parte 0: want=200 got=%d body=%s", w.Code, w.Body.String())
	}
	if w := envia(1, conteudo[10:]); w.Code != http.StatusOK {
		t.Fatalf("parte 1: want=200 got=%d body=%s", w.Code, w.Body.String())
	}

	w := executa(t, router, http.MethodPost, "/api/dados/upload", gin.H{
		"op":       "complete",
		"kind":     "solicitacoes",
		"uploadId": "abc123-def456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("complete: want=200 got=%d body=%s", w.Code, w.Body.String())
	}

	w = executa(t, router, http.MethodGet, "/api/dados/status", nil)
	var resp dadosStatusResponse
	decodifica(t, w, &resp)
	if !resp.Solicitacoes.Exists || resp.Solicitacoes.Source != "upload" {
		t.Errorf("status após upload: got=%+v", resp.Solicitacoes)
	}
	if resp.Solicitacoes.SizeBytes != 15 {
		t.Errorf("tamanho: want=15 got=%d", resp.Solicitacoes.SizeBytes)
	}
}
