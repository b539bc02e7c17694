package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/upload"
)

type dadosFileStatus struct {
	Exists    bool   `json:"exists"`
	MtimeMs   int64  `json:"mtimeMs,omitempty"`
	SizeBytes int64  `json:"sizeBytes,omitempty"`
	Path      string `json:"path"`
	Source    string `json:"source"`
}

type dadosStatusResponse struct {
	Suprimentos  dadosFileStatus `json:"suprimentos"`
	Solicitacoes dadosFileStatus `json:"solicitacoes"`
}

func toFileStatus(active datafiles.ActiveFile) dadosFileStatus {
	status := dadosFileStatus{
		Exists: active.Exists,
		Path:   active.RelativePath,
		Source: active.Source,
	}
	if active.Exists {
		status.MtimeMs = active.MtimeMs
		status.SizeBytes = active.SizeBytes
	}
	return status
}

// GetDadosStatus situação das duas planilhas ativas
// GET /api/dados/status
func (h *Handler) GetDadosStatus(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dadosStatusResponse{
		Suprimentos:  toFileStatus(h.resolver.ActiveDataFile(datafiles.KindExportSuprimentos)),
		Solicitacoes: toFileStatus(h.resolver.ActiveDataFile(datafiles.KindSolicitacoes)),
	})
}

type chunkedUploadRequest struct {
	Op       string `json:"op"`
	Kind     string `json:"kind"`
	UploadID string `json:"uploadId"`
}

// PostDadosUpload upload direto (multipart) ou conclusão/cancelamento de um
// upload em partes (JSON)
// POST /api/dados/upload
func (h *Handler) PostDadosUpload(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	contentType := strings.ToLower(c.ContentType())

	switch {
	case strings.Contains(contentType, "application/json"):
		h.handleChunkedOp(c)
	case strings.Contains(contentType, "multipart/form-data"):
		h.handleMultipartUpload(c)
	default:
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"ok": false, "error": "Content-Type não suportado."})
	}
}

func (h *Handler) handleChunkedOp(c *gin.Context) {
	var req chunkedUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Payload inválido."})
		return
	}
	kind, ok := datafiles.ParseKind(req.Kind)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Tipo de upload inválido."})
		return
	}
	if !upload.ValidUploadID(req.UploadID) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "UploadId inválido."})
		return
	}

	switch req.Op {
	case "abort":
		h.uploads.Abort(kind, req.UploadID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case "complete":
		saved, err := h.uploads.Complete(kind, req.UploadID)
		if err != nil {
			status := http.StatusBadRequest
			if err == upload.ErrNotFound {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "kind": saved.Kind, "savedAs": saved.SavedAs, "sizeBytes": saved.SizeBytes})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Operação inválida."})
	}
}

func (h *Handler) handleMultipartUpload(c *gin.Context) {
	kind, ok := datafiles.ParseKind(c.PostForm("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Tipo de upload inválido."})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Arquivo não enviado."})
		return
	}
	if !upload.AllowedFileName(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Envie um arquivo .xls ou .xlsx."})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	defer src.Close()

	saved, err := h.uploads.SaveDirect(kind, fileHeader.Filename, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "kind": saved.Kind, "savedAs": saved.SavedAs, "sizeBytes": saved.SizeBytes})
}

// PutDadosUploadChunk recebe uma parte de um upload em partes
// PUT /api/dados/upload
func (h *Handler) PutDadosUploadChunk(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	kind, ok := datafiles.ParseKind(c.Query("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Tipo de upload inválido."})
		return
	}

	params := upload.ChunkParams{
		Kind:        kind,
		UploadID:    c.Query("uploadId"),
		FileName:    c.Query("fileName"),
		TotalSize:   queryInt64(c, "totalSize"),
		ChunkSize:   queryInt64(c, "chunkSize"),
		ChunkIndex:  queryInt(c, "chunkIndex"),
		TotalChunks: queryInt(c, "totalChunks"),
	}

	chunk, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Falha ao ler o chunk."})
		return
	}

	result, err := h.uploads.WriteChunk(params, chunk)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"kind":          result.Kind,
		"uploadId":      result.UploadID,
		"chunkIndex":    result.ChunkIndex,
		"totalChunks":   result.TotalChunks,
		"receivedBytes": result.ReceivedBytes,
	})
}

func queryInt64(c *gin.Context, name string) int64 {
	n, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
