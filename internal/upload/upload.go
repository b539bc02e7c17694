// Package upload troca das planilhas ativas: upload direto (multipart) e
// upload em partes para arquivos grandes, com manifesto em disco. Ao
// concluir, o arquivo de ponteiros passa a apontar para o novo arquivo e o
// upload anterior é removido.
package upload

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
)

const (
	uploadDirRel   = "dados/uploads"
	chunkedDirName = ".chunked"
)

var uploadIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-]{8,80}$`)

// ValidUploadID identificador de upload em partes aceito na URL.
func ValidUploadID(id string) bool {
	return uploadIDPattern.MatchString(id)
}

// Manifest estado de um upload em partes.
type Manifest struct {
	Kind         datafiles.Kind `json:"kind"`
	OriginalName string         `json:"originalName"`
	TotalSize    int64          `json:"totalSize"`
	ChunkSize    int64          `json:"chunkSize"`
	TotalChunks  int            `json:"totalChunks"`
	Received     []bool         `json:"received"`
	CreatedAt    string         `json:"createdAt"`
}

// SavedFile resultado de um upload concluído.
type SavedFile struct {
	Kind      datafiles.Kind `json:"kind"`
	SavedAs   string         `json:"savedAs"`
	SizeBytes int64          `json:"sizeBytes"`
}

// Manager coordena uploads sobre o resolvedor de arquivos de dados.
type Manager struct {
	resolver *datafiles.Resolver
	now      func() time.Time
}

// NewManager cria o gerenciador de uploads.
func NewManager(resolver *datafiles.Resolver) *Manager {
	return &Manager{resolver: resolver, now: time.Now}
}

// guessExtension extensão do arquivo destino; sem extensão reconhecível vale
// o formato usual de cada planilha.
func guessExtension(fileName string, kind datafiles.Kind) string {
	lower := strings.ToLower(fileName)
	if strings.HasSuffix(lower, ".xlsx") {
		return "xlsx"
	}
	if strings.HasSuffix(lower, ".xls") {
		return "xls"
	}
	if kind == datafiles.KindSolicitacoes {
		return "xlsx"
	}
	return "xls"
}

// AllowedFileName vazio ou terminado em .xls/.xlsx.
func AllowedFileName(fileName string) bool {
	lower := strings.ToLower(fileName)
	if lower == "" {
		return true
	}
	return strings.HasSuffix(lower, ".xls") || strings.HasSuffix(lower, ".xlsx")
}

func (m *Manager) safeTimestamp() string {
	ts := m.now().UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(ts)
}

func (m *Manager) destRelPath(kind datafiles.Kind, fileName string) string {
	return path.Join(uploadDirRel, fmt.Sprintf("%s-%s.%s", kind, m.safeTimestamp(), guessExtension(fileName, kind)))
}

// setActiveFile atualiza o ponteiro e apaga o upload anterior quando ele
// também morava em dados/uploads.
func (m *Manager) setActiveFile(kind datafiles.Kind, relativeDestPath string) error {
	cfg := m.resolver.ReadConfig()
	previous := strings.TrimSpace(cfg.Get(kind))
	cfg.Set(kind, relativeDestPath)
	if err := m.resolver.WriteConfig(cfg); err != nil {
		return err
	}

	if previous != "" && previous != relativeDestPath {
		previousPath := m.resolver.ResolvePath(previous)
		uploadsDir := m.resolver.ResolvePath(uploadDirRel)
		rel, err := filepath.Rel(uploadsDir, previousPath)
		if err == nil && rel != "" && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel) {
			_ = os.Remove(previousPath)
		}
	}
	return nil
}

// SaveDirect grava um upload multipart inteiro e o torna o arquivo ativo.
func (m *Manager) SaveDirect(kind datafiles.Kind, fileName string, content io.Reader) (*SavedFile, error) {
	relativeDestPath := m.destRelPath(kind, fileName)
	destPath := m.resolver.ResolvePath(relativeDestPath)

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, fmt.Errorf("criar diretório de uploads: %w", err)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("criar arquivo de upload: %w", err)
	}
	size, err := io.Copy(dest, content)
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(destPath)
		return nil, fmt.Errorf("gravar upload: %w", err)
	}

	if err := m.setActiveFile(kind, relativeDestPath); err != nil {
		return nil, err
	}
	return &SavedFile{Kind: kind, SavedAs: relativeDestPath, SizeBytes: size}, nil
}

func (m *Manager) manifestPath(kind datafiles.Kind, uploadID string) string {
	return m.resolver.ResolvePath(path.Join(uploadDirRel, chunkedDirName, fmt.Sprintf("%s-%s.json", kind, uploadID)))
}

func (m *Manager) partPath(kind datafiles.Kind, uploadID string) string {
	return m.resolver.ResolvePath(path.Join(uploadDirRel, chunkedDirName, fmt.Sprintf("%s-%s.part", kind, uploadID)))
}

func (m *Manager) readManifest(kind datafiles.Kind, uploadID string) (*Manifest, error) {
	raw, err := os.ReadFile(m.manifestPath(kind, uploadID))
	if err != nil {
		return nil, err
	}
	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

func (m *Manager) writeManifest(kind datafiles.Kind, uploadID string, manifest *Manifest) error {
	manifestPath := m.manifestPath(kind, uploadID)
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(manifest)
	if err != nil {
		return err
	}
	return os.WriteFile(manifestPath, data, 0644)
}

// ChunkParams parâmetros de um PUT de parte.
type ChunkParams struct {
	Kind        datafiles.Kind
	UploadID    string
	FileName    string
	TotalSize   int64
	ChunkSize   int64
	ChunkIndex  int
	TotalChunks int
}

// ChunkResult confirmação de uma parte gravada.
type ChunkResult struct {
	Kind          datafiles.Kind `json:"kind"`
	UploadID      string         `json:"uploadId"`
	ChunkIndex    int            `json:"chunkIndex"`
	TotalChunks   int            `json:"totalChunks"`
	ReceivedBytes int            `json:"receivedBytes"`
}

// ValidateChunk valida os parâmetros antes de tocar o disco.
func ValidateChunk(p ChunkParams, chunkLen int) error {
	if !ValidUploadID(p.UploadID) {
		return fmt.Errorf("UploadId inválido")
	}
	if p.FileName == "" || !AllowedFileName(p.FileName) {
		return fmt.Errorf("envie um arquivo .xls ou .xlsx")
	}
	if p.TotalSize <= 0 {
		return fmt.Errorf("TotalSize inválido")
	}
	if p.ChunkSize <= 0 {
		return fmt.Errorf("ChunkSize inválido")
	}
	if p.ChunkIndex < 0 || p.ChunkIndex >= p.TotalChunks {
		return fmt.Errorf("ChunkIndex inválido")
	}
	if p.TotalChunks <= 0 {
		return fmt.Errorf("TotalChunks inválido")
	}
	expected := int((p.TotalSize + p.ChunkSize - 1) / p.ChunkSize)
	if p.TotalChunks != expected {
		return fmt.Errorf("TotalChunks inválido")
	}
	if chunkLen <= 0 {
		return fmt.Errorf("chunk vazio")
	}
	if int64(chunkLen) > p.ChunkSize {
		return fmt.Errorf("chunk maior que o esperado")
	}
	offset := int64(p.ChunkIndex) * p.ChunkSize
	if offset >= p.TotalSize || offset+int64(chunkLen) > p.TotalSize {
		return fmt.Errorf("chunk fora do limite")
	}
	return nil
}

// WriteChunk grava uma parte no offset calculado, criando o manifesto e o
// arquivo .part na primeira parte recebida.
func (m *Manager) WriteChunk(p ChunkParams, chunk []byte) (*ChunkResult, error) {
	if err := ValidateChunk(p, len(chunk)); err != nil {
		return nil, err
	}

	manifest, err := m.readManifest(p.Kind, p.UploadID)
	if err != nil {
		manifest = &Manifest{
			Kind:         p.Kind,
			OriginalName: p.FileName,
			TotalSize:    p.TotalSize,
			ChunkSize:    p.ChunkSize,
			TotalChunks:  p.TotalChunks,
			Received:     make([]bool, p.TotalChunks),
			CreatedAt:    m.now().UTC().Format(time.RFC3339),
		}
	}

	if manifest.Kind != p.Kind ||
		manifest.TotalSize != p.TotalSize ||
		manifest.ChunkSize != p.ChunkSize ||
		manifest.TotalChunks != p.TotalChunks ||
		manifest.OriginalName != p.FileName ||
		len(manifest.Received) != p.TotalChunks {
		return nil, fmt.Errorf("upload em partes inconsistente")
	}

	partPath := m.partPath(p.Kind, p.UploadID)
	if err := os.MkdirAll(filepath.Dir(partPath), 0755); err != nil {
		return nil, err
	}

	if stat, err := os.Stat(partPath); err == nil {
		if stat.Size() != p.TotalSize {
			return nil, fmt.Errorf("upload em partes inconsistente (tamanho diferente)")
		}
	} else {
		handle, err := os.OpenFile(partPath, os.O_RDWR|os.O_CREATE, 0644)
		if err != nil {
			return nil, err
		}
		err = handle.Truncate(p.TotalSize)
		if closeErr := handle.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, err
		}
	}

	handle, err := os.OpenFile(partPath, os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	_, err = handle.WriteAt(chunk, int64(p.ChunkIndex)*p.ChunkSize)
	if closeErr := handle.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}

	manifest.Received[p.ChunkIndex] = true
	if err := m.writeManifest(p.Kind, p.UploadID, manifest); err != nil {
		return nil, err
	}

	return &ChunkResult{
		Kind:          p.Kind,
		UploadID:      p.UploadID,
		ChunkIndex:    p.ChunkIndex,
		TotalChunks:   p.TotalChunks,
		ReceivedBytes: len(chunk),
	}, nil
}

// ErrNotFound upload em partes desconhecido.
var ErrNotFound = fmt.Errorf("upload em partes não encontrado")

// Complete valida que todas as partes chegaram, promove o .part ao destino
// final e atualiza o ponteiro do arquivo ativo.
func (m *Manager) Complete(kind datafiles.Kind, uploadID string) (*SavedFile, error) {
	manifest, err := m.readManifest(kind, uploadID)
	if err != nil {
		return nil, ErrNotFound
	}

	if len(manifest.Received) != manifest.TotalChunks {
		return nil, fmt.Errorf("upload em partes corrompido")
	}
	missing := 0
	for _, done := range manifest.Received {
		if !done {
			missing++
		}
	}
	if missing > 0 {
		return nil, fmt.Errorf("upload em partes incompleto (faltam %d parte(s))", missing)
	}

	relativeDestPath := m.destRelPath(kind, manifest.OriginalName)
	destPath := m.resolver.ResolvePath(relativeDestPath)
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, err
	}
	if err := os.Rename(m.partPath(kind, uploadID), destPath); err != nil {
		return nil, fmt.Errorf("promover upload em partes: %w", err)
	}
	_ = os.Remove(m.manifestPath(kind, uploadID))

	if err := m.setActiveFile(kind, relativeDestPath); err != nil {
		return nil, err
	}
	return &SavedFile{Kind: kind, SavedAs: relativeDestPath, SizeBytes: manifest.TotalSize}, nil
}

// Abort descarta o manifesto e o arquivo parcial.
func (m *Manager) Abort(kind datafiles.Kind, uploadID string) {
	_ = os.Remove(m.manifestPath(kind, uploadID))
	_ = os.Remove(m.partPath(kind, uploadID))
}
