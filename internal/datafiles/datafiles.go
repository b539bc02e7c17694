// Package datafiles resolve qual arquivo físico responde por cada dataset
// lógico: o upload ativo apontado pelo .data-files.json ou o arquivo padrão.
package datafiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Kind dataset lógico servido pelo motor de agregação.
type Kind string

const (
	KindExportSuprimentos Kind = "export-suprimentos"
	KindSolicitacoes      Kind = "solicitacoes"
)

// DefaultFiles caminho padrão (relativo à raiz de dados) de cada dataset.
var DefaultFiles = map[Kind]string{
	KindExportSuprimentos: "dados/fs_export_suprimentos_v2.xls",
	KindSolicitacoes:      "dados/FW_Solicitacoes.xlsx",
}

const configRelativePath = "dados/.data-files.json"

// Config documento JSON de ponteiros: dataset -> caminho relativo ativo.
// Quem grava é o subsistema de upload; aqui ele é na prática só leitura.
type Config struct {
	ExportSuprimentos string `json:"export-suprimentos,omitempty"`
	Solicitacoes      string `json:"solicitacoes,omitempty"`
}

// Get caminho configurado para o dataset ("" quando não há override).
func (c Config) Get(kind Kind) string {
	switch kind {
	case KindExportSuprimentos:
		return strings.TrimSpace(c.ExportSuprimentos)
	case KindSolicitacoes:
		return strings.TrimSpace(c.Solicitacoes)
	}
	return ""
}

// Set define o caminho ativo do dataset.
func (c *Config) Set(kind Kind, path string) {
	switch kind {
	case KindExportSuprimentos:
		c.ExportSuprimentos = path
	case KindSolicitacoes:
		c.Solicitacoes = path
	}
}

// ParseKind valida o nome de dataset vindo de fora.
func ParseKind(value string) (Kind, bool) {
	switch Kind(value) {
	case KindExportSuprimentos:
		return KindExportSuprimentos, true
	case KindSolicitacoes:
		return KindSolicitacoes, true
	}
	return "", false
}

// ActiveFile metadados do arquivo efetivo de um dataset.
type ActiveFile struct {
	Kind         Kind   `json:"kind"`
	RelativePath string `json:"relativePath"`
	AbsolutePath string `json:"absolutePath"`
	Source       string `json:"source"` // "upload" ou "default"
	Exists       bool   `json:"exists"`
	MtimeMs      int64  `json:"mtimeMs,omitempty"`
	SizeBytes    int64  `json:"sizeBytes,omitempty"`
}

type configCache struct {
	mtimeMs int64
	config  Config
}

// Resolver dono do ponteiro de datasets. Os caminhos relativos são resolvidos
// contra baseDir. O parse do JSON tem cache próprio por mtime para não pagar
// leitura+parse a cada requisição.
type Resolver struct {
	baseDir string

	mu    sync.Mutex
	cache *configCache
}

// NewResolver cria o resolvedor ancorado em baseDir.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{baseDir: baseDir}
}

// ConfigPath caminho absoluto do .data-files.json.
func (r *Resolver) ConfigPath() string {
	return filepath.Join(r.baseDir, filepath.FromSlash(configRelativePath))
}

// ResolvePath caminho absoluto de um caminho relativo à raiz de dados.
func (r *Resolver) ResolvePath(relative string) string {
	if filepath.IsAbs(relative) {
		return relative
	}
	return filepath.Join(r.baseDir, filepath.FromSlash(relative))
}

// ReadConfig lê o ponteiro com cache por mtime. Arquivo ausente ou inválido
// vale como configuração vazia.
func (r *Resolver) ReadConfig() Config {
	r.mu.Lock()
	defer r.mu.Unlock()

	configPath := r.ConfigPath()
	info, err := os.Stat(configPath)
	if err != nil {
		r.cache = nil
		return Config{}
	}

	mtimeMs := info.ModTime().UnixMilli()
	if r.cache != nil && r.cache.mtimeMs == mtimeMs {
		return r.cache.config
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		r.cache = nil
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		r.cache = nil
		return Config{}
	}
	cfg.ExportSuprimentos = strings.TrimSpace(cfg.ExportSuprimentos)
	cfg.Solicitacoes = strings.TrimSpace(cfg.Solicitacoes)

	r.cache = &configCache{mtimeMs: mtimeMs, config: cfg}
	return cfg
}

// WriteConfig grava o ponteiro. A releitura sem modificação externa devolve
// o mesmo mapeamento.
func (r *Resolver) WriteConfig(cfg Config) error {
	configPath := r.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("criar diretório de dados: %w", err)
	}
	payload, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar ponteiro de datasets: %w", err)
	}
	if err := os.WriteFile(configPath, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("gravar ponteiro de datasets: %w", err)
	}
	return nil
}

func statRegularFile(absolutePath string) (os.FileInfo, bool) {
	info, err := os.Stat(absolutePath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	return info, true
}

// ActiveDataFile decide o arquivo efetivo do dataset. Override existente vence
// com proveniência "upload"; senão cai no padrão. Override configurado mas
// ausente mantém source "upload" para refletir a intenção do usuário, mesmo
// servindo o conteúdo do fallback.
func (r *Resolver) ActiveDataFile(kind Kind) ActiveFile {
	cfg := r.ReadConfig()
	override := cfg.Get(kind)
	if override != "" {
		abs := r.ResolvePath(override)
		if info, ok := statRegularFile(abs); ok {
			return ActiveFile{
				Kind:         kind,
				RelativePath: override,
				AbsolutePath: abs,
				Source:       "upload",
				Exists:       true,
				MtimeMs:      info.ModTime().UnixMilli(),
				SizeBytes:    info.Size(),
			}
		}
	}

	// Override configurado porém ausente continua reportando "upload":
	// reflete a intenção do usuário mesmo servindo o conteúdo do fallback.
	source := "default"
	if override != "" {
		source = "upload"
	}

	fallbackRel := DefaultFiles[kind]
	fallbackAbs := r.ResolvePath(fallbackRel)
	if info, ok := statRegularFile(fallbackAbs); ok {
		return ActiveFile{
			Kind:         kind,
			RelativePath: fallbackRel,
			AbsolutePath: fallbackAbs,
			Source:       source,
			Exists:       true,
			MtimeMs:      info.ModTime().UnixMilli(),
			SizeBytes:    info.Size(),
		}
	}

	return ActiveFile{
		Kind:         kind,
		RelativePath: fallbackRel,
		AbsolutePath: fallbackAbs,
		Source:       source,
		Exists:       false,
	}
}
