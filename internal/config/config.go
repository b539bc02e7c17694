package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig configuração da aplicação
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Report ReportConfig `toml:"report"`
	Jobs   JobsConfig   `toml:"jobs"`
}

// ServerConfig configuração do servidor HTTP
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig diretório base das planilhas e dos arquivos do planner
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// ReportConfig parâmetros dos relatórios
type ReportConfig struct {
	TopCompradores int `toml:"top_compradores"`
	JanelaDias     int `toml:"janela_dias"`
}

// JobsConfig agendamento do resumo diário de itens atrasados
type JobsConfig struct {
	DigestEnabled bool   `toml:"digest_enabled"`
	DigestCron    string `toml:"digest_cron"`
	DigestTo      string `toml:"digest_to"`
}

// LoadConfigInfo metainformação do carregamento
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig configuração padrão
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8767,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: ".",
		},
		Report: ReportConfig{
			TopCompradores: 30,
			JanelaDias:     7,
		},
		Jobs: JobsConfig{
			DigestEnabled: false,
			DigestCron:    "0 7 * * 1-5",
			DigestTo:      "",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir diretório do executável
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo carrega config.toml (ao lado do executável) e devolve a
// metainformação. O .env do diretório de trabalho entra antes, para que as
// variáveis SMTP e os overrides abaixo estejam visíveis.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	_ = godotenv.Load()

	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnvOverrides(config)
	return config, info, nil
}

// applyEnvOverrides overrides por variável de ambiente (E2E / execução local)
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("SUPRIMENTOS_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("SUPRIMENTOS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("SUPRIMENTOS_DIGEST_TO"); v != "" {
		config.Jobs.DigestTo = v
		config.Jobs.DigestEnabled = true
	}
}

// LoadConfig carrega a configuração de config.toml
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig grava a configuração em config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir garante a árvore dados/ sob o diretório base configurado.
// A base padrão é o diretório de trabalho, para casar com os caminhos
// relativos gravados no arquivo de ponteiros.
func EnsureDataDir(config *AppConfig) (string, error) {
	baseDir := config.Data.DataDir
	if !filepath.IsAbs(baseDir) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(wd, baseDir)
	}

	subdirs := []string{
		"dados",
		filepath.Join("dados", "uploads"),
		filepath.Join("dados", "planner"),
	}
	for _, subdir := range subdirs {
		if err := os.MkdirAll(filepath.Join(baseDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return baseDir, nil
}
