package datafiles

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	if k, ok := ParseKind("export-suprimentos"); !ok || k != KindExportSuprimentos {
		t.Fatalf("ParseKind(export-suprimentos): got=(%v,%v)", k, ok)
	}
	if k, ok := ParseKind("solicitacoes"); !ok || k != KindSolicitacoes {
		t.Fatalf("ParseKind(solicitacoes): got=(%v,%v)", k, ok)
	}
	if _, ok := ParseKind("outro"); ok {
		t.Fatalf("ParseKind(outro): want=false got=true")
	}
}

func escreveArquivo(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("conteudo"), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestWriteReadConfig o ponteiro gravado volta idêntico na releitura.
func TestWriteReadConfig(t *testing.T) {
	r := NewResolver(t.TempDir())

	var cfg Config
	cfg.Set(KindExportSuprimentos, "dados/uploads/export-2026.xlsx")
	if err := r.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}

	got := r.ReadConfig()
	if got.Get(KindExportSuprimentos) != "dados/uploads/export-2026.xlsx" {
		t.Errorf("export: got=%q", got.Get(KindExportSuprimentos))
	}
	if got.Get(KindSolicitacoes) != "" {
		t.Errorf("solicitações sem override: got=%q", got.Get(KindSolicitacoes))
	}
}

// TestReadConfigAusente sem ponteiro no disco vale a configuração vazia.
func TestReadConfigAusente(t *testing.T) {
	r := NewResolver(t.TempDir())
	cfg := r.ReadConfig()
	if cfg.Get(KindExportSuprimentos) != "" || cfg.Get(KindSolicitacoes) != "" {
		t.Errorf("config ausente: got=%+v", cfg)
	}
}

// TestReadConfigInvalida JSON quebrado também vale configuração vazia.
func TestReadConfigInvalida(t *testing.T) {
	base := t.TempDir()
	r := NewResolver(base)
	escreveArquivo(t, r.ConfigPath())
	cfg := r.ReadConfig()
	if cfg.Get(KindExportSuprimentos) != "" {
		t.Errorf("config inválida: got=%+v", cfg)
	}
}

// TestActiveDataFileDefault sem override e sem arquivo padrão o dataset
// reporta source default e exists false.
func TestActiveDataFileDefault(t *testing.T) {
	r := NewResolver(t.TempDir())

	af := r.ActiveDataFile(KindExportSuprimentos)
	if af.Source != "default" || af.Exists {
		t.Errorf("sem arquivos: got=%+v", af)
	}
	if af.RelativePath != DefaultFiles[KindExportSuprimentos] {
		t.Errorf("caminho padrão: got=%q", af.RelativePath)
	}
}

// TestActiveDataFileUpload override existente vence com proveniência upload.
func TestActiveDataFileUpload(t *testing.T) {
	base := t.TempDir()
	r := NewResolver(base)

	rel := "dados/uploads/export-novo.xlsx"
	escreveArquivo(t, filepath.Join(base, filepath.FromSlash(rel)))

	var cfg Config
	cfg.Set(KindExportSuprimentos, rel)
	if err := r.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}

	af := r.ActiveDataFile(KindExportSuprimentos)
	if af.Source != "upload" || !af.Exists {
		t.Errorf("override existente: got=%+v", af)
	}
	if af.RelativePath != rel {
		t.Errorf("caminho relativo: got=%q", af.RelativePath)
	}
	if af.SizeBytes == 0 || af.MtimeMs == 0 {
		t.Errorf("metadados do arquivo: got=%+v", af)
	}
}

// TestActiveDataFileUploadAusente override configurado mas sumido do disco
// cai no padrão mantendo a proveniência upload, com o padrão existente.
func TestActiveDataFileUploadAusente(t *testing.T) {
	base := t.TempDir()
	r := NewResolver(base)

	escreveArquivo(t, filepath.Join(base, filepath.FromSlash(DefaultFiles[KindSolicitacoes])))

	var cfg Config
	cfg.Set(KindSolicitacoes, "dados/uploads/sumiu.xlsx")
	if err := r.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}

	af := r.ActiveDataFile(KindSolicitacoes)
	if af.Source != "upload" {
		t.Errorf("proveniência: want=upload got=%q", af.Source)
	}
	if !af.Exists || af.RelativePath != DefaultFiles[KindSolicitacoes] {
		t.Errorf("fallback para o padrão: got=%+v", af)
	}
}

// TestResolvePath caminho absoluto passa direto; relativo ancora na base.
func TestResolvePath(t *testing.T) {
	base := t.TempDir()
	r := NewResolver(base)

	if got := r.ResolvePath("dados/arquivo.xlsx"); got != filepath.Join(base, "dados", "arquivo.xlsx") {
		t.Errorf("relativo: got=%q", got)
	}
	abs := filepath.Join(base, "x.xlsx")
	if got := r.ResolvePath(abs); got != abs {
		t.Errorf("absoluto: got=%q", got)
	}
}
