package dataset

import (
	"testing"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/excel"
)

// TestCacheReusaPorMtime com o mtime estável a tabela é parseada uma vez;
// quando o mtime muda, a releitura acontece na próxima consulta.
func TestCacheReusaPorMtime(t *testing.T) {
	leituras := 0
	read := func(path, sheetName string) (*excel.Table, error) {
		leituras++
		return excel.EmptyTable(), nil
	}
	mtimeAtual := int64(100)
	mtime := func(path string) int64 { return mtimeAtual }

	cache := NewCacheWithReader(datafiles.NewResolver(t.TempDir()), read, mtime)

	if _, err := cache.Load(datafiles.KindExportSuprimentos); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(datafiles.KindExportSuprimentos); err != nil {
		t.Fatal(err)
	}
	if leituras != 1 {
		t.Errorf("leituras com mtime estável: want=1 got=%d", leituras)
	}

	mtimeAtual = 200
	if _, err := cache.Load(datafiles.KindExportSuprimentos); err != nil {
		t.Fatal(err)
	}
	if leituras != 2 {
		t.Errorf("leituras após mudança de mtime: want=2 got=%d", leituras)
	}
}

// TestCacheSlotsPorDataset cada dataset tem slot próprio; carregar um não
// aproveita nem invalida o outro.
func TestCacheSlotsPorDataset(t *testing.T) {
	abasLidas := []string{}
	read := func(path, sheetName string) (*excel.Table, error) {
		abasLidas = append(abasLidas, sheetName)
		return excel.EmptyTable(), nil
	}
	cache := NewCacheWithReader(datafiles.NewResolver(t.TempDir()), read, func(string) int64 { return 1 })

	if _, err := cache.Load(datafiles.KindExportSuprimentos); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(datafiles.KindSolicitacoes); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(datafiles.KindSolicitacoes); err != nil {
		t.Fatal(err)
	}

	if len(abasLidas) != 2 {
		t.Fatalf("leituras: want=2 got=%v", abasLidas)
	}
	if abasLidas[0] != Sheets[datafiles.KindExportSuprimentos] || abasLidas[1] != Sheets[datafiles.KindSolicitacoes] {
		t.Errorf("abas lidas: got=%v", abasLidas)
	}
}
