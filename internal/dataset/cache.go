// Package dataset guarda a tabela parseada de cada dataset com invalidação
// por mtime. O cache é um objeto explícito criado uma vez no boot e injetado
// em quem consulta, em vez de estado global de módulo.
package dataset

import (
	"sync"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/datafiles"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/excel"
)

// Sheets aba esperada por dataset. Aba ausente no arquivo é erro fatal da
// leitura; não existe aba substituta com significado.
var Sheets = map[datafiles.Kind]string{
	datafiles.KindExportSuprimentos: "Sheet1",
	datafiles.KindSolicitacoes:      "Gd_Edicao",
}

// ReaderFunc lê uma aba de um arquivo em Table. Injetável para teste.
type ReaderFunc func(path, sheetName string) (*excel.Table, error)

type slot struct {
	mtimeMs int64
	table   *excel.Table
}

// Cache um slot por dataset, vivo pela duração do processo. Duas requisições
// simultâneas em cache miss podem reparsear o mesmo arquivo; a última escrita
// vence e o trabalho redundante é idempotente.
type Cache struct {
	resolver *datafiles.Resolver
	read     ReaderFunc
	mtime    func(path string) int64

	mu    sync.RWMutex
	slots map[datafiles.Kind]*slot
}

// NewCache cria o cache sobre o resolvedor de datasets.
func NewCache(resolver *datafiles.Resolver) *Cache {
	return &Cache{
		resolver: resolver,
		read:     excel.ReadTable,
		mtime:    excel.FileMtimeMs,
		slots:    make(map[datafiles.Kind]*slot),
	}
}

// NewCacheWithReader variante com leitor injetado, usada nos testes para
// contar releituras sem tocar em arquivo real.
func NewCacheWithReader(resolver *datafiles.Resolver, read ReaderFunc, mtime func(string) int64) *Cache {
	c := NewCache(resolver)
	if read != nil {
		c.read = read
	}
	if mtime != nil {
		c.mtime = mtime
	}
	return c
}

// Resolver expõe o resolvedor subjacente (status e upload usam).
func (c *Cache) Resolver() *datafiles.Resolver {
	return c.resolver
}

// Load devolve a tabela atual do dataset, relendo só quando o mtime observado
// difere do guardado. Falha de stat vale mtime 0.
func (c *Cache) Load(kind datafiles.Kind) (*excel.Table, error) {
	path := c.resolver.ActiveDataFile(kind).AbsolutePath
	mtimeMs := c.mtime(path)

	c.mu.RLock()
	if s, ok := c.slots[kind]; ok && s.mtimeMs == mtimeMs {
		table := s.table
		c.mu.RUnlock()
		return table, nil
	}
	c.mu.RUnlock()

	table, err := c.read(path, Sheets[kind])
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.slots[kind] = &slot{mtimeMs: mtimeMs, table: table}
	c.mu.Unlock()
	return table, nil
}
