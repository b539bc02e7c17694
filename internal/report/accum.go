package report

import (
	"sort"
	"strings"
)

// Acumuladores ordenados por primeira aparição no arquivo: os rankings
// ordenam pela métrica e desempatam pela ordem de inserção.

type chaveValor struct {
	Chave string
	Valor float64
}

// contagem soma por chave preservando a ordem de primeira aparição.
type contagem struct {
	ordem   []string
	valores map[string]float64
}

func (c *contagem) somar(chave string, delta float64) {
	if c.valores == nil {
		c.valores = make(map[string]float64)
	}
	if _, ok := c.valores[chave]; !ok {
		c.ordem = append(c.ordem, chave)
	}
	c.valores[chave] += delta
}

func (c *contagem) valor(chave string) float64 {
	return c.valores[chave]
}

func (c *contagem) tamanho() int {
	return len(c.ordem)
}

// ranking desce pela métrica, estável nos empates; top<=0 não corta.
func (c *contagem) ranking(top int) []chaveValor {
	out := make([]chaveValor, 0, len(c.ordem))
	for _, chave := range c.ordem {
		out = append(out, chaveValor{Chave: chave, Valor: c.valores[chave]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Valor > out[j].Valor
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}

// distintos conjunto de membros por chave, contado ao final (evita dupla
// contagem de solicitação/cotação/pedido repetidos em linhas distintas).
type distintos struct {
	ordem []string
	sets  map[string]map[string]struct{}
}

func (d *distintos) adicionar(chave, membro string) {
	if d.sets == nil {
		d.sets = make(map[string]map[string]struct{})
	}
	set, ok := d.sets[chave]
	if !ok {
		set = make(map[string]struct{})
		d.sets[chave] = set
		d.ordem = append(d.ordem, chave)
	}
	set[membro] = struct{}{}
}

func (d *distintos) tamanho(chave string) int {
	return len(d.sets[chave])
}

func (d *distintos) ranking(top int) []chaveValor {
	out := make([]chaveValor, 0, len(d.ordem))
	for _, chave := range d.ordem {
		out = append(out, chaveValor{Chave: chave, Valor: float64(len(d.sets[chave]))})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Valor > out[j].Valor
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}

// conjunto conjunto simples de strings.
type conjunto map[string]struct{}

func (s conjunto) adicionar(v string) {
	s[v] = struct{}{}
}

func (s conjunto) contem(v string) bool {
	_, ok := s[v]
	return ok
}

// opcoes coleta valores distintos não vazios e devolve ordenado.
type opcoes map[string]struct{}

func (o opcoes) adicionar(valor string) {
	if v := strings.TrimSpace(valor); v != "" {
		o[v] = struct{}{}
	}
}

func (o opcoes) ordenadas() []string {
	out := make([]string, 0, len(o))
	for v := range o {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
