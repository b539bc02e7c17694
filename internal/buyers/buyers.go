// Package buyers regras de comprador compartilhadas: lista de exclusão de
// operadores e rótulo-sentinela para comprador em branco.
package buyers

import "strings"

// BlankLabel todo comprador em branco agrega sob o mesmo rótulo em vez de
// ser descartado.
const BlankLabel = "Em branco"

// Operadores fora das análises (gestores e apoio, não compradores).
var excludedSubstrings = []string{
	"thiago",
	"rose",
	"bruna",
	"joice",
	"savio",
	"anderson",
	"jamerson",
	"pedro",
}

// ShouldExclude true quando o nome bate com a lista de exclusão.
// Nome em branco não é excluído: vira BlankLabel.
func ShouldExclude(name string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return false
	}
	for _, substring := range excludedSubstrings {
		if strings.Contains(normalized, substring) {
			return true
		}
	}
	return false
}

// NormalizeLabel nome aparável ou o rótulo de comprador em branco.
func NormalizeLabel(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return BlankLabel
	}
	return trimmed
}
