package report

import (
	"regexp"
	"strings"
)

// Normalização do rótulo de filial. Regra fixa da organização, portada
// literalmente: extrai o código entre parênteses do nome longo da unidade,
// remove o prefixo organizacional e a UF no final, e trata os dois casos
// especiais conhecidos.

const semFilialLabel = "Sem filial"

var (
	reParenteses = regexp.MustCompile(`\(([^)]+)\)`)
	rePrefixo    = regexp.MustCompile(`(?i)^ENGEMAN\s*`)
	reEspacos    = regexp.MustCompile(`\s+`)
	reUFComTraco = regexp.MustCompile(`(?i)\s*-\s*[A-Z]{2}\s*$`)
	reUFSemTraco = regexp.MustCompile(`(?i)\s+[A-Z]{2}\s*$`)
)

// normalizeFilialLabel rótulo canônico da filial; ok=false quando o valor é
// vazio ou a unidade é excluída dos relatórios.
func normalizeFilialLabel(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	label := trimmed
	if m := reParenteses.FindStringSubmatch(trimmed); m != nil {
		label = m[1]
	}
	label = strings.TrimSpace(label)
	label = strings.TrimSpace(rePrefixo.ReplaceAllString(label, ""))
	label = strings.TrimSpace(reEspacos.ReplaceAllString(label, " "))
	label = strings.TrimSpace(reUFComTraco.ReplaceAllString(label, ""))
	label = strings.TrimSpace(reUFSemTraco.ReplaceAllString(label, ""))

	upper := strings.ToUpper(label)
	if strings.Contains(upper, "MONTES CLAROS") {
		return "", false
	}
	if upper == "PARACURU" {
		return "FILIAL RNCE", true
	}
	return "FILIAL " + upper, true
}

// matchesFilial o filtro de filial casa pelo rótulo exato ou por substring do
// nome bruto da unidade.
func matchesFilial(label, raw, filter string) bool {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" {
		return true
	}
	if strings.ToLower(strings.TrimSpace(label)) == f {
		return true
	}
	return strings.Contains(strings.ToLower(strings.TrimSpace(raw)), f)
}

// filialDaLinha resolve o rótulo da filial a partir do nome bruto.
// Sem valor bruto vale o rótulo "Sem filial"; unidade excluída invalida a
// linha (ok=false).
func filialDaLinha(rawFilial string) (label string, ok bool) {
	if rawFilial == "" {
		return semFilialLabel, true
	}
	return normalizeFilialLabel(rawFilial)
}
