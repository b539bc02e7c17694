package excel

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Normalizadores de célula: valor bruto -> valor tipado opcional.
// Falha de parse nunca é erro, é ausência; quem agrega decide o que fazer
// com o campo ausente.

// AsNonEmptyString string não vazia após trim; ok=false quando ausente.
func AsNonEmptyString(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	s := strings.TrimSpace(stringify(value))
	if s == "" {
		return "", false
	}
	return s, true
}

// AsNumber número finito. Célula numérica nativa passa direto; string é
// normalizada do formato brasileiro ("1.234,56") antes do parse.
func AsNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}

	s, ok := AsNonEmptyString(value)
	if !ok {
		return 0, false
	}
	normalized := strings.ReplaceAll(s, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// AsDate aceita somente célula já tipada como data. String que parece data
// continua sendo string: o leitor é quem tipa datas, nunca o normalizador.
func AsDate(value any) (time.Time, bool) {
	if t, ok := value.(time.Time); ok && !t.IsZero() {
		return t, true
	}
	return time.Time{}, false
}

// ReasonableYear filtro de datas corrompidas da planilha (artefatos de época
// 1899/1970). Janela padrão usada pelo dataset de solicitações.
func ReasonableYear(t time.Time) bool {
	y := t.UTC().Year()
	return y >= 2015 && y <= 2035
}

// ReasonableYearWide janela alargada usada pelos relatórios do export.
// As duas janelas são mantidas literais por chamador; unificar mudaria
// silenciosamente quais linhas são aceitas.
func ReasonableYearWide(t time.Time) bool {
	y := t.UTC().Year()
	return y >= 2015 && y <= 2100
}

// Round2 arredonda para 2 casas decimais (valores monetários e médias).
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// DateKeyUTC chave de dia no formato YYYY-MM-DD, em UTC.
func DateKeyUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
