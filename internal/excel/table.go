package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table resultado do parse de uma aba: cabeçalho, linhas de dados e índice de
// colunas. Cabeçalhos duplicados são comuns nos exports do ERP, então o índice
// guarda todas as posições de cada nome, em ordem crescente.
type Table struct {
	Header []string
	Rows   [][]any
	Index  map[string][]int
}

// EmptyTable tabela vazia usada quando o arquivo de origem não existe.
func EmptyTable() *Table {
	return &Table{
		Header: []string{},
		Rows:   [][]any{},
		Index:  map[string][]int{},
	}
}

// BuildHeaderIndex monta o índice nome -> posições a partir do cabeçalho.
// Nomes vazios (após trim) são ignorados.
func BuildHeaderIndex(header []string) map[string][]int {
	index := make(map[string][]int)
	for i, cell := range header {
		key := strings.TrimSpace(cell)
		if key == "" {
			continue
		}
		index[key] = append(index[key], i)
	}
	return index
}

// First posição da primeira ocorrência da coluna, -1 se ausente.
func (t *Table) First(name string) int {
	idxs := t.Index[name]
	if len(idxs) == 0 {
		return -1
	}
	return idxs[0]
}

// Last posição da última ocorrência da coluna, -1 se ausente.
// O export traz a mesma coluna para o lado da solicitação e do pedido;
// qual das duas vale depende da métrica.
func (t *Table) Last(name string) int {
	idxs := t.Index[name]
	if len(idxs) == 0 {
		return -1
	}
	return idxs[len(idxs)-1]
}

// Cell célula na posição idx, nil quando a coluna não existe ou a linha é curta.
func Cell(row []any, idx int) any {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// FileMtimeMs mtime do arquivo em milissegundos; 0 quando o stat falha.
func FileMtimeMs(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().UnixMilli()
}

// ReadTable lê uma aba do arquivo em uma Table tipada.
// Arquivo inexistente vira tabela vazia (painéis toleram "sem dados" como
// estado padrão). Aba nomeada ausente é erro: não existe fallback razoável.
func ReadTable(path, sheetName string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return EmptyTable(), nil
	}

	var (
		raw [][]any
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		raw, err = readXLSRows(path, sheetName)
	} else {
		raw, err = readXLSXRows(path, sheetName)
	}
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return EmptyTable(), nil
	}

	// A primeira linha é sempre cabeçalho, o resto são dados.
	header := make([]string, len(raw[0]))
	for i, cell := range raw[0] {
		header[i] = strings.TrimSpace(stringify(cell))
	}

	return &Table{
		Header: header,
		Rows:   raw[1:],
		Index:  BuildHeaderIndex(header),
	}, nil
}

func stringify(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// readXLSXRows lê a aba via excelize devolvendo células tipadas.
// Células numéricas com formato de data viram time.Time (serial -> data);
// demais numéricas viram float64; o resto fica string.
func readXLSXRows(path, sheetName string) ([][]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir planilha %s: %w", path, err)
	}
	defer f.Close()

	sheet := sheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("aba %q não encontrada em %s", sheet, path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("ler aba %q: %w", sheet, err)
	}

	dateStyles := make(map[int]bool)
	out := make([][]any, len(rows))
	for r, rawRow := range rows {
		cells := make([]any, len(rawRow))
		for c, rawValue := range rawRow {
			cells[c] = typeXLSXCell(f, sheet, r, c, rawValue, dateStyles)
		}
		out[r] = cells
	}
	return out, nil
}

func typeXLSXCell(f *excelize.File, sheet string, row, col int, raw string, dateStyles map[int]bool) any {
	if raw == "" {
		return nil
	}

	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return raw
	}

	if cellType, err := f.GetCellType(sheet, axis); err == nil {
		switch cellType {
		case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeBool:
			return raw
		}
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}

	if isDateStyledCell(f, sheet, axis, dateStyles) {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t
		}
	}
	return serial
}

func isDateStyledCell(f *excelize.File, sheet, axis string, dateStyles map[int]bool) bool {
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return false
	}
	if isDate, ok := dateStyles[styleID]; ok {
		return isDate
	}
	isDate := styleHasDateFormat(f, styleID)
	dateStyles[styleID] = isDate
	return isDate
}

// Formatos numéricos embutidos de data/hora do OOXML.
var builtinDateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true,
	21: true, 22: true, 27: true, 28: true, 29: true, 30: true, 31: true,
	32: true, 33: true, 34: true, 35: true, 36: true, 45: true, 46: true,
	47: true, 50: true, 51: true, 52: true, 53: true, 54: true, 55: true,
	56: true, 57: true, 58: true,
}

func styleHasDateFormat(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if builtinDateNumFmts[style.NumFmt] {
		return true
	}
	if style.CustomNumFmt == nil {
		return false
	}
	return customFormatLooksLikeDate(*style.CustomNumFmt)
}

// customFormatLooksLikeDate ignora trechos entre colchetes/aspas e procura
// tokens de data (y, m, d, h) no que sobra.
func customFormatLooksLikeDate(format string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range format {
		switch {
		case inQuote:
			if r == '"' {
				inQuote = false
			}
		case inBracket:
			if r == ']' {
				inBracket = false
			}
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymdh")
}
