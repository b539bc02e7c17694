package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shakinm/xlsReader/xls"
)

// Layouts que o conversor do formato binário produz para células de data.
// O leitor de .xls só expõe o texto já formatado, então a re-tipagem acontece
// aqui, na camada de parse do binário; os normalizadores continuam aceitando
// apenas células tipadas.
var xlsDateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006",
	"02/01/06",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
}

// readXLSRows lê uma aba de um arquivo .xls legado.
func readXLSRows(path, sheetName string) ([][]any, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir planilha %s: %w", path, err)
	}

	sheetIdx := 0
	if sheetName != "" {
		sheetIdx = -1
		for i := 0; i < workbook.GetNumberSheets(); i++ {
			sheet, err := workbook.GetSheet(i)
			if err != nil || sheet == nil {
				continue
			}
			if strings.TrimSpace(sheet.GetName()) == sheetName {
				sheetIdx = i
				break
			}
		}
		if sheetIdx < 0 {
			return nil, fmt.Errorf("aba %q não encontrada em %s", sheetName, path)
		}
	}

	sheet, err := workbook.GetSheet(sheetIdx)
	if err != nil || sheet == nil {
		return nil, fmt.Errorf("ler aba de %s: %w", path, err)
	}

	var out [][]any
	for _, xlsRow := range sheet.GetRows() {
		cols := xlsRow.GetCols()
		cells := make([]any, len(cols))
		for i, col := range cols {
			cells[i] = typeXLSCell(col.GetString())
		}
		out = append(out, cells)
	}
	return out, nil
}

func typeXLSCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range xlsDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return raw
}
