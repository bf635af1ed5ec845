package fileio

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFile = errors.New("unsupported file")

// Table, выгрузка после чтения: заголовки (уже обрезанные) и строки по ним.
type Table struct {
	Headers []string
	Rows    []map[string]string
	Digest  string // sha256 по заголовкам и ячейкам, в порядке файла
}

// Has проверяет наличие колонки (заголовки уже trim'нуты).
func (t Table) Has(col string) bool {
	for _, h := range t.Headers {
		if h == col {
			return true
		}
	}
	return false
}

// ReadTable выберет парсер по расширению.
// headerRow: номер строки заголовков (1-based).
func ReadTable(r io.Reader, filename string, headerRow int) (Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r, headerRow)
	case ".csv", ".txt":
		rows, err = readCSV(r)
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFile, filename)
	}
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", filename, err)
	}
	return NewTable(rows, headerRow), nil
}

// NewTable собирает Table из AoA: шапка на headerRow, дальше данные.
func NewTable(rows [][]string, headerRow int) Table {
	if len(rows) == 0 {
		return Table{Digest: digest(nil, nil)}
	}
	h := pickHeader(rows, headerRow)
	maps := rowsToMaps(rows, h, headerRow)
	return Table{Headers: h, Rows: maps, Digest: digest(h, maps)}
}

// pickHeader: берёт строку заголовков, trim'ит, подставляет Column N для
// пустых и добавляет .1, .2 к повторам.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	seen := make(map[string]int, len(h))
	used := make(map[string]bool, len(h))
	for i, v := range h {
		v = strings.TrimSpace(strings.TrimPrefix(v, "\ufeff"))
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		if used[v] {
			// суффикс может совпасть с заголовком из файла: крутим дальше
			base, n := v, seen[v]
			for used[v] {
				n++
				v = fmt.Sprintf("%s.%d", base, n)
			}
			seen[base] = n
		}
		used[v] = true
		out[i] = v
	}
	return out
}

// rowsToMaps: AoA в []map по заголовкам, полностью пустые строки пропускаем.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	start := headerRow
	if start < 1 || start > len(rows) {
		start = 1
	}
	out := make([]map[string]string, 0, len(rows)-start)
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c, name := range headers {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			if strings.TrimSpace(v) != "" {
				empty = false
			}
			m[name] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

// digest: каждая ячейка с префиксом длины (uvarint), иначе разделитель
// внутри значения даёт коллизию.
func digest(headers []string, rows []map[string]string) string {
	h := sha256.New()
	var buf []byte
	put := func(s string) {
		buf = binary.AppendUvarint(buf[:0], uint64(len(s)))
		buf = append(buf, s...)
		h.Write(buf)
	}
	for _, name := range headers {
		put(name)
	}
	h.Write([]byte{0x1e})
	for _, row := range rows {
		for _, name := range headers {
			put(row[name])
		}
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// trimCell: NBSP -> пробел, обрезка по краям.
func trimCell(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
}
