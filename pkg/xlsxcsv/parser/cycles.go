package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/xuri/efp"
	"github.com/xuri/excelize/v2"
)

// ErrCircularReference indicates a formula depends on its own result.
var ErrCircularReference = errors.New("circular reference")

// cellKey identifies a cell by 0-based sheet, row and column.
type cellKey struct {
	sheet, row, col int
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	acyclic
	cyclic
)

// formulaGraph memoizes the cycle search over formula dependencies.
type formulaGraph struct {
	state map[cellKey]visitState
}

// cellRange is a 1-based inclusive rectangle. A zero column (or row) bound
// spans the whole row (or column).
type cellRange struct {
	sheet      int
	col1, row1 int
	col2, row2 int
}

func (r cellRange) contains(row, col int) bool {
	return (r.col1 == 0 || col >= r.col1 && col <= r.col2) &&
		(r.row1 == 0 || row >= r.row1 && row <= r.row2)
}

// circular reports whether the formula at k depends, directly or through
// other formulas, on a circular reference.
func (w *Workbook) circular(k cellKey) bool {
	if w.graph == nil {
		w.graph = &formulaGraph{state: make(map[cellKey]visitState)}
	}
	switch w.graph.state[k] {
	case visiting, cyclic:
		return true
	case acyclic:
		return false
	}

	w.graph.state[k] = visiting
	found := false
	for _, dep := range w.dependencies(k) {
		if w.circular(dep) {
			found = true
			break
		}
	}
	if found {
		w.graph.state[k] = cyclic
	} else {
		w.graph.state[k] = acyclic
	}
	return found
}

// dependencies returns the formula cells referenced by the formula at k.
// Cells holding literals cannot close a cycle and are skipped.
func (w *Workbook) dependencies(k cellKey) []cellKey {
	layout := w.sheets[k.sheet]
	ref, err := excelize.CoordinatesToCellName(k.col+1, k.row+1)
	if err != nil {
		return nil
	}
	formula, err := w.f.GetCellFormula(layout.name, ref)
	if err != nil || formula == "" {
		return nil
	}

	var deps []cellKey
	ps := efp.ExcelParser()
	for _, token := range ps.Parse(formula) {
		if token.TType != efp.TokenTypeOperand || token.TSubType != efp.TokenSubTypeRange {
			continue
		}
		for _, rng := range w.resolveRanges(token.TValue, k.sheet) {
			for _, pos := range w.sheets[rng.sheet].formulas {
				if rng.contains(pos.row+1, pos.col+1) {
					deps = append(deps, cellKey{sheet: rng.sheet, row: pos.row, col: pos.col})
				}
			}
		}
	}
	return deps
}

// resolveRanges turns a reference operand, or a defined name, into ranges.
func (w *Workbook) resolveRanges(operand string, current int) []cellRange {
	if refersTo, ok := w.definedName(operand); ok {
		var ranges []cellRange
		for _, part := range strings.Split(refersTo, ",") {
			if rng, ok := w.parseRange(strings.TrimSpace(part), current); ok {
				ranges = append(ranges, rng)
			}
		}
		return ranges
	}
	if rng, ok := w.parseRange(operand, current); ok {
		return []cellRange{rng}
	}
	return nil
}

// definedName returns what a defined name refers to. Workbook-scoped names
// win over sheet-scoped ones.
func (w *Workbook) definedName(name string) (string, bool) {
	if !w.namesSet {
		w.names = make(map[string]string)
		for _, dn := range w.f.GetDefinedName() {
			key := strings.ToUpper(dn.Name)
			if _, ok := w.names[key]; ok && dn.Scope != "Workbook" {
				continue
			}
			w.names[key] = strings.TrimPrefix(dn.RefersTo, "=")
		}
		w.namesSet = true
	}
	refersTo, ok := w.names[strings.ToUpper(name)]
	return refersTo, ok
}

// parseRange parses A1-style references such as "B2", "$A$1:C3",
// "'My Sheet'!A:A" or "2:4". Unqualified references belong to current.
func (w *Workbook) parseRange(s string, current int) (cellRange, bool) {
	rng := cellRange{sheet: current}
	if i := strings.LastIndex(s, "!"); i >= 0 {
		name := s[:i]
		if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
			name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
		}
		sheet, ok := w.sheetIndex(name)
		if !ok {
			return rng, false
		}
		rng.sheet = sheet
		s = s[i+1:]
	}

	parts := strings.Split(strings.ReplaceAll(s, "$", ""), ":")
	if len(parts) > 2 {
		return rng, false
	}
	c1, r1, ok := parseRefPart(parts[0])
	if !ok {
		return rng, false
	}
	c2, r2 := c1, r1
	if len(parts) == 2 {
		if c2, r2, ok = parseRefPart(parts[1]); !ok {
			return rng, false
		}
	} else if c1 == 0 || r1 == 0 {
		return rng, false
	}
	if (c1 == 0) != (c2 == 0) || (r1 == 0) != (r2 == 0) {
		return rng, false
	}

	rng.col1, rng.col2 = min(c1, c2), max(c1, c2)
	rng.row1, rng.row2 = min(r1, r2), max(r1, r2)
	return rng, true
}

// parseRefPart splits "AB12" into column 28 and row 12. Either part may be
// missing ("AB", "12"), in which case it is returned as 0.
func parseRefPart(p string) (col, row int, ok bool) {
	i := 0
	for i < len(p) && (p[i] >= 'A' && p[i] <= 'Z' || p[i] >= 'a' && p[i] <= 'z') {
		i++
	}
	letters, digits := p[:i], p[i:]
	if letters == "" && digits == "" {
		return 0, 0, false
	}
	if letters != "" {
		c, err := excelize.ColumnNameToNumber(letters)
		if err != nil {
			return 0, 0, false
		}
		col = c
	}
	if digits != "" {
		r, err := strconv.Atoi(digits)
		if err != nil || r < 1 {
			return 0, 0, false
		}
		row = r
	}
	return col, row, true
}
