package parser

import (
	"bytes"
	"encoding/xml"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const defaultWorkbookPath = "xl/workbook.xml"

// sheetScan is the physical structure of a worksheet part.
type sheetScan struct {
	physical int
	extents  []int
	formulas []cellPos
}

// scanSheetXML walks the sheetData of a worksheet part, recording every <c>
// element whether or not it holds a value. A row counts as physical once it
// holds a cell; empty <row> elements only carry formatting.
func scanSheetXML(data []byte, charset func(string, io.Reader) (io.Reader, error)) (sheetScan, error) {
	var scan sheetScan
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset

	inSheetData := false
	row, col := 0, 0
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return scan, nil
		}
		if err != nil {
			return scan, err
		}

		switch se := token.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "sheetData":
				inSheetData = true
			case "row":
				if !inSheetData {
					continue
				}
				row++
				if r, ok := intAttr(se.Attr, "r"); ok {
					row = r
				}
				col = 0
			case "c":
				if !inSheetData || row == 0 {
					continue
				}
				col++
				if ref := attr(se.Attr, "r"); ref != "" {
					c, _, err := excelize.CellNameToCoordinates(ref)
					if err != nil {
						return scan, err
					}
					col = c
				}
				for len(scan.extents) < row {
					scan.extents = append(scan.extents, 0)
				}
				if scan.extents[row-1] == 0 {
					scan.physical++
				}
				if col > scan.extents[row-1] {
					scan.extents[row-1] = col
				}
			case "f":
				if inSheetData && row > 0 && col > 0 {
					scan.formulas = append(scan.formulas, cellPos{row: row - 1, col: col - 1})
				}
			}
		case xml.EndElement:
			if se.Name.Local == "sheetData" {
				return scan, nil
			}
		}
	}
}

// sheetPaths maps sheet names to their worksheet part paths.
func sheetPaths(f *excelize.File) map[string]string {
	wbPath := workbookPath(f)
	baseDir := path.Dir(wbPath)
	relsPath := path.Join(baseDir, "_rels", path.Base(wbPath)+".rels")

	sheetsInfo := parseWorkbookSheets(partBytes(f, wbPath))
	return parseWorkbookRels(partBytes(f, relsPath), sheetsInfo, baseDir)
}

// workbookPath resolves the workbook part from the package relationships.
func workbookPath(f *excelize.File) string {
	decoder := xml.NewDecoder(bytes.NewReader(partBytes(f, "_rels/.rels")))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			if strings.HasSuffix(attr(se.Attr, "Type"), "/officeDocument") {
				return strings.TrimPrefix(attr(se.Attr, "Target"), "/")
			}
		}
	}
	return defaultWorkbookPath
}

func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			name, rID := attr(se.Attr, "name"), attr(se.Attr, "id")
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}

func parseWorkbookRels(data []byte, sheetsInfo map[string]string, baseDir string) map[string]string {
	result := make(map[string]string) // sheet name -> part path
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			if sheetName, ok := sheetsInfo[attr(se.Attr, "Id")]; ok {
				result[sheetName] = resolvePartPath(attr(se.Attr, "Target"), baseDir)
			}
		}
	}

	return result
}

func resolvePartPath(target, baseDir string) string {
	target = strings.ReplaceAll(target, "\\", "/")
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// partBytes returns the in-memory content of a package part.
func partBytes(f *excelize.File, name string) []byte {
	if name == "" {
		return nil
	}
	if content, ok := f.Pkg.Load(name); ok {
		if data, ok := content.([]byte); ok {
			return data
		}
	}
	return nil
}

func attr(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func intAttr(attrs []xml.Attr, local string) (int, bool) {
	v := attr(attrs, local)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
