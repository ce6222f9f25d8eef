package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LoadXLSX reads one worksheet of a .xlsx workbook into a Table. The first row is the header.
// If opt.SheetName is empty and opt.SheetIndex <= 0, the first sheet is used.
// Numeric cells stay numeric so spreadsheet date serials reach the engine as numbers.
func LoadXLSX(path string, opt Options) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	wb := workbook{zr: zr, name: filepath.Base(path)}

	part, err := wb.sheetPart(opt)
	if err != nil {
		return nil, err
	}
	rows := newRowStream(wb.part(part), sharedStrings(wb.part("xl/sharedStrings.xml")))
	first, ok := rows.Next()
	if !ok || len(first) == 0 {
		return &Table{Name: wb.name}, nil
	}
	header := make([]string, len(first))
	for i, c := range first {
		header[i] = c.String()
	}
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	var records [][]Cell
	for len(records) < maxRows {
		row, ok := rows.Next()
		if !ok {
			break
		}
		records = append(records, row)
	}
	return NewTable(wb.name, header, records), nil
}

type workbook struct {
	zr   *zip.Reader
	name string
}

type sheetEntry struct {
	name string
	id   int
	rel  string
}

// part returns the bytes of a zip entry, or nil when it is missing or unreadable.
func (w workbook) part(name string) []byte {
	for _, f := range w.zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return b
	}
	return nil
}

// sheets lists the workbook's sheets in declaration order.
func (w workbook) sheets() []sheetEntry {
	var out []sheetEntry
	walkXML(w.part("xl/workbook.xml"), func(se xml.StartElement) {
		if se.Name.Local != "sheet" {
			return
		}
		a := attrs(se)
		out = append(out, sheetEntry{name: a["name"], id: atoiSafe(a["sheetId"]), rel: a["id"]})
	})
	return out
}

// targets maps relationship ids to zip entry names.
func (w workbook) targets() map[string]string {
	out := map[string]string{}
	walkXML(w.part("xl/_rels/workbook.xml.rels"), func(se xml.StartElement) {
		if se.Name.Local != "Relationship" {
			return
		}
		a := attrs(se)
		if a["Id"] != "" && a["Target"] != "" {
			out[a["Id"]] = normalizeRelPath(a["Target"])
		}
	})
	return out
}

// sheetPart resolves the worksheet entry selected by opt. A name that matches no
// sheet is an error listing the available names; an index falls back to the
// conventional sheetN.xml entry.
func (w workbook) sheetPart(opt Options) (string, error) {
	sheets, targets := w.sheets(), w.targets()
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s.name, opt.SheetName) && targets[s.rel] != "" {
				return targets[s.rel], nil
			}
		}
		names := make([]string, len(sheets))
		for i, s := range sheets {
			names[i] = s.name
		}
		return "", fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
			opt.SheetName, w.name, strings.Join(names, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	for _, s := range sheets {
		if s.id == idx && targets[s.rel] != "" {
			return targets[s.rel], nil
		}
	}
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", idx), nil
}

// walkXML calls fn for every start element in data. Decoding stops quietly at
// the first error, which for a well-formed part is io.EOF.
func walkXML(data []byte, fn func(xml.StartElement)) {
	if len(data) == 0 {
		return
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		if se, ok := tok.(xml.StartElement); ok {
			fn(se)
		}
	}
}

// attrs indexes an element's attributes by local name, so r:id reads as "id".
func attrs(se xml.StartElement) map[string]string {
	m := make(map[string]string, len(se.Attr))
	for _, a := range se.Attr {
		m[a.Name.Local] = a.Value
	}
	return m
}

// richText is the body shared by <si> and <is>: plain <t> or runs of <r><t>.
type richText struct {
	T    string `xml:"t"`
	Runs []struct {
		T string `xml:"t"`
	} `xml:"r"`
}

func (rt richText) String() string {
	if len(rt.Runs) == 0 {
		return rt.T
	}
	var sb strings.Builder
	sb.WriteString(rt.T)
	for _, r := range rt.Runs {
		sb.WriteString(r.T)
	}
	return sb.String()
}

func sharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var sst struct {
		Items []richText `xml:"si"`
	}
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil
	}
	out := make([]string, len(sst.Items))
	for i, si := range sst.Items {
		out[i] = si.String()
	}
	return out
}

type sheetCell struct {
	Ref    string   `xml:"r,attr"`
	Type   string   `xml:"t,attr"`
	Value  string   `xml:"v"`
	Inline richText `xml:"is"`
}

// rowStream decodes one <row> at a time so large sheets are never held as a tree.
type rowStream struct {
	dec    *xml.Decoder
	shared []string
}

func newRowStream(data []byte, shared []string) *rowStream {
	return &rowStream{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

// Next returns the next row with cells placed by their column reference. Gaps
// and missing cells are Null.
func (r *rowStream) Next() ([]Cell, bool) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, false
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "row" {
			continue
		}
		var row struct {
			Cells []sheetCell `xml:"c"`
		}
		if err := r.dec.DecodeElement(&row, &se); err != nil {
			return nil, false
		}
		var out []Cell
		for _, c := range row.Cells {
			col := len(out)
			if c.Ref != "" {
				col = max(colIndexFromRef(c.Ref), 0)
			}
			for len(out) <= col {
				out = append(out, Null())
			}
			out[col] = r.cell(c)
		}
		return out, true
	}
}

func (r *rowStream) cell(c sheetCell) Cell {
	if c.Type == "inlineStr" {
		return textCell(c.Inline.String())
	}
	return typedCell(c.Type, c.Value, r.shared)
}

// typedCell converts a raw <v> by its t attribute: shared and inline strings
// become text, b is boolean, e is Null, d is an ISO date and untyped values are numbers.
func typedCell(typ, val string, shared []string) Cell {
	val = strings.TrimSpace(val)
	switch typ {
	case "s":
		if idx := atoiSafe(val); val != "" && idx < len(shared) {
			return textCell(shared[idx])
		}
		return Null()
	case "str", "inlineStr":
		return textCell(val)
	case "b":
		return Bool(val == "1")
	case "e":
		return Null()
	case "d":
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, val); err == nil {
				return Date(t)
			}
		}
		return textCell(val)
	}
	if val == "" {
		return Null()
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return Number(f)
	}
	return textCell(val)
}

// colIndexFromRef maps refs like "C12" to a 0-based column index.
func colIndexFromRef(ref string) int {
	idx := 0
	for _, c := range strings.ToUpper(ref) {
		if c < 'A' || c > 'Z' {
			break
		}
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// normalizeRelPath converts relationship targets to zip entry names. Targets may carry a
// leading slash ("/xl/worksheets/sheet1.xml") that zip entries do not.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return "xl/" + rel
}
