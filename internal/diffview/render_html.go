package diffview

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"textdiff/internal/textdiff"
)

// RenderHTML renders rows as a standalone HTML document. All diffed text is escaped and the document contains no
// scripts or event handlers, so it can be displayed as passive markup.
func RenderHTML(rows []Row, doc DocInfo) string {
	doc.Theme = doc.Theme.orDefault()
	page := htmlPage{
		Title:     doc.title(),
		CSS:       template.CSS(styleSheet(doc.Theme)),
		Unified:   doc.Mode == ModeUnified,
		ModeName:  doc.Mode.String(),
		Stats:     doc.Stats,
		TooLarge:  doc.TooLarge,
		NoChanges: !doc.TooLarge && !doc.Changed,
		Size:      doc.Size,
		Limit:     doc.Limit,
	}
	if !page.TooLarge && !page.NoChanges {
		page.Rows = make([]htmlRow, 0, len(rows))
		for _, r := range rows {
			page.Rows = append(page.Rows, newHTMLRow(r))
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return fmt.Sprintf("<!DOCTYPE html><html><body><pre>%s</pre></body></html>", template.HTMLEscapeString(err.Error()))
	}
	return buf.String()
}

type htmlPage struct {
	Title     string
	CSS       template.CSS
	Unified   bool
	ModeName  string
	Stats     textdiff.Stats
	TooLarge  bool
	NoChanges bool
	Size      int
	Limit     int
	Rows      []htmlRow
}

type htmlCell struct {
	Num      string
	Marker   string
	Segments []segment
	NoEOL    bool
	Empty    bool
}

type htmlRow struct {
	Class        string
	UnifiedClass string
	Gap          string
	// Old and New are the side-by-side cells; Line is the unified cell.
	Old, New, Line htmlCell
	OldNum, NewNum string
}

func newHTMLRow(r Row) htmlRow {
	if r.Kind == RowGap {
		return htmlRow{Class: "gap", Gap: gapLabel(r.Hidden)}
	}
	h := htmlRow{Class: r.Kind.String()}
	h.Old = htmlCell{Empty: true}
	h.New = htmlCell{Empty: true}
	if r.OldLine != nil {
		h.OldNum = strconv.Itoa(*r.OldLine)
		h.Old = htmlCell{Num: h.OldNum, Marker: oldMarker(r.Kind), Segments: segments(r.OldText, r.OldSpans, r.Kind), NoEOL: r.OldNoEOL}
	}
	if r.NewLine != nil {
		h.NewNum = strconv.Itoa(*r.NewLine)
		h.New = htmlCell{Num: h.NewNum, Marker: newMarker(r.Kind), Segments: segments(r.NewText, r.NewSpans, r.Kind), NoEOL: r.NewNoEOL}
	}

	// A unified row shows one side: the old one unless the row only has a new line.
	h.UnifiedClass = h.Class
	switch {
	case r.Kind == RowContext:
		h.Line = h.New
		h.Line.Marker = " "
	case r.OldLine != nil:
		h.Line = h.Old
		h.UnifiedClass += " old-side"
	default:
		h.Line = h.New
		h.UnifiedClass += " new-side"
	}
	return h
}

func oldMarker(k RowKind) string {
	if k == RowRemoved || k == RowModified {
		return "-"
	}
	return " "
}

func newMarker(k RowKind) string {
	if k == RowAdded || k == RowModified {
		return "+"
	}
	return " "
}

const noEOLGlyph = "⏎̸"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<div class="textdiff mode-{{.ModeName}}">
<div class="td-header">
<span class="td-title">{{.Title}}</span>
<span class="td-stats"><span class="td-add">+{{.Stats.Additions}}</span> <span class="td-del">-{{.Stats.Deletions}}</span></span>
</div>
<div class="td-legend">
<span class="td-key added">+ added</span>
<span class="td-key removed">- removed</span>
<span class="td-key modified">~ modified <span class="td-chg">changed</span></span>
<span class="td-key context">unchanged</span>
<span class="td-key gap">&#8943; hidden</span>
</div>
{{- if .TooLarge}}
<div class="td-panel">Diff too large to render in full: {{.Size}} bytes exceed the limit of {{.Limit}} bytes.</div>
{{- else if .NoChanges}}
<div class="td-panel">No differences found</div>
{{- else if .Unified}}
<table class="td-table td-unified">
{{- range .Rows}}
{{- if .Gap}}
<tr class="gap"><td class="td-num"></td><td class="td-num"></td><td class="td-code" colspan="2">&#8943; {{.Gap}}</td></tr>
{{- else}}
<tr class="{{.UnifiedClass}}"><td class="td-num">{{.OldNum}}</td><td class="td-num">{{.NewNum}}</td><td class="td-marker">{{.Line.Marker}}</td><td class="td-code">{{template "code" .Line}}</td></tr>
{{- end}}
{{- end}}
</table>
{{- else}}
<table class="td-table td-split">
{{- range .Rows}}
{{- if .Gap}}
<tr class="gap"><td class="td-num"></td><td class="td-code" colspan="2">&#8943; {{.Gap}}</td><td class="td-num"></td><td class="td-code" colspan="2">&#8943; {{.Gap}}</td></tr>
{{- else}}
<tr class="{{.Class}}">{{template "cell" .Old}}{{template "cell" .New}}</tr>
{{- end}}
{{- end}}
</table>
{{- end}}
</div>
</body>
</html>
{{define "cell"}}{{if .Empty}}<td class="td-num td-empty"></td><td class="td-marker td-empty"></td><td class="td-code td-empty"></td>{{else}}<td class="td-num">{{.Num}}</td><td class="td-marker">{{.Marker}}</td><td class="td-code">{{template "code" .}}</td>{{end}}{{end}}
{{define "code"}}{{range .Segments}}{{if .Changed}}<span class="td-chg">{{.Text}}</span>{{else}}{{.Text}}{{end}}{{end}}{{if .NoEOL}}<span class="td-noeol" title="No newline at end of file">` + noEOLGlyph + `</span>{{end}}{{end}}
`))

func styleSheet(t Theme) string {
	return fmt.Sprintf(`body{margin:0;background:%[1]s;color:%[4]s;font-family:ui-monospace,SFMono-Regular,Menlo,Consolas,monospace;font-size:12px}
.textdiff{background:%[1]s;color:%[4]s}
.td-header{display:flex;justify-content:space-between;padding:6px 10px;background:%[2]s;border-bottom:1px solid %[3]s}
.td-title{font-weight:bold}
.td-add{color:%[8]s}
.td-del{color:%[9]s}
.td-legend{padding:4px 10px;color:%[5]s;border-bottom:1px solid %[3]s}
.td-key{margin-right:12px;padding:0 4px}
.td-key.added{background:%[10]s}
.td-key.removed{background:%[11]s}
.td-key.modified{background:%[14]s}
.td-key.modified .td-chg{background:%[13]s}
.td-key.gap{color:%[5]s;font-style:italic}
.td-panel{padding:24px;text-align:center;color:%[5]s;background:%[2]s}
.td-table{width:100%%;border-collapse:collapse;table-layout:auto}
.td-table td{padding:0 6px;vertical-align:top;white-space:pre}
.td-num{color:%[6]s;text-align:right;user-select:none;width:1%%}
.td-marker{color:%[6]s;user-select:none;width:1%%}
.td-code{white-space:pre;tab-size:4}
tr.added td{background:%[10]s}
tr.added .td-marker{color:%[8]s}
tr.removed td{background:%[11]s}
tr.removed .td-marker{color:%[9]s}
tr.modified td{background:%[14]s}
.td-unified tr.modified.old-side .td-chg{background:%[13]s}
.td-unified tr.modified.new-side .td-chg{background:%[12]s}
.td-split tr.modified td:nth-child(3) .td-chg{background:%[13]s}
.td-split tr.modified td:nth-child(6) .td-chg{background:%[12]s}
.td-chg{border-radius:2px}
tr.gap td{background:%[2]s;color:%[5]s;font-style:italic;text-align:center}
.td-split td.td-empty{background:%[2]s}
.td-split tr.added td:nth-child(-n+3){background:%[2]s}
.td-split tr.removed td:nth-child(n+4){background:%[2]s}
.td-noeol{color:%[7]s;margin-left:4px}
`,
		t.Background, t.Panel, t.Border, t.Text, t.Muted, t.LineNumber, t.Accent,
		t.AddedText, t.RemovedText, t.AddedBg, t.RemovedBg, t.AddedHighlight, t.RemovedHighlight, t.ModifiedBg)
}
