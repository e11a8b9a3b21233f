package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"text/template"
)

// The narrative is rendered from the same RunReport the JSON snapshot is
// marshaled from. Map iteration in text/template is key-sorted, which keeps
// artifact sections in the same stable order as the discovery walk.
var narrativeTmpl = template.Must(template.New("narrative").Funcs(template.FuncMap{
	"base": filepath.Base,
	"join": func(names []string) string {
		if len(names) == 0 {
			return "none"
		}
		return strings.Join(names, ", ")
	},
}).Parse(`================================================================================
FORENSIC EXAMINATION REPORT
SQLite database files
================================================================================

Analysis date:      {{.AnalysisDate}}
Examined directory: {{.Directory}}
Report directory:   {{.OutputDirectory}}
Files discovered:   {{.TotalFiles}}
{{range $path, $art := .Databases}}
--------------------------------------------------------------------------------
FILE: {{base $path}}
--------------------------------------------------------------------------------
{{- if $art.Err}}

ERROR: {{$art.Err}}
{{- else}}

1. FILE METADATA
   Full path:  {{$art.Metadata.FullPath}}
   Size:       {{$art.Metadata.SizeMB}} MB ({{$art.Metadata.SizeBytes}} bytes)
   Created:    {{$art.Metadata.Created}}
   Modified:   {{$art.Metadata.Modified}}
   Accessed:   {{$art.Metadata.Accessed}}
   MD5:        {{$art.Metadata.MD5}}
   SHA-1:      {{$art.Metadata.SHA1}}
   SHA-256:    {{$art.Metadata.SHA256}}

2. INTEGRITY CHECK
   Result: {{$art.Integrity}}

3. DATABASE STRUCTURE
{{- if $art.Structure.Err}}
   Error: {{$art.Structure.Err}}
{{- else}}
   SQLite version: {{$art.Structure.SQLiteVersion}}
   Tables:         {{$art.Structure.TableCount}}
{{- range $table := $art.Structure.Tables}}
{{- with index $art.Structure.TableInfo $table}}
{{- if .Err}}
   - {{$table}}: error: {{.Err}}
{{- else}}
   - {{$table}}: {{.RowCount}} rows, {{len .Columns}} columns
{{- end}}
{{- end}}
{{- end}}
   Indexes:  {{join $art.Structure.Indexes}}
   Triggers: {{join $art.Structure.Triggers}}
{{- end}}

4. FREE-SPACE SIGNAL
{{- if $art.FreeSpace.Err}}
   Error: {{$art.FreeSpace.Err}}
{{- else}}
   Freelist pages: {{$art.FreeSpace.FreelistPages}}
   Note: {{$art.FreeSpace.Note}}
{{- end}}
{{- end}}
{{end}}`))

// RenderNarrative produces the human-readable report: a run header followed
// by one section per artifact in fixed order (metadata, integrity,
// structure, free space).
func RenderNarrative(rep *RunReport) (string, error) {
	var buf bytes.Buffer
	if err := narrativeTmpl.Execute(&buf, rep); err != nil {
		return "", err
	}
	return buf.String(), nil
}
