package latex

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/couchcryptid/forecast-report/internal/domain"
)

var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// Escape quotes LaTeX special characters so s typesets literally.
func Escape(s string) string {
	return escaper.Replace(s)
}

// lineBreaks folds source line breaks into spaces. A blank line inside a
// tabular cell or a \section argument ends the paragraph and aborts the engine.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func escapeInline(s string) string {
	return Escape(lineBreaks.Replace(s))
}

// columnSpec returns a centered, fully ruled tabular spec such as "|c|c|c|".
func columnSpec(n int) string {
	return "|" + strings.Repeat("c|", n)
}

func row(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeInline(c)
	}
	return strings.Join(escaped, " & ") + `\\`
}

var sourceTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"esc":     escapeInline,
	"colspec": columnSpec,
	"row":     row,
	"date":    func(t time.Time) string { return t.Format(time.DateOnly) },
}).Parse(`\documentclass{article}%
\usepackage[UTF8]{ctex}%
\usepackage[a4paper,margin=1in]{geometry}%
\title{ {{- esc .Title -}} }%
\author{ {{- esc .Author -}} }%
\date{ {{- date .GeneratedAt -}} }%
\begin{document}%
\maketitle%
\begin{center}%
{{- range .Sections}}
\section{ {{- esc .Title -}} }%
\begin{tabular}{ {{- colspec (len .Table.Headers) -}} }%
\hline%
{{row .Table.Headers}}%
\hline%
{{- range .Table.Rows}}
{{row .}}%
\hline%
{{- end}}
\end{tabular}%
{{- end}}
\end{center}%
\end{document}
`))

// WriteSource writes the LaTeX source for doc: a title page followed by one
// section and one ruled table per report section.
func WriteSource(w io.Writer, doc domain.ReportDocument) error {
	if err := sourceTmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	return nil
}
