package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"metricsreport/pkg/evaluator"
)

const reportCSS = `
body {
    font-family: Arial, sans-serif;
    font-size: 16px;
    line-height: 1.5;
}
h1, h2 {
    margin-top: 40px;
    margin-bottom: 20px;
}
table {
    border-collapse: collapse;
    margin-bottom: 40px;
}
th, td {
    border: 1px solid #ccc;
    padding: 8px;
}
th {
    background-color: #f2f2f2;
}
img {
    max-width: 100%;
    height: auto;
}
`

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
{{- if .CSS}}
<style>{{.CSS}}</style>
{{- end}}
</head>
<body>
<h1>Metrics Report</h1>
<h4>Type: {{.Task}}</h4>
<h2>Data info</h2>
<table>
<thead>
<tr><th>Info</th><th>Value</th></tr>
</thead>
<tbody>
{{- range .DataInfo}}
<tr><td>{{.Name}}</td><td>{{.Format}}</td></tr>
{{- end}}
</tbody>
</table>
<h2>Metrics</h2>
<p><b>threshold: {{.Threshold}}</b></p>
<table>
<thead>
<tr><th>Metric</th><th>Value</th></tr>
</thead>
<tbody>
{{- range .Metrics}}
<tr><td>{{.Name}}</td><td>{{.Format}}</td></tr>
{{- end}}
</tbody>
</table>
<h2>Plots</h2>
{{- range .Images}}
<p><img src="./plots/{{.}}"></p>
{{- end}}
</body>
</html>
`))

type reportData struct {
	CSS       template.CSS
	Task      string
	Threshold string
	DataInfo  evaluator.Metrics
	Metrics   evaluator.Metrics
	Images    []string
}

func renderHTML(data reportData) (string, error) {
	var b bytes.Buffer
	if err := reportTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("error rendering report: %w", err)
	}
	return b.String(), nil
}

var markdownConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(
			commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
		),
		table.NewTablePlugin(),
	),
)

func htmlToMarkdown(html string) (string, error) {
	markdown, err := markdownConverter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("error converting report to markdown: %w", err)
	}
	return markdown, nil
}
