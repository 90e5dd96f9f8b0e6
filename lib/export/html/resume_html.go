package htmlexport

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	resumeapimodels "cvforge-backend/models/api/resume"

	"github.com/pkg/errors"
)

const resumeTemplate = `<html>
  <head>
    <title>Resume - {{if .R.Name}}{{.R.Name}}{{else}}Resume{{end}}</title>
    <style>
      body{font-family: Arial, Helvetica, sans-serif;padding:20px;color:#111}
      .header{display:flex;justify-content:space-between}
      h1{margin:0}
    </style>
  </head>
  <body>
    <div class="header"><h1>{{.R.Name}}</h1><div>{{.R.Email}}<br/>{{.R.Phone}}</div></div>
    <h3>{{.R.Title}}</h3>
    <p>{{.R.Summary}}</p>
    <h4>Experience</h4>
    {{range .R.Experience}}<div><strong>{{.Role}}</strong> — {{.Company}} <div>{{.Period}}</div><div>{{.Details}}</div></div>{{end}}
    <h4>Education</h4>
    {{range .R.Education}}<div>{{.Degree}} — {{.School}} ({{.Year}})</div>{{end}}
    <h4>Skills</h4>
    <div>{{.Skills}}</div>
    <script>{{.PrintScript}}</script>
  </body>
</html>
`

var tpl = template.Must(template.New("resume").Parse(resumeTemplate))

type tplData struct {
	R           resumeapimodels.Resume
	Skills      string
	PrintScript template.JS
}

// RenderResume builds the standalone print-ready document. All user text
// is escaped by html/template; the page opens the print dialog on its own
// after printDelayMs.
func RenderResume(r resumeapimodels.Resume, skills []string, printDelayMs int) ([]byte, error) {
	if printDelayMs < 0 {
		printDelayMs = 0
	}
	buf := new(bytes.Buffer)
	err := tpl.Execute(buf, tplData{
		R:           r,
		Skills:      strings.Join(skills, ", "),
		PrintScript: template.JS(fmt.Sprintf("setTimeout(()=>{window.print();},%d)", printDelayMs)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "render resume html")
	}
	return buf.Bytes(), nil
}
