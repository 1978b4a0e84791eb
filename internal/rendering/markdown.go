package rendering

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/jonathan/resume-formatter/internal/types"
)

//go:embed resume.md.tmpl
var markdownTemplate string

var resumeTmpl = template.Must(template.New("resume.md").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(markdownTemplate))

// Markdown renders the human-readable companion document for a normalized
// record. Sections with no content are omitted entirely.
func Markdown(record types.NormalizedRecord) (string, error) {
	var out strings.Builder
	if err := resumeTmpl.Execute(&out, record); err != nil {
		return "", &TemplateError{
			Message: "failed to execute resume template",
			Cause:   err,
		}
	}
	return out.String(), nil
}
