package output

import (
	"errors"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ParseTemplate compiles text with the sprig function map.
func ParseTemplate(text string) (*template.Template, error) {
	if text == "" {
		return nil, errors.New("template output requires --template")
	}
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl, nil
}

// WriteTemplate renders text once with obj as dot. Commands pass their whole
// result list, so a template usually starts with {{range .}}.
func WriteTemplate(w io.Writer, text string, obj any) error {
	tmpl, err := ParseTemplate(text)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, obj); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}
