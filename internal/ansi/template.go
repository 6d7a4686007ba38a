package ansi

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/relaypoint/telnetd/internal/app"
)

// TemplateData holds the data available to ANSI/art templates.
type TemplateData struct {
	Name     string
	Hostname string
	Version  string
	Custom   map[string]interface{}
}

// NewTemplateData creates a TemplateData struct populated with global
// config values.
func NewTemplateData() *TemplateData {
	return &TemplateData{
		Name:     app.Config.General.Name,
		Hostname: app.Config.General.Hostname,
		Version:  app.Version,
		Custom:   make(map[string]interface{}),
	}
}

// RenderTemplate parses and executes data as a Go template with Sprig's
// function set, injecting global config values plus any extra fields
// from the caller — most usefully the session's negotiated terminal
// fields, populated only after the corresponding telnet.OptionEvent has
// fired.
func RenderTemplate(data []byte, extra map[string]interface{}) ([]byte, error) {
	tmplData := NewTemplateData()
	for k, v := range extra {
		tmplData.Custom[k] = v
	}

	tmpl, err := template.New("ansi").Funcs(sprig.FuncMap()).Parse(string(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, tmplData); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
