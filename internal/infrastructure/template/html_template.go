// Package template sustituye el payload de la factura en la plantilla HTML del
// documento, usada tanto para la vista previa como para el motor HTML→PDF.
package template

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/jhoicas/invoice-builder/internal/application/binding"
)

//go:embed invoice-template.html
var defaultTemplate string

const templateName = "invoice"

var funcs = template.FuncMap{
	"logoURL": logoURL,
}

// HTMLTemplate implementa billing.TemplateRenderer con html/template.
// Con path vacío usa la plantilla embebida; si no, lee el archivo en cada
// render, de modo que un archivo ausente o inválido es un error de render.
type HTMLTemplate struct {
	path     string
	embedded *template.Template
}

// NewHTMLTemplate construye el renderer. path puede ser vacío.
func NewHTMLTemplate(path string) (*HTMLTemplate, error) {
	t := &HTMLTemplate{path: path}
	if path == "" {
		tpl, err := parse(defaultTemplate)
		if err != nil {
			return nil, fmt.Errorf("template: plantilla embebida: %w", err)
		}
		t.embedded = tpl
	}
	return t, nil
}

// RenderHTML ejecuta la plantilla con el payload.
func (t *HTMLTemplate) RenderHTML(data binding.DataBinding) (string, error) {
	tpl, err := t.load()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template: ejecutar: %w", err)
	}
	return buf.String(), nil
}

func (t *HTMLTemplate) load() (*template.Template, error) {
	if t.embedded != nil {
		return t.embedded, nil
	}
	raw, err := os.ReadFile(t.path)
	if err != nil {
		return nil, fmt.Errorf("template: leer %s: %w", t.path, err)
	}
	tpl, err := parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("template: parsear %s: %w", t.path, err)
	}
	return tpl, nil
}

func parse(src string) (*template.Template, error) {
	return template.New(templateName).Funcs(funcs).Option("missingkey=error").Parse(src)
}

// logoURL acepta http(s) y data URIs de imagen; cualquier otro valor se descarta.
func logoURL(s string) template.URL {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return template.URL(s)
	case strings.HasPrefix(lower, "data:image/"):
		return template.URL(s)
	}
	return ""
}
