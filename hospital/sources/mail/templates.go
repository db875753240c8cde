// hospital/sources/mail/templates.go
package mail

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

type templateSource struct {
	Subject string `yaml:"subject"`
	HTML    string `yaml:"html"`
}

type compiled struct {
	subject string
	html    *template.Template
}

// Templates is the parsed notification catalogue.
type Templates struct {
	byName map[string]compiled
}

func LoadTemplates() (*Templates, error) {
	return parseTemplates(templatesYAML)
}

func parseTemplates(raw []byte) (*Templates, error) {
	var src map[string]templateSource
	if err := yaml.Unmarshal(raw, &src); err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	t := &Templates{byName: make(map[string]compiled, len(src))}
	for name, s := range src {
		if s.Subject == "" || s.HTML == "" {
			return nil, fmt.Errorf("mail template %q: subject and html are required", name)
		}
		tpl, err := template.New(name).Option("missingkey=error").Parse(s.HTML)
		if err != nil {
			return nil, fmt.Errorf("mail template %q: %w", name, err)
		}
		t.byName[name] = compiled{subject: s.Subject, html: tpl}
	}
	return t, nil
}

func (t *Templates) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Render fills the named template; To is left for the caller.
func (t *Templates) Render(name string, data any) (Message, error) {
	c, ok := t.byName[name]
	if !ok {
		return Message{}, fmt.Errorf("mail template %q not found", name)
	}
	var buf bytes.Buffer
	if err := c.html.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render mail template %q: %w", name, err)
	}
	html := buf.String()
	text, err := PlainText(html)
	if err != nil {
		return Message{}, err
	}
	return Message{Subject: c.subject, HTML: html, Text: text}, nil
}

// PlainText turns an HTML body into the text alternative, one paragraph per block.
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse mail html: %w", err)
	}
	var parts []string
	doc.Find("p, li, h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		if line := strings.Join(strings.Fields(s.Text()), " "); line != "" {
			parts = append(parts, line)
		}
	})
	if len(parts) == 0 {
		return strings.Join(strings.Fields(doc.Text()), " "), nil
	}
	return strings.Join(parts, "\n\n"), nil
}
