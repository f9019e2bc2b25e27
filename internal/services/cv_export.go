package services

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
)

//go:embed templates/cv_export.html
var cvTemplateFS embed.FS

var cvExportTemplate = template.Must(template.ParseFS(cvTemplateFS, "templates/cv_export.html"))

var templateAccents = map[string]string{
	"classic": "#1f3a5f",
	"modern":  "#0f766e",
	"minimal": "#3e4c59",
}

// cvDocument is the printable view of the CV's JSON data. Unknown fields are ignored.
type cvDocument struct {
	Title    string `json:"-"`
	Accent   string `json:"-"`
	Personal struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		City     string `json:"city"`
		Headline string `json:"headline"`
	} `json:"personal"`
	Summary    string `json:"summary"`
	Experience []struct {
		Company     string `json:"company"`
		Position    string `json:"position"`
		Start       string `json:"start"`
		End         string `json:"end"`
		Description string `json:"description"`
	} `json:"experience"`
	Education []struct {
		School string `json:"school"`
		Degree string `json:"degree"`
		Field  string `json:"field"`
		Start  string `json:"start"`
		End    string `json:"end"`
	} `json:"education"`
	Skills    []string `json:"skills"`
	Languages []struct {
		Name  string `json:"name"`
		Level string `json:"level"`
	} `json:"languages"`
	Certificates []struct {
		Name   string `json:"name"`
		Issuer string `json:"issuer"`
		Year   string `json:"year"`
	} `json:"certificates"`
}

// renderCVHTML turns CV data into a standalone printable HTML page.
func renderCVHTML(title, tmpl string, data []byte) ([]byte, error) {
	var doc cvDocument
	if len(data) > 0 {
		// Fields of an unexpected shape are skipped; the rest still renders.
		var typeErr *json.UnmarshalTypeError
		if err := json.Unmarshal(data, &doc); err != nil && !errors.As(err, &typeErr) {
			return nil, err
		}
	}
	doc.Title = title
	doc.Accent = templateAccents[tmpl]
	if doc.Accent == "" {
		doc.Accent = templateAccents["classic"]
	}

	var buf bytes.Buffer
	if err := cvExportTemplate.Execute(&buf, &doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
