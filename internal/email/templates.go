package email

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const layoutName = "layout"

// TemplateManager renders the html email templates. Every template is parsed together with the shared layout.
type TemplateManager struct {
	layout    string
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager loads the embedded templates.
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}

	layout, err := embeddedTemplates.ReadFile("templates/" + layoutName + ".html")
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	tm.layout = string(layout)

	err = fs.WalkDir(embeddedTemplates, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := embeddedTemplates.ReadFile(path)
		if err != nil {
			return err
		}
		return tm.addFile(path, content)
	})
	if err != nil {
		return nil, err
	}
	return tm, nil
}

func (tm *TemplateManager) addFile(path string, content []byte) error {
	name := strings.TrimSuffix(filepath.Base(path), ".html")
	if name == layoutName {
		return nil
	}
	if err := tm.AddTemplate(name, string(content)); err != nil {
		return fmt.Errorf("failed to add template %s: %w", name, err)
	}
	return nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(tm.layout)
	if err != nil {
		return fmt.Errorf("failed to parse layout: %w", err)
	}
	if _, err := tpl.Parse(templateStr); err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

// LoadTemplates overrides embedded templates with *.html files from dirPath.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}
		return tm.addFile(path, content)
	})
}

func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}
	return names
}
