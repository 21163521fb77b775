package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/mohammadFeiz/cordova-react-vite/internal/naming"
)

//go:embed scaffolds
var scaffoldFS embed.FS

const scaffoldRoot = "scaffolds"

// Data holds all template variables available to scaffold templates.
type Data struct {
	DisplayName string // e.g., "Boxit Tracker"
	PackageName string // e.g., "boxit-tracker"
	NativeID    string // e.g., "ir.boxitsoft.boxittracker"
}

// NewData builds template data from derived identifiers.
func NewData(ids naming.Identifiers) *Data {
	return &Data{
		DisplayName: ids.DisplayName,
		PackageName: ids.PackageName,
		NativeID:    ids.NativeID,
	}
}

// File is one rendered output file.
type File struct {
	Path    string // Slash-separated, relative to the web app root
	Content []byte
}

// Render executes every template of the preset against data.
func Render(p *Preset, data *Data) ([]File, error) {
	files := make([]File, 0, len(p.Files))
	for _, spec := range p.Files {
		tmplPath := path.Join(scaffoldRoot, spec.Template)
		tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", spec.Template, err)
		}

		tmpl, err := template.New(path.Base(spec.Template)).Option("missingkey=error").Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", spec.Template, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", spec.Template, err)
		}

		files = append(files, File{Path: spec.Path, Content: buf.Bytes()})
	}
	return files, nil
}

// CordovaScript is the tag that loads the Cordova bridge in the web entry point.
const CordovaScript = `<script src="cordova.js"></script>`

// PatchIndexHTML inserts CordovaScript just before the first closing body tag.
// It reports false, leaving html unchanged, when cordova.js is already
// referenced or there is no </body>.
func PatchIndexHTML(html string) (string, bool) {
	if strings.Contains(html, "cordova.js") {
		return html, false
	}
	idx := strings.Index(html, "</body>")
	if idx < 0 {
		return html, false
	}
	return html[:idx] + "  " + CordovaScript + "\n" + html[idx:], true
}
