package templates

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Data carries template variables. Values are stringified with fmt.Sprint
// during substitution, so any scalar kind is acceptable.
type Data map[string]any

// Renderer resolves a named email template and substitutes variables into it.
type Renderer interface {
	RenderEmailTemplate(ctx context.Context, name string, data Data) (string, error)
}

// FSRenderer renders templates stored as <name>.html files in a file system.
//
// Substitution is deliberately simple: every {{key}} occurrence is replaced
// with the corresponding data value. Placeholders without a matching key stay
// in the output verbatim; data keys without a placeholder are ignored.
type FSRenderer struct {
	fsys fs.FS
}

// NewFSRenderer creates a renderer over an arbitrary fs.FS.
func NewFSRenderer(fsys fs.FS) *FSRenderer {
	return &FSRenderer{fsys: fsys}
}

// NewDirRenderer creates a renderer over a directory on disk.
func NewDirRenderer(dir string) *FSRenderer {
	return &FSRenderer{fsys: os.DirFS(dir)}
}

//go:embed defaults/*.html
var defaultsFS embed.FS

// NewDefaultRenderer creates a renderer over the embedded default templates
// (welcome, reminder, general).
func NewDefaultRenderer() *FSRenderer {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		// The embedded tree is fixed at compile time; failure here is a build defect.
		panic(err)
	}
	return &FSRenderer{fsys: sub}
}

func (r *FSRenderer) RenderEmailTemplate(ctx context.Context, name string, data Data) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	raw, err := fs.ReadFile(r.fsys, name+".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	rendered := string(raw)
	for key, value := range data {
		rendered = strings.ReplaceAll(rendered, "{{"+key+"}}", fmt.Sprint(value))
	}
	return rendered, nil
}
