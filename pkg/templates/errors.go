package templates

import "errors"

var (
	// ErrTemplateNotFound indicates the named template could not be located.
	ErrTemplateNotFound = errors.New("templates: template not found")
	// ErrRenderFailed indicates the template was found but could not be rendered.
	ErrRenderFailed = errors.New("templates: render failed")
)
