// Package templates resolves named email templates and performs placeholder
// substitution.
//
// Templates are plain HTML files addressed by name ("welcome" resolves to
// welcome.html). Substitution replaces {{key}} placeholders with caller data;
// it is not a programming language, by contract with the services that author
// these templates. A renderer can be backed by any fs.FS - the embedded
// defaults, a directory on disk, or a test fixture:
//
//	r := templates.NewDefaultRenderer()
//	html, err := r.RenderEmailTemplate(ctx, "welcome", templates.Data{
//	    "userName": "Ana",
//	    "appUrl":   "https://app.example.com",
//	})
package templates
