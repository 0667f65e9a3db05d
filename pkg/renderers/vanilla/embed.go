package vanilla

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*.css
var embeddedAssets embed.FS

// StylesheetName is the path of the default stylesheet inside AssetsFS.
const StylesheetName = "formstate.css"

// TemplatesFS exposes the embedded widget templates so callers can extend or
// copy them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the static assets that style the default templates so
// applications can serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/formstate/",
//	  http.StripPrefix("/formstate/",
//	    http.FileServerFS(vanilla.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// Stylesheet returns the default stylesheet.
func Stylesheet() (string, error) {
	data, err := fs.ReadFile(AssetsFS(), StylesheetName)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: read stylesheet: %w", err)
	}
	return string(data), nil
}
