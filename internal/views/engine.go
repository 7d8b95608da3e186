package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

// NewEngine returns the html engine over the embedded templates. Template
// names are paths relative to templates/ without the extension.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	return engine
}
