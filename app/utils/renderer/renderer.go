package renderer

import (
	"github.com/unrolled/render"
)

func New(indent bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:    indent,
		UnEscapeHTML:  true,
		StreamingJSON: false,
	})
}
