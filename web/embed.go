package web

import (
	"embed"
	"io/fs"
)

//go:embed static templates
var content embed.FS

// Static holds the stylesheet and scripts served under /static/.
var Static = sub("static")

// Templates holds the page templates.
var Templates = sub("templates")

func sub(dir string) fs.FS {
	f, err := fs.Sub(content, dir)
	if err != nil {
		panic("web: " + err.Error())
	}
	return f
}
