package server

import (
	"bytes"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/svg"
)

var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".svg":  "image/svg+xml",
}

type staticFile struct {
	data        []byte
	contentType string
}

// staticFiles serves the frontend from memory, minified once at startup.
type staticFiles struct {
	files   map[string]staticFile
	modTime time.Time
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]json$"), json.Minify)
	return m
}

func loadStatic(fsys fs.FS) (*staticFiles, error) {
	m := newMinifier()
	sf := &staticFiles{files: make(map[string]staticFile), modTime: time.Now()}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}

		ext := strings.ToLower(path.Ext(p))
		contentType := mime.TypeByExtension(ext)
		if mt, ok := mediaTypes[ext]; ok {
			if data, err = m.Bytes(mt, data); err != nil {
				return fmt.Errorf("minify %s: %w", p, err)
			}
			contentType = mt + "; charset=utf-8"
		}
		sf.files["/"+p] = staticFile{data: data, contentType: contentType}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("server: load frontend: %w", err)
	}
	return sf, nil
}

func (sf *staticFiles) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	if strings.HasSuffix(p, "/") {
		p += "index.html"
	}
	f, ok := sf.files[p]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if f.contentType != "" {
		w.Header().Set("Content-Type", f.contentType)
	}
	http.ServeContent(w, r, p, sf.modTime, bytes.NewReader(f.data))
}
