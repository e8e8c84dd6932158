package server

import (
	"net/http"
	"strconv"

	"github.com/soar/skinview/internal/skin"
)

// Assets exposes the images of the loaded skins under /assets/{id}. Only
// files referenced by a skin are reachable.
type Assets struct {
	paths []string
	ids   map[string]int
}

func NewAssets(skins []*skin.Skin) *Assets {
	a := &Assets{ids: make(map[string]int)}
	for _, s := range skins {
		for _, img := range s.Images() {
			if _, ok := a.ids[img.Path]; ok {
				continue
			}
			a.ids[img.Path] = len(a.paths)
			a.paths = append(a.paths, img.Path)
		}
	}
	return a
}

// URL returns the URL of the image at path, or "" when no skin uses it.
func (a *Assets) URL(path string) string {
	id, ok := a.ids[path]
	if !ok {
		return ""
	}
	return "/assets/" + strconv.Itoa(id)
}

func (a *Assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 0 || id >= len(a.paths) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "max-age=3600")
	http.ServeFile(w, r, a.paths[id])
}
