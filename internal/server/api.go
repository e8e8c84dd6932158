package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/soar/skinview/internal/preview"
	"github.com/soar/skinview/internal/skin"
)

const previewSize = 320

type skinInfo struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Type        string   `json:"type"`
	Backgrounds []string `json:"backgrounds"`
	Preview     string   `json:"preview"`
	Active      bool     `json:"active"`
}

type skinsResponse struct {
	Skins  []skinInfo `json:"skins"`
	Errors []string   `json:"errors"`
}

// catalog serves the scan results and their thumbnails.
type catalog struct {
	results skin.Results
	active  string // Key of the skin on screen

	mu       sync.Mutex
	previews map[string][]byte
}

func newCatalog(res skin.Results, active string) *catalog {
	return &catalog{results: res, active: active, previews: make(map[string][]byte)}
}

func (c *catalog) handleSkins(w http.ResponseWriter, r *http.Request) {
	resp := skinsResponse{Skins: []skinInfo{}, Errors: []string{}}
	for i, s := range c.results.Skins {
		info := skinInfo{
			ID:      i,
			Name:    s.Name,
			Author:  s.Author,
			Preview: "/api/skins/" + strconv.Itoa(i) + "/preview.webp",
			Active:  s.Key() == c.active,
		}
		if s.Type != nil {
			info.Type = s.Type.Tag
		}
		for _, bg := range s.Backgrounds {
			info.Backgrounds = append(info.Backgrounds, bg.Name)
		}
		resp.Skins = append(resp.Skins, info)
	}
	for _, e := range c.results.Errors {
		resp.Errors = append(resp.Errors, e.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error writing skin list: %v", err)
	}
}

func (c *catalog) handlePreview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 0 || id >= len(c.results.Skins) {
		http.NotFound(w, r)
		return
	}
	s := c.results.Skins[id]
	background := r.URL.Query().Get("background")

	data, err := c.preview(s, background)
	if err != nil {
		log.Printf("Preview of %s failed: %v", s.Key(), err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Cache-Control", "max-age=3600")
	w.Write(data)
}

func (c *catalog) preview(s *skin.Skin, background string) ([]byte, error) {
	key := s.Dir + "\x00" + background
	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.previews[key]; ok {
		return data, nil
	}
	img, err := preview.Render(s, background, previewSize)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := preview.WebP(&buf, img); err != nil {
		return nil, err
	}
	c.previews[key] = buf.Bytes()
	return buf.Bytes(), nil
}
