// Package source is the registry of input-source types a skin may declare
// in its "type" attribute. Each source knows how to open the reader that
// produces controller states for it.
package source

import (
	"fmt"
	"sort"

	"github.com/soar/skinview/internal/controller"
)

// Options carries the device settings readers may need.
type Options struct {
	SerialPort     string
	SerialBaud     int
	KeyboardDevice string
	Debug          bool

	// AfterInit, when set, runs once a reader's device layer is up.
	AfterInit func()
}

// OpenFunc creates a reader for a source.
type OpenFunc func(opts Options) (controller.Reader, error)

// Source is one input-source type, keyed by the tag used in skin.xml.
type Source struct {
	Tag  string
	Name string
	Open OpenFunc
}

func (s *Source) String() string {
	return s.Tag
}

// Registry resolves tags to sources.
type Registry struct {
	sources map[string]*Source
}

func NewRegistry(sources ...*Source) *Registry {
	r := &Registry{sources: make(map[string]*Source)}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

// Register adds s, replacing any source with the same tag.
func (r *Registry) Register(s *Source) {
	r.sources[s.Tag] = s
}

// Lookup returns the source for tag.
func (r *Registry) Lookup(tag string) (*Source, bool) {
	s, ok := r.sources[tag]
	return s, ok
}

// Tags returns all registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.sources))
	for t := range r.sources {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Open opens the reader for tag.
func (r *Registry) Open(tag string, opts Options) (controller.Reader, error) {
	s, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("source: unknown type %q", tag)
	}
	if s.Open == nil {
		return nil, fmt.Errorf("source: type %q has no reader", tag)
	}
	return s.Open(opts)
}
