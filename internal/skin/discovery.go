package skin

import (
	"log"
	"os"
	"path/filepath"
)

// LoadError records a skin folder that failed to load.
type LoadError struct {
	Dir string
	Err error
}

func (e LoadError) Error() string {
	return e.Dir + " :: " + e.Err.Error()
}

func (e LoadError) Unwrap() error {
	return e.Err
}

// Results is the outcome of a batch scan.
type Results struct {
	Skins  []*Skin
	Errors []LoadError
}

// LoadAll walks every folder below root depth-first and loads each one as
// a skin. A failing folder is recorded and the scan continues, including
// into that folder's own subfolders.
func (l *Loader) LoadAll(root string) Results {
	var res Results
	l.loadSubFolders(root, &res)
	return res
}

func (l *Loader) loadSubFolders(dir string, res *Results) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		res.Errors = append(res.Errors, LoadError{Dir: dir, Err: err})
		return
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(dir, e.Name())

		skins, err := l.Load(sub)
		if err != nil {
			log.Printf("Skin load failed: %s :: %v", sub, err)
			res.Errors = append(res.Errors, LoadError{Dir: sub, Err: err})
		} else {
			res.Skins = append(res.Skins, skins...)
		}

		l.loadSubFolders(sub, res)
	}
}

// Find returns the first skin with the given name and, when tag is not
// empty, the given input-source tag.
func (r Results) Find(name, tag string) (*Skin, bool) {
	for _, s := range r.Skins {
		if s.Name != name {
			continue
		}
		if tag == "" || (s.Type != nil && s.Type.Tag == tag) {
			return s, true
		}
	}
	return nil, false
}
