// Package window is the native presentation surface: one resizable
// ebiten window showing a view session.
package window

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/soar/skinview/internal/controller"
	"github.com/soar/skinview/internal/mapper"
	"github.com/soar/skinview/internal/skin"
	"github.com/soar/skinview/internal/view"
)

type window struct {
	session *view.Session
	changes <-chan controller.State
	quit    <-chan struct{}

	images map[string]*ebiten.Image
	frame  []mapper.Directive

	// last applied window size, in window pixels
	width  int
	height int
	// frames to wait before trusting WindowSize after a resize of our own
	settle int
}

// Run shows sess until the window is closed, quit is closed or changes is
// closed. Must be called from the main goroutine.
func Run(sess *view.Session, changes <-chan controller.State, quit <-chan struct{}) error {
	w := &window{
		session: sess,
		changes: changes,
		quit:    quit,
		images:  make(map[string]*ebiten.Image),
	}
	if err := w.loadImages(sess.Skin()); err != nil {
		return err
	}

	ebiten.SetWindowTitle(sess.Title())
	ebiten.SetVsyncEnabled(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	w.fitBackground()

	return ebiten.RunGame(w)
}

func (w *window) loadImages(s *skin.Skin) error {
	for _, img := range s.Images() {
		m, err := img.Decode()
		if err != nil {
			return fmt.Errorf("window: %w", err)
		}
		w.images[img.Path] = ebiten.NewImageFromImage(m)
	}
	return nil
}

// fitBackground sizes the window to the load-time size of the current
// background.
func (w *window) fitBackground() {
	bg := w.session.Background()
	w.apply(w.session.Resize(0, bg.Height))
}

func (w *window) apply(width, height float64) {
	w.width = int(math.Round(width))
	w.height = int(math.Round(height))
	ebiten.SetWindowSize(w.width, w.height)
	w.settle = 2
	w.frame = w.session.Snapshot()
}

func (w *window) Update() error {
	select {
	case <-w.quit:
		return ebiten.Termination
	default:
	}

	// take every pending state; only the latest look matters per frame
	for pending := true; pending; {
		select {
		case st, ok := <-w.changes:
			if !ok {
				log.Println("Controller disconnected")
				return ebiten.Termination
			}
			if len(w.session.Apply(st)) > 0 {
				w.frame = w.session.Snapshot()
			}
		default:
			pending = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		w.nextBackground()
	}

	if w.settle > 0 {
		w.settle--
		return nil
	}
	ww, wh := ebiten.WindowSize()
	if ww != w.width || wh != w.height {
		proposedH := float64(wh)
		if wh == w.height {
			// width-only drag: keep the ratio from the width
			cw, ch := w.session.ContentSize()
			proposedH = float64(ww) * ch / cw
		}
		w.apply(w.session.Resize(float64(ww), proposedH))
	}
	return nil
}

func (w *window) nextBackground() {
	names := w.session.Scene().Backgrounds
	if len(names) < 2 {
		return
	}
	cur := w.session.Background().Name
	next := names[0]
	for i, name := range names {
		if name == cur {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := w.session.SelectBackground(next); err != nil {
		log.Printf("Background switch failed: %v", err)
		return
	}
	log.Printf("Background switched to %s", next)
	w.fitBackground()
}

func (w *window) Draw(screen *ebiten.Image) {
	bg := w.session.Background()
	screen.Fill(bg.Color)

	sx, sy := w.session.Scale()
	if bg.Image != nil {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(sx, sy)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(w.images[bg.Image.Path], &op)
	}

	elements := w.session.Layout().Elements
	for _, d := range w.frame {
		if !d.Visible || d.Width <= 0 || d.Height <= 0 {
			continue
		}
		e := elements[d.ID]
		img := w.images[e.Config.Image.Path]
		if img == nil {
			continue
		}
		if e.Kind == mapper.KindTrigger && e.Trigger.Direction != skin.DirectionFade {
			drawMasked(screen, img, e.Config.Current, d)
			continue
		}

		b := img.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(d.Width/float64(b.Dx()), d.Height/float64(b.Dy()))
		op.GeoM.Translate(d.X, d.Y)
		op.ColorScale.ScaleAlpha(float32(d.Opacity))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, &op)
	}
}

// drawMasked draws the part of img that falls inside the directive rect
// when img is stretched over full.
func drawMasked(screen, img *ebiten.Image, full skin.Rect, d mapper.Directive) {
	b := img.Bounds()
	src := mapper.MaskSource(full, d, b)
	if src.Empty() {
		return
	}
	kx := full.Width / float64(b.Dx())
	ky := full.Height / float64(b.Dy())

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(kx, ky)
	op.GeoM.Translate(full.X+float64(src.Min.X-b.Min.X)*kx, full.Y+float64(src.Min.Y-b.Min.Y)*ky)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img.SubImage(src).(*ebiten.Image), &op)
}

func (w *window) Layout(width, height int) (int, int) {
	return width, height
}
