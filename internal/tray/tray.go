// Package tray puts the web viewer in the system tray: open the page,
// switch backgrounds, quit.
package tray

import (
	"log"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

type Options struct {
	Title       string
	URL         string
	Icon        []byte
	Backgrounds []string
	Current     string

	// OnBackground is called with the chosen background name. The check
	// mark follows SetCurrent, not the click.
	OnBackground func(name string)
	// Shutdown is called once when "Exit" is clicked.
	Shutdown func()
}

// Tray manages the system tray icon and menu
type Tray struct {
	opts         Options
	once         sync.Once
	shuttingDown atomic.Bool

	menuOpen *systray.MenuItem
	menuExit *systray.MenuItem

	mu          sync.Mutex
	current     string
	backgrounds map[string]*systray.MenuItem
}

func New(opts Options) *Tray {
	return &Tray{
		opts:        opts,
		current:     opts.Current,
		backgrounds: make(map[string]*systray.MenuItem),
	}
}

// SetCurrent moves the background check mark to name. Safe to call from
// any goroutine, before or after the menu exists.
func (t *Tray) SetCurrent(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = name
	for n, item := range t.backgrounds {
		if n == name {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	t.shuttingDown.Store(true)
	systray.Quit()
}

func (t *Tray) onReady() {
	if t.opts.Icon != nil {
		systray.SetIcon(t.opts.Icon)
	}
	systray.SetTitle(t.opts.Title)
	systray.SetTooltip(t.opts.Title + " - " + t.opts.URL)

	t.menuOpen = systray.AddMenuItem("Open Browser", "Open web interface")
	if len(t.opts.Backgrounds) > 1 {
		parent := systray.AddMenuItem("Background", "Switch the skin background")
		t.mu.Lock()
		for _, name := range t.opts.Backgrounds {
			item := parent.AddSubMenuItemCheckbox(name, "Show "+name, name == t.current)
			t.backgrounds[name] = item
			go t.handleBackground(name, item)
		}
		t.mu.Unlock()
	}
	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	log.Println("System tray initialized")
}

func (t *Tray) handleBackground(name string, item *systray.MenuItem) {
	for range item.ClickedCh {
		if t.shuttingDown.Load() || t.opts.OnBackground == nil {
			continue
		}
		t.opts.OnBackground(name)
	}
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				OpenBrowser(t.opts.URL)
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				if t.opts.Shutdown != nil {
					t.once.Do(t.opts.Shutdown)
				}
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	log.Println("System tray exiting")
}

// OpenBrowser opens url in the default web browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
