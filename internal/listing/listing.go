// Package listing prints the result of a skin scan for the terminal.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/soar/skinview/internal/skin"
)

type styles struct {
	heading lipgloss.Style
	name    lipgloss.Style
	tag     lipgloss.Style
	detail  lipgloss.Style
	err     lipgloss.Style
}

func newStyles() styles {
	return styles{
		heading: lipgloss.NewStyle().Bold(true).Underline(true),
		name:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		tag:     lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(3)),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		err:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}

// Write prints every loaded skin with its type and backgrounds, followed
// by the folders that failed to load.
func Write(w io.Writer, res skin.Results) error {
	st := newStyles()
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", st.heading.Render(fmt.Sprintf("Skins (%d)", len(res.Skins))))
	for _, s := range res.Skins {
		tag := ""
		if s.Type != nil {
			tag = s.Type.Tag
		}
		var bgs []string
		for _, bg := range s.Backgrounds {
			bgs = append(bgs, bg.Name)
		}
		fmt.Fprintf(&b, "  %s %s %s\n", st.name.Render(s.Name), st.tag.Render("["+tag+"]"),
			st.detail.Render("by "+s.Author))
		fmt.Fprintf(&b, "    %s\n", st.detail.Render(s.Dir))
		fmt.Fprintf(&b, "    backgrounds: %s\n", strings.Join(bgs, ", "))
	}

	if len(res.Errors) > 0 {
		fmt.Fprintf(&b, "\n%s\n", st.heading.Render(fmt.Sprintf("Errors (%d)", len(res.Errors))))
		for _, e := range res.Errors {
			fmt.Fprintf(&b, "  %s %s\n", st.err.Render("ERR"), e.Error())
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
