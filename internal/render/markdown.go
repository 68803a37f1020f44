package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Markdown builds the preview document for one card. now anchors the
// relative age so output is reproducible.
func Markdown(c Card, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", c.Title)

	meta := []string{"**" + c.Source + "**"}
	if c.Author != "" {
		meta = append(meta, c.Author)
	}
	if c.Published.IsZero() {
		meta = append(meta, c.Date)
	} else {
		meta = append(meta, fmt.Sprintf("%s (%s)", c.Date, humanize.RelTime(c.Published, now, "ago", "from now")))
	}
	b.WriteString(strings.Join(meta, " · "))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "![image](%s)\n\n", c.Image)
	b.WriteString(c.Description)
	b.WriteString("\n\n---\n\n")

	if c.Openable() {
		fmt.Fprintf(&b, "[Read More](%s)\n", c.Link)
	} else {
		b.WriteString("*No link available*\n")
	}

	return b.String()
}
