package render

import (
	"strings"
	"time"
)

const (
	TitleLimit       = 100
	DescriptionLimit = 150

	NoTitle       = "No title available"
	NoDescription = "No description available"
	UnknownSource = "Unknown Source"
	UnknownDate   = "Unknown date"

	// DateLayout matches en-US "short month, day, year".
	DateLayout = "Jan 2, 2006"

	DefaultImagePlaceholder = "https://via.placeholder.com/400x200/667eea/ffffff?text=News+Image"
	DefaultImageUnavailable = "https://via.placeholder.com/400x200/667eea/ffffff?text=Image+Not+Available"

	// nullLiteral is what some sources send instead of a real null.
	nullLiteral = "null"
)

// Card is the display projection of one article.
type Card struct {
	Title       string
	Description string
	Image       string
	Date        string
	Published   time.Time
	Source      string
	Author      string
	// Link is empty when the article has no usable URL.
	Link string

	imageUnavailable string
}

// Openable reports whether activating the card should open anything.
func (c Card) Openable() bool {
	return c.Link != ""
}

// MarkImageBroken swaps in the second placeholder after the image URL failed
// to load.
func (c *Card) MarkImageBroken() {
	c.Image = c.imageUnavailable
}

// FilterValue is the text the result list filters on.
func (c Card) FilterValue() string {
	return c.Title + " " + c.Source
}

func isAbsent(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == nullLiteral
}

// FormatDate renders an RFC 3339 timestamp as "Jan 2, 2006".
func FormatDate(publishedAt string) (string, time.Time) {
	if isAbsent(publishedAt) {
		return UnknownDate, time.Time{}
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, publishedAt); err == nil {
			return t.Format(DateLayout), t
		}
	}
	return UnknownDate, time.Time{}
}
