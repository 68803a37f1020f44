package tui

import (
	"fmt"
)

// Canonical short status messages used across the app.
const (
	MsgLoading     = "Loading news…"
	MsgOpening     = "Opening in browser…"
	MsgCopied      = "Link copied"
	MsgNoLink      = "No link available"
	MsgImageBroken = "Image not available"
)

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 article"
	}
	return fmt.Sprintf("%d articles", n)
}

func MsgOpened(link string, width int) string {
	if width < 20 {
		width = 60
	}
	return "Opened " + truncateMiddle(link, width)
}
