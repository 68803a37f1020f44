package tui

const ellipsis = "…"

// truncateEnd keeps the first limit-1 runes of s and appends an ellipsis.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit == 1 {
		return ellipsis
	}
	return string(r[:limit-1]) + ellipsis
}

// truncateMiddle elides the middle of s, which keeps both the host and the
// slug of a link readable.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit == 1 {
		return ellipsis
	}
	keep := limit - 1
	head := keep / 2
	tail := keep - head
	return string(r[:head]) + ellipsis + string(r[len(r)-tail:])
}
