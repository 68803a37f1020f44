package tui

type View int

const (
	ViewList View = iota
	ViewPreview
)
