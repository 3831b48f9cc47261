package components

// FileDroppedMsg reports a path pasted or dropped onto the upload panel.
type FileDroppedMsg struct {
	Path string
}

// PathEnteredMsg reports the path input confirmed with Enter. Path is empty
// when nothing was typed.
type PathEnteredMsg struct {
	Path string
}
