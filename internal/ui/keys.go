package ui

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut is a rune or key code plus modifiers. Shift is ignored so
// upper and lower case letters bind alike.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var bindings = map[KeyShortcut]action{
	{Rune: 'b'}:                           actBrush,
	{Rune: 'e'}:                           actEraser,
	{Rune: 'r'}:                           actRect,
	{Rune: 'c'}:                           actCircle,
	{Rune: 'g'}:                           actTriangle,
	{Rune: 'f'}:                           actFill,
	{Rune: 't'}:                           actText,
	{Rune: 'o'}:                           actOpen,
	{Rune: 'q'}:                           actQuit,
	{Rune: 's', Modifiers: key.ModControl}: actSave,
	{Rune: 'c', Modifiers: key.ModControl}: actCopy,
	{Rune: 'v', Modifiers: key.ModControl}: actPaste,
	{Rune: 'n', Modifiers: key.ModControl}: actClear,
	{Code: key.CodeEscape}:                actCancel,
}

func actionForKey(e key.Event) (action, bool) {
	mods := e.Modifiers &^ key.ModShift
	if e.Rune > 0 {
		if a, ok := bindings[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return a, true
		}
	}
	a, ok := bindings[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return a, ok
}

// editDraft applies a key press to the text being typed. It reports whether
// the draft is finished (Enter) or abandoned (Escape).
func editDraft(draft string, e key.Event) (next string, done, cancel bool) {
	switch e.Code {
	case key.CodeReturnEnter:
		return draft, true, false
	case key.CodeEscape:
		return "", false, true
	case key.CodeDeleteBackspace:
		r := []rune(draft)
		if len(r) > 0 {
			r = r[:len(r)-1]
		}
		return string(r), false, false
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		return draft + string(e.Rune), false, false
	}
	return draft, false, false
}
