package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

func TestCompactThemeSizes(t *testing.T) {
	th := newCompactTheme()

	if got := th.Size(theme.SizeNameText); got != 12 {
		t.Errorf("expected text size 12, got %v", got)
	}
	if got := th.Size(theme.SizeNamePadding); got != 3 {
		t.Errorf("expected padding 3, got %v", got)
	}
	if got, want := th.Size(theme.SizeNameScrollBar), theme.DefaultTheme().Size(theme.SizeNameScrollBar); got != want {
		t.Errorf("expected scroll bar size %v from the base theme, got %v", want, got)
	}
}

func TestCompactThemeDelegates(t *testing.T) {
	th := newCompactTheme()
	base := theme.DefaultTheme()

	if th.Color(theme.ColorNamePrimary, theme.VariantLight) != base.Color(theme.ColorNamePrimary, theme.VariantLight) {
		t.Error("expected primary color from the base theme")
	}
	if th.Icon(theme.IconNameHome).Name() != base.Icon(theme.IconNameHome).Name() {
		t.Error("expected home icon from the base theme")
	}
	if th.Font(fyne.TextStyle{Bold: true}).Name() != base.Font(fyne.TextStyle{Bold: true}).Name() {
		t.Error("expected bold font from the base theme")
	}
}
