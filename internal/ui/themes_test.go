package ui

import (
	"strings"
	"testing"
)

// Theme state is global, so these tests do not run in parallel.

func TestSetTheme(t *testing.T) {
	saved := GetCurrentTheme()
	defer SetCurrentTheme(saved)

	for name, want := range map[string]string{
		"dark":    "dark",
		"light":   "light",
		"none":    "none",
		"unknown": "dark",
	} {
		SetTheme(name)
		if got := GetCurrentTheme().Name; got != want {
			t.Errorf("SetTheme(%q) selected %q, want %q", name, got, want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	saved := GetCurrentTheme()
	defer SetCurrentTheme(saved)

	InitTheme(true)
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("colors should be empty with --no-color")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestColorFunctions(t *testing.T) {
	saved := GetCurrentTheme()
	defer SetCurrentTheme(saved)
	SetCurrentTheme(DarkTheme)

	for name, got := range map[string]string{
		"red":       ColorRed(),
		"green":     ColorGreen(),
		"yellow":    ColorYellow(),
		"blue":      ColorBlue(),
		"magenta":   ColorMagenta(),
		"cyan":      ColorCyan(),
		"bold":      ColorBold(),
		"underline": ColorUnderline(),
		"reset":     ColorReset(),
	} {
		if !strings.HasPrefix(got, "\033[") {
			t.Errorf("%s = %q, want an escape sequence", name, got)
		}
	}
}

func TestRenderBanner(t *testing.T) {
	saved := GetCurrentTheme()
	defer SetCurrentTheme(saved)
	SetCurrentTheme(NoColorTheme)

	out := RenderBanner(BannerWarning, "Outputs differ")
	if !strings.Contains(out, "Outputs differ") {
		t.Errorf("banner %q should contain its text", out)
	}
	if !strings.Contains(out, "╭") {
		t.Errorf("banner %q should keep its border without colors", out)
	}
}
