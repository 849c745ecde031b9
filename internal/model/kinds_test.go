package model

import "testing"

func TestParseKind_Known(t *testing.T) {
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			got, ok := ParseKind(string(k))
			if !ok {
				t.Fatalf("ParseKind(%q) reported unknown", k)
			}
			if got != k {
				t.Errorf("ParseKind(%q) = %q", k, got)
			}
		})
	}
}

func TestParseKind_Unknown(t *testing.T) {
	for _, name := range []string{"", "fontwindow", "OutputWindow", "Window"} {
		if _, ok := ParseKind(name); ok {
			t.Errorf("ParseKind(%q) should be unknown", name)
		}
	}
}

func TestKind_IsToolWindow(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindDebugWindow, true},
		{KindInspectorWindow, true},
		{KindFontWindow, false},
		{KindGlyphWindow, false},
		{KindSpaceCenter, false},
		{KindScriptingWindow, false},
		{KindFeatureWindow, false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsToolWindow(); got != tt.want {
			t.Errorf("%s.IsToolWindow() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestKind_NeedsFont(t *testing.T) {
	if !KindGlyphWindow.NeedsFont() || !KindSpaceCenter.NeedsFont() {
		t.Error("glyph windows and space centers need a font")
	}
	if KindFontWindow.NeedsFont() || KindScriptingWindow.NeedsFont() {
		t.Error("font and scripting windows do not need a current font")
	}
}
