package model

// Kind identifies which editor window a descriptor describes. The string value
// is the "windowName" tag the host reports and the project file stores.
type Kind string

const (
	KindFontWindow      Kind = "FontWindow"
	KindGlyphWindow     Kind = "GlyphWindow"
	KindSpaceCenter     Kind = "SpaceCenter"
	KindScriptingWindow Kind = "ScriptingWindow"
	KindFeatureWindow   Kind = "FeatureWindow"
	KindDebugWindow     Kind = "DebugWindow"
	KindInspectorWindow Kind = "InspectorWindow"
)

// Kinds lists every known kind in a stable order.
var Kinds = []Kind{
	KindFontWindow,
	KindGlyphWindow,
	KindSpaceCenter,
	KindScriptingWindow,
	KindFeatureWindow,
	KindDebugWindow,
	KindInspectorWindow,
}

var kindSet = func() map[Kind]bool {
	m := make(map[Kind]bool, len(Kinds))
	for _, k := range Kinds {
		m[k] = true
	}
	return m
}()

// ParseKind maps a windowName tag to a Kind. Unknown tags report false.
func ParseKind(name string) (Kind, bool) {
	k := Kind(name)
	return k, kindSet[k]
}

// IsToolWindow reports whether k is a process-wide singleton not owned by a document.
func (k Kind) IsToolWindow() bool {
	return k == KindDebugWindow || k == KindInspectorWindow
}

// NeedsFont reports whether restoring k requires a current font.
func (k Kind) NeedsFont() bool {
	return k == KindGlyphWindow || k == KindSpaceCenter
}

func (k Kind) String() string { return string(k) }
