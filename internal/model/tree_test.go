package model

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func sampleProject() *Project {
	p := NewProject()
	p.AddWindow("fonts/Regular.ufo", NewWindow(KindFontWindow, Frame{0, 0, 400, 300}))
	p.AddWindow("fonts/Regular.ufo", NewGlyphWindow("A", Frame{10, 10, 200, 200}))
	p.AddWindow("fonts/Regular.ufo", NewSpaceCenter(SpaceCenterState{
		Input: "HOH", Pre: "/H", After: "/O", PointSize: 72,
	}, Frame{20, 30, 800, 250}))
	p.EnsureDocument(UntitledKey)
	p.ToolWindows = append(p.ToolWindows, NewWindow(KindInspectorWindow, Frame{900, 0, 250, 600}))
	p.Execute = "print(1)"
	return p
}

func TestTree_RoundTrip(t *testing.T) {
	p := sampleProject()
	got, diags, err := FromTree(p.ToTree())
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got.Execute != p.Execute {
		t.Errorf("Execute = %q, want %q", got.Execute, p.Execute)
	}
	ws := got.Documents["fonts/Regular.ufo"]
	if len(ws) != 3 {
		t.Fatalf("got %d windows, want 3", len(ws))
	}
	if ws[1].GlyphName != "A" || ws[1].Frame != (Frame{10, 10, 200, 200}) {
		t.Errorf("glyph window = %+v", ws[1])
	}
	sc := ws[2].SpaceCenter
	if sc == nil || sc.Input != "HOH" || sc.Pre != "/H" || sc.After != "/O" || sc.PointSize != 72 {
		t.Errorf("space center = %+v", sc)
	}
	if _, ok := got.Documents[UntitledKey]; !ok {
		t.Error("empty untitled bucket was dropped")
	}
	if len(got.ToolWindows) != 1 || got.ToolWindows[0].Kind != KindInspectorWindow {
		t.Errorf("tool windows = %+v", got.ToolWindows)
	}
}

func TestToTree_OmitsEmptyExecute(t *testing.T) {
	p := NewProject()
	if _, ok := p.ToTree()["execute"]; ok {
		t.Error("empty script should not be written")
	}
}

func TestFromTree_DropsMalformedWindows(t *testing.T) {
	tree := map[string]interface{}{
		"documents": map[string]interface{}{
			"a.ufo": []interface{}{
				map[string]interface{}{"windowName": "FontWindow", "frame": []interface{}{0, 0, 100, 100}},
				map[string]interface{}{"windowName": "MetricsWindow", "frame": []interface{}{0, 0, 1, 1}},
				map[string]interface{}{"windowName": "GlyphWindow", "frame": []interface{}{0, 0, 1, 1}},
				map[string]interface{}{"windowName": "SpaceCenter"},
				map[string]interface{}{"windowName": "FeatureWindow", "frame": []interface{}{0, 0, 1}},
				map[string]interface{}{"windowName": "FeatureWindow", "frame": []interface{}{0, "x", 1, 1}},
				"not a window",
			},
		},
		"toolWindows": []interface{}{
			map[string]interface{}{"windowName": "DebugWindow", "frame": []interface{}{int64(1), uint64(2), float32(3), 4.5}},
			map[string]interface{}{"windowName": "FontWindow", "frame": []interface{}{0, 0, 1, 1}},
		},
	}
	p, diags, err := FromTree(tree)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Documents["a.ufo"]) != 1 {
		t.Errorf("kept %d windows, want 1", len(p.Documents["a.ufo"]))
	}
	if len(p.ToolWindows) != 1 || p.ToolWindows[0].Frame != (Frame{1, 2, 3, 4.5}) {
		t.Errorf("tool windows = %+v", p.ToolWindows)
	}
	if len(diags) != 7 {
		t.Errorf("got %d diagnostics, want 7: %v", len(diags), diags)
	}
	if !strings.Contains(diags[0].Reason, "MetricsWindow") {
		t.Errorf("first diagnostic = %s", diags[0])
	}
}

func TestFromTree_DropsNonFiniteFrames(t *testing.T) {
	tree := map[string]interface{}{
		"documents": map[string]interface{}{
			"a.ufo": []interface{}{
				map[string]interface{}{"windowName": "FontWindow", "frame": []interface{}{math.NaN(), 0, 100, 100}},
				map[string]interface{}{"windowName": "FeatureWindow", "frame": []interface{}{0, math.Inf(1), 1, 1}},
				map[string]interface{}{"windowName": "SpaceCenter", "frame": []interface{}{0, 0, 1, 1}, "pointSize": math.Inf(-1)},
				map[string]interface{}{"windowName": "ScriptingWindow", "frame": []interface{}{0, 0, 1, 1}},
			},
		},
	}
	p, diags, err := FromTree(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Documents["a.ufo"]; len(got) != 1 || got[0].Kind != KindScriptingWindow {
		t.Errorf("kept %+v, want only the scripting window", got)
	}
	if len(diags) != 3 {
		t.Errorf("got %d diagnostics, want 3: %v", len(diags), diags)
	}
}

func TestFromTree_SpaceCenterDefaults(t *testing.T) {
	tree := map[string]interface{}{
		"documents": map[string]interface{}{
			"a.ufo": []interface{}{
				map[string]interface{}{"windowName": "SpaceCenter", "frame": []interface{}{0, 0, 1, 1}, "input": "abc"},
			},
		},
	}
	p, diags, err := FromTree(tree)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	sc := p.Documents["a.ufo"][0].SpaceCenter
	if sc == nil || sc.Input != "abc" || sc.PointSize != 0 || sc.Pre != "" {
		t.Errorf("space center = %+v", sc)
	}
}

func TestFromTree_InterfaceKeyedMaps(t *testing.T) {
	tree := map[interface{}]interface{}{
		"documents": map[interface{}]interface{}{
			"untitled": []interface{}{
				map[interface{}]interface{}{"windowName": "FontWindow", "frame": []interface{}{0, 0, 400, 300}},
			},
		},
	}
	p, _, err := FromTree(tree)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Documents[UntitledKey]) != 1 {
		t.Errorf("documents = %+v", p.Documents)
	}
}

func TestFromTree_MalformedRoot(t *testing.T) {
	for _, tree := range []interface{}{nil, "x", []interface{}{}, map[string]interface{}{"documents": "x"}} {
		if _, _, err := FromTree(tree); !errors.Is(err, ErrMalformedProject) {
			t.Errorf("FromTree(%v) error = %v, want ErrMalformedProject", tree, err)
		}
	}
}

func TestFromTree_MissingSectionsAreEmpty(t *testing.T) {
	p, diags, err := FromTree(map[string]interface{}{})
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 || len(p.Documents) != 0 || len(p.ToolWindows) != 0 || p.Execute != "" {
		t.Errorf("got %+v, %v", p, diags)
	}
}
