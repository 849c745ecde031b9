package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mj1618/fontproject/internal/host"
	"github.com/mj1618/fontproject/internal/host/memhost"
	"github.com/mj1618/fontproject/internal/model"
	"github.com/mj1618/fontproject/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restorer(h *memhost.Host) *session.Restorer {
	return session.NewRestorer(h.Provider(), session.WithFileExists(h.FileExists))
}

func frame(x, y, w, h float64) model.Frame {
	return model.Frame{X: x, Y: y, Width: w, Height: h}
}

func TestRestoreRoundTrip(t *testing.T) {
	src := memhost.FromState(&memhost.State{
		Documents: []memhost.DocumentState{
			{Path: "/fonts/Regular.ufo", Windows: []memhost.WindowState{
				{Kind: "FontWindow", Frame: [4]float64{10, 20, 800, 600}},
				{Kind: "GlyphWindow", Frame: [4]float64{50, 60, 400, 400}, Glyph: "a"},
				{Kind: "SpaceCenter", Frame: [4]float64{0, 0, 900, 250},
					SpaceCenter: &model.SpaceCenterState{Input: "abc", Pre: "n", After: "n", PointSize: 72}},
			}},
			{Windows: []memhost.WindowState{
				{Kind: "FontWindow", Frame: [4]float64{100, 100, 500, 500}},
			}},
		},
		ToolWindows: []memhost.WindowState{
			{Kind: "DebugWindow", Frame: [4]float64{5, 5, 300, 200}},
		},
	})

	captured, err := session.Capture(src.Provider(), session.CaptureOptions{})
	require.NoError(t, err)
	require.Len(t, captured.Documents["/fonts/Regular.ufo"], 3)

	dst := memhost.New()
	dst.AddFile("/fonts/Regular.ufo")
	report := restorer(dst).Restore(context.Background(), captured, "")
	require.True(t, report.OK(), "failures: %v", report.Err())
	assert.Len(t, report.Restored, 5)
	assert.False(t, report.ScriptRan)
	assert.NotEmpty(t, report.RunID)

	again, err := session.Capture(dst.Provider(), session.CaptureOptions{})
	require.NoError(t, err)
	assert.Equal(t, captured, again)
}

func TestRestoreResolvesAgainstRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "fonts", "Bold.ufo"), 0o755))

	p := model.NewProject()
	p.AddWindow("fonts/Bold.ufo", model.NewWindow(model.KindFontWindow, frame(1, 2, 3, 4)))

	h := memhost.New()
	report := session.NewRestorer(h.Provider()).Restore(context.Background(), p, root)
	require.True(t, report.OK(), "failures: %v", report.Err())

	assert.True(t, h.IsOpen(filepath.Join(root, "fonts", "Bold.ufo")))
	require.Len(t, report.Restored, 1)
	assert.Equal(t, frame(1, 2, 3, 4), report.Restored[0].Frame)
}

func TestRestoreSkipsOpenDocument(t *testing.T) {
	h := memhost.FromState(&memhost.State{
		Documents: []memhost.DocumentState{
			{Path: "/fonts/A.ufo", Windows: []memhost.WindowState{{Kind: "FontWindow"}}},
		},
	})
	h.AddFile("/fonts/A.ufo")

	p := model.NewProject()
	p.AddWindow("/fonts/A.ufo", model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)))
	p.AddWindow("/fonts/A.ufo", model.NewGlyphWindow("B", frame(0, 0, 10, 10)))

	report := restorer(h).Restore(context.Background(), p, "")
	assert.True(t, report.OK())
	require.Len(t, report.Skipped, 1)
	assert.ErrorIs(t, report.Skipped[0], session.ErrAlreadyOpen)
	assert.Equal(t, "/fonts/A.ufo", report.Skipped[0].Document)
	assert.Zero(t, h.WindowsCreated())
	assert.Empty(t, report.Restored)
}

func TestRestoreUntitledFontThenGlyph(t *testing.T) {
	p := model.NewProject()
	// Stored glyph-first; the font window must still open first.
	p.AddWindow(model.UntitledKey, model.NewGlyphWindow("A", frame(10, 10, 200, 200)))
	p.AddWindow(model.UntitledKey, model.NewWindow(model.KindFontWindow, frame(0, 0, 600, 400)))

	h := memhost.New()
	report := restorer(h).Restore(context.Background(), p, "")
	require.True(t, report.OK(), "failures: %v", report.Err())
	assert.Equal(t, []model.Kind{model.KindFontWindow, model.KindGlyphWindow}, report.RestoredKinds())

	state := h.Snapshot()
	require.Len(t, state.Documents, 1)
	doc := state.Documents[0]
	assert.Empty(t, doc.Path)
	require.Len(t, doc.Windows, 2)
	assert.Equal(t, "GlyphWindow", doc.Windows[1].Kind)
	assert.Equal(t, "A", doc.Windows[1].Glyph)
	assert.Equal(t, [4]float64{10, 10, 200, 200}, doc.Windows[1].Frame)
	assert.Equal(t, 1, h.CountCalls(memhost.OpNewDocument))
}

func TestRestoreExecuteOnly(t *testing.T) {
	p := model.NewProject()
	p.Execute = "print('hello')"

	h := memhost.New()
	report := restorer(h).Restore(context.Background(), p, "")
	require.True(t, report.OK())
	assert.True(t, report.ScriptRan)
	assert.Equal(t, []string{"print('hello')"}, h.Scripts)
	assert.Equal(t, 1, h.CountCalls(memhost.OpRunScript))
	assert.Zero(t, h.WindowsCreated())
}

func TestRestoreScriptRunsLast(t *testing.T) {
	p := model.NewProject()
	p.AddWindow(model.UntitledKey, model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)))
	p.ToolWindows = append(p.ToolWindows, model.NewWindow(model.KindInspectorWindow, frame(1, 1, 1, 1)))
	p.Execute = "x = 1"

	h := memhost.New()
	restorer(h).Restore(context.Background(), p, "")
	calls := h.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, memhost.OpRunScript, calls[len(calls)-1].Op)
}

func TestRestoreScriptFailure(t *testing.T) {
	p := model.NewProject()
	p.AddWindow(model.UntitledKey, model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)))
	p.Execute = "raise"

	h := memhost.New()
	h.ScriptErr = errors.New("boom")
	report := restorer(h).Restore(context.Background(), p, "")

	assert.True(t, report.ScriptRan)
	assert.Len(t, report.Restored, 1)
	require.Len(t, report.Failures, 1)
	assert.ErrorIs(t, report.Err(), session.ErrScriptExecution)
	assert.Contains(t, report.Err().Error(), "boom")
}

func TestRestoreOpenFallback(t *testing.T) {
	h := memhost.New()
	h.AddFile("/fonts/C.ufo")
	h.FailOpen["/fonts/C.ufo"] = true

	p := model.NewProject()
	p.AddWindow("/fonts/C.ufo", model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)))
	p.AddWindow("/fonts/C.ufo", model.NewGlyphWindow("c", frame(5, 5, 10, 10)))

	report := restorer(h).Restore(context.Background(), p, "")
	require.True(t, report.OK(), "failures: %v", report.Err())
	assert.Equal(t, 1, h.CountCalls(memhost.OpOpenFile))
	assert.True(t, h.IsOpen("/fonts/C.ufo"))
	assert.Len(t, report.Restored, 2)
}

func TestRestoreOpenFailureSkipsWindows(t *testing.T) {
	h := memhost.New()
	h.AddFile("/fonts/D.ufo")
	h.FailOpen["/fonts/D.ufo"] = true
	h.FailOpenFile["/fonts/D.ufo"] = true

	p := model.NewProject()
	p.AddWindow("/fonts/D.ufo", model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)))
	p.AddWindow("/fonts/D.ufo", model.NewGlyphWindow("d", frame(0, 0, 10, 10)))

	report := restorer(h).Restore(context.Background(), p, "")
	require.Len(t, report.Failures, 1)
	assert.ErrorIs(t, report.Failures[0], session.ErrDocumentOpen)
	assert.Zero(t, h.WindowsCreated())
}

func TestRestoreMissingFileContinues(t *testing.T) {
	p := model.NewProject()
	p.AddWindow("/nowhere/X.ufo", model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)))
	p.AddWindow(model.UntitledKey, model.NewWindow(model.KindFontWindow, frame(0, 0, 20, 20)))

	h := memhost.New()
	report := restorer(h).Restore(context.Background(), p, t.TempDir())

	require.Len(t, report.Failures, 1)
	assert.ErrorIs(t, report.Err(), session.ErrMissingFile)
	assert.Equal(t, "/nowhere/X.ufo", report.Failures[0].Document)
	assert.Equal(t, []model.Kind{model.KindFontWindow}, report.RestoredKinds())
}

func TestRestoreGlyphFailureIsolated(t *testing.T) {
	h := memhost.New()
	h.FailGlyphs["missing"] = true

	p := model.NewProject()
	p.AddWindow(model.UntitledKey, model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)))
	p.AddWindow(model.UntitledKey, model.NewGlyphWindow("missing", frame(0, 0, 10, 10)))
	p.AddWindow(model.UntitledKey, model.NewGlyphWindow("a", frame(0, 0, 10, 10)))

	report := restorer(h).Restore(context.Background(), p, "")
	require.Len(t, report.Failures, 1)
	assert.ErrorIs(t, report.Failures[0], session.ErrWindowRestore)
	assert.Equal(t, 1, report.Failures[0].Index)
	assert.Equal(t, []model.Kind{model.KindFontWindow, model.KindGlyphWindow}, report.RestoredKinds())
}

func TestRestoreUntitledWithoutFont(t *testing.T) {
	p := model.NewProject()
	p.AddWindow(model.UntitledKey, model.NewGlyphWindow("a", frame(0, 0, 10, 10)))
	p.AddWindow(model.UntitledKey, model.NewSpaceCenter(model.SpaceCenterState{}, frame(0, 0, 10, 10)))

	h := memhost.New()
	report := restorer(h).Restore(context.Background(), p, "")
	require.Len(t, report.Failures, 2)
	for _, f := range report.Failures {
		assert.ErrorIs(t, f, session.ErrNoFontContext)
	}
	assert.Zero(t, h.WindowsCreated())
}

func TestRestoreUntitledToolKindRejected(t *testing.T) {
	p := model.NewProject()
	p.AddWindow(model.UntitledKey, model.NewWindow(model.KindDebugWindow, frame(0, 0, 10, 10)))

	h := memhost.New()
	report := restorer(h).Restore(context.Background(), p, "")
	require.Len(t, report.Failures, 1)
	assert.ErrorIs(t, report.Failures[0], session.ErrUnrecognizedWindowKind)
}

func TestRestoreScriptingAndFeatureWindows(t *testing.T) {
	h := memhost.New()
	h.AddFile("/fonts/E.ufo")

	p := model.NewProject()
	p.AddWindow(model.UntitledKey, model.NewWindow(model.KindScriptingWindow, frame(1, 1, 100, 100)))
	p.AddWindow("/fonts/E.ufo", model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)))
	p.AddWindow("/fonts/E.ufo", model.NewWindow(model.KindFeatureWindow, frame(2, 2, 200, 200)))

	report := restorer(h).Restore(context.Background(), p, "")
	require.True(t, report.OK(), "failures: %v", report.Err())
	assert.Equal(t,
		[]model.Kind{model.KindFontWindow, model.KindFeatureWindow, model.KindScriptingWindow},
		report.RestoredKinds())
}

func TestRestoreOtherKindOnDocumentUsesMainWindow(t *testing.T) {
	h := memhost.New()
	h.AddFile("/fonts/F.ufo")

	p := model.NewProject()
	p.AddWindow("/fonts/F.ufo", model.NewWindow(model.KindInspectorWindow, frame(3, 3, 30, 30)))

	report := restorer(h).Restore(context.Background(), p, "")
	require.True(t, report.OK(), "failures: %v", report.Err())
	require.Len(t, report.Restored, 1)

	main, err := h.MainWindow()
	require.NoError(t, err)
	assert.Equal(t, main, report.Restored[0].Window)
	got, err := h.Frame(main)
	require.NoError(t, err)
	assert.Equal(t, frame(3, 3, 30, 30), got)
}

func TestRestoreToolWindowsAreSingletons(t *testing.T) {
	p := model.NewProject()
	p.ToolWindows = []model.WindowDescriptor{
		model.NewWindow(model.KindDebugWindow, frame(0, 0, 10, 10)),
		model.NewWindow(model.KindDebugWindow, frame(5, 5, 10, 10)),
		model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)),
	}

	h := memhost.New()
	report := restorer(h).Restore(context.Background(), p, "")
	assert.Equal(t, 1, h.WindowsCreated())
	assert.Len(t, report.Restored, 2)
	require.Len(t, report.Failures, 1)
	assert.ErrorIs(t, report.Failures[0], session.ErrUnrecognizedWindowKind)

	state := h.Snapshot()
	require.Len(t, state.ToolWindows, 1)
	assert.Equal(t, [4]float64{5, 5, 10, 10}, state.ToolWindows[0].Frame)
}

func TestRestoreMissingCapabilities(t *testing.T) {
	p := model.NewProject()
	p.AddWindow(model.UntitledKey, model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)))

	report := session.NewRestorer(&host.Provider{}).Restore(context.Background(), p, "")
	require.Len(t, report.Failures, 1)
	assert.ErrorIs(t, report.Err(), host.ErrCapabilityMissing)
	assert.Empty(t, report.Restored)
}

func TestRestoreSpaceCenterState(t *testing.T) {
	h := memhost.New()
	h.AddFile("/fonts/G.ufo")
	want := model.SpaceCenterState{Input: "HOH", Pre: "/H", After: "/O", PointSize: 48}

	p := model.NewProject()
	p.AddWindow("/fonts/G.ufo", model.NewSpaceCenter(want, frame(0, 0, 900, 200)))
	p.AddWindow("/fonts/G.ufo", model.NewWindow(model.KindFontWindow, frame(0, 0, 10, 10)))

	report := restorer(h).Restore(context.Background(), p, "")
	require.True(t, report.OK(), "failures: %v", report.Err())

	state := h.Snapshot()
	require.Len(t, state.Documents, 1)
	windows := state.Documents[0].Windows
	require.Len(t, windows, 2)
	require.NotNil(t, windows[1].SpaceCenter)
	assert.Equal(t, want, *windows[1].SpaceCenter)
}
