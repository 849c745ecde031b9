package projectfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mj1618/fontproject/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject() *model.Project {
	p := model.NewProject()
	p.AddWindow("/fonts/Regular.ufo", model.NewWindow(model.KindFontWindow, model.Frame{X: 0, Y: 0, Width: 400, Height: 300}))
	p.AddWindow("/fonts/Regular.ufo", model.NewGlyphWindow("A", model.Frame{X: 10.5, Y: 10, Width: 200, Height: 200}))
	p.AddWindow("/fonts/Regular.ufo", model.NewSpaceCenter(model.SpaceCenterState{
		Input: "HAMBURGEFONTSIV", Pre: "/H", After: "/H", PointSize: 96,
	}, model.Frame{X: 0, Y: 500, Width: 1000, Height: 300}))
	p.AddWindow(model.UntitledKey, model.NewWindow(model.KindScriptingWindow, model.Frame{X: 5, Y: 5, Width: 600, Height: 400}))
	p.ToolWindows = append(p.ToolWindows,
		model.NewWindow(model.KindDebugWindow, model.Frame{X: 1, Y: 2, Width: 3, Height: 4}),
		model.NewWindow(model.KindInspectorWindow, model.Frame{X: 5, Y: 6, Width: 7, Height: 8}),
	)
	p.Execute = "print('hello')"
	return p
}

func TestEncodeDecode_AllFormats(t *testing.T) {
	for _, format := range []Format{FormatXML, FormatBinary, FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			want := sampleProject()
			data, err := Encode(want, format)
			require.NoError(t, err)
			assert.Equal(t, format, Sniff(data))

			got, diags, err := Decode(data)
			require.NoError(t, err)
			assert.Empty(t, diags)
			assert.Equal(t, want.Execute, got.Execute)
			assert.Equal(t, want.ToolWindows, got.ToolWindows)
			require.Len(t, got.Documents, 2)
			assert.Equal(t, want.Documents["/fonts/Regular.ufo"], got.Documents["/fonts/Regular.ufo"])
			assert.Equal(t, want.Documents[model.UntitledKey], got.Documents[model.UntitledKey])
		})
	}
}

func TestEncode_XMLIsPropertyList(t *testing.T) {
	data, err := Encode(sampleProject(), FormatXML)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, "<plist")
	assert.Contains(t, s, "<key>windowName</key>")
	assert.Contains(t, s, "<key>toolWindows</key>")
}

func TestDecode_EditorPlist(t *testing.T) {
	// As saved by the editor: integer frames, no execute key.
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>documents</key>
	<dict>
		<key>untitled</key>
		<array>
			<dict>
				<key>frame</key>
				<array><real>0.0</real><integer>0</integer><integer>400</integer><integer>300</integer></array>
				<key>windowName</key>
				<string>FontWindow</string>
			</dict>
			<dict>
				<key>frame</key>
				<array><integer>10</integer><integer>10</integer><integer>200</integer><integer>200</integer></array>
				<key>glyphName</key>
				<string>A</string>
				<key>windowName</key>
				<string>GlyphWindow</string>
			</dict>
		</array>
	</dict>
	<key>toolWindows</key>
	<array/>
</dict>
</plist>
`)
	p, diags, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, diags)
	ws := p.Documents[model.UntitledKey]
	require.Len(t, ws, 2)
	assert.Equal(t, model.KindFontWindow, ws[0].Kind)
	assert.Equal(t, model.Frame{X: 0, Y: 0, Width: 400, Height: 300}, ws[0].Frame)
	assert.Equal(t, "A", ws[1].GlyphName)
	assert.Empty(t, p.Execute)
}

func TestDecode_ReportsDroppedWindows(t *testing.T) {
	data := []byte(`documents:
  a.ufo:
    - windowName: FontWindow
      frame: [0, 0, 100, 100]
    - windowName: KerningWindow
      frame: [0, 0, 100, 100]
toolWindows: []
`)
	p, diags, err := Decode(data)
	require.NoError(t, err)
	assert.Len(t, p.Documents["a.ufo"], 1)
	require.Len(t, diags, 1)
	assert.Equal(t, "documents.a.ufo[1]", diags[0].Path)
}

func TestDecode_DropsNonFiniteFrames(t *testing.T) {
	data := []byte(`documents:
  a.ufo:
    - windowName: FontWindow
      frame: [.nan, 0, 100, 100]
    - windowName: ScriptingWindow
      frame: [0, 0, .inf, 100]
toolWindows: []
`)
	p, diags, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, p.Documents["a.ufo"])
	assert.Len(t, diags, 2)

	_, err = Encode(p, FormatJSON)
	assert.NoError(t, err)
}

func TestDecode_Garbage(t *testing.T) {
	_, _, err := Decode([]byte("<plist><dict><key>"))
	assert.Error(t, err)

	_, _, err = Decode([]byte("- just\n- a list\n"))
	assert.ErrorIs(t, err, model.ErrMalformedProject)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatXML},
		{"plist", FormatXML},
		{"XML", FormatXML},
		{"bplist", FormatBinary},
		{"yml", FormatYAML},
		{"json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("/a/b/My.roboFontProject"))
	assert.True(t, HasExtension("/a/b/My.ROBOFONTPROJECT"))
	assert.False(t, HasExtension("/a/b/My.ufo"))
	assert.False(t, HasExtension("roboFontProject"))
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatXML, FormatForPath("a.roboFontProject"))
	assert.Equal(t, FormatXML, FormatForPath("a.plist"))
	assert.Equal(t, FormatYAML, FormatForPath("a.yml"))
	assert.Equal(t, FormatJSON, FormatForPath("a.JSON"))
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session"+Extension)
	require.NoError(t, WriteFile(path, sampleProject(), FormatXML))

	_, err := os.Stat(path)
	require.NoError(t, err)

	p, diags, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, 6, p.WindowCount())
}

func TestLoad_ReportsFormat(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []Format{FormatXML, FormatBinary, FormatYAML, FormatJSON} {
		path := filepath.Join(dir, "session."+string(f))
		require.NoError(t, WriteFile(path, sampleProject(), f))

		p, got, diags, err := Load(path)
		require.NoError(t, err, f)
		assert.Equal(t, f, got)
		assert.Empty(t, diags)
		assert.Equal(t, 6, p.WindowCount())
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope"+Extension))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
