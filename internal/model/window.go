package model

import "fmt"

// Frame is a window rectangle in host screen coordinates.
type Frame struct {
	X      float64 `json:"x"      yaml:"x"`
	Y      float64 `json:"y"      yaml:"y"`
	Width  float64 `json:"width"  yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// FrameFromSlice builds a Frame from an [x, y, w, h] slice.
func FrameFromSlice(v []float64) (Frame, error) {
	if len(v) != 4 {
		return Frame{}, fmt.Errorf("frame needs 4 numbers, got %d", len(v))
	}
	return Frame{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// Slice returns the frame as [x, y, w, h].
func (f Frame) Slice() []float64 {
	return []float64{f.X, f.Y, f.Width, f.Height}
}

// SpaceCenterState is the text and size shown in a space center.
type SpaceCenterState struct {
	Input     string  `json:"input"     yaml:"input"`
	Pre       string  `json:"pre"       yaml:"pre"`
	After     string  `json:"after"     yaml:"after"`
	PointSize float64 `json:"pointSize" yaml:"pointSize"`
}

// WindowDescriptor is one captured window. GlyphName is only meaningful for
// KindGlyphWindow and SpaceCenter only for KindSpaceCenter.
type WindowDescriptor struct {
	Kind        Kind              `json:"windowName"            yaml:"windowName"`
	Frame       Frame             `json:"frame"                 yaml:"frame"`
	GlyphName   string            `json:"glyphName,omitempty"   yaml:"glyphName,omitempty"`
	SpaceCenter *SpaceCenterState `json:"spaceCenter,omitempty" yaml:"spaceCenter,omitempty"`
}

// NewWindow returns a descriptor with no kind-specific state.
func NewWindow(kind Kind, frame Frame) WindowDescriptor {
	return WindowDescriptor{Kind: kind, Frame: frame}
}

// NewGlyphWindow returns a GlyphWindow descriptor for glyphName.
func NewGlyphWindow(glyphName string, frame Frame) WindowDescriptor {
	return WindowDescriptor{Kind: KindGlyphWindow, Frame: frame, GlyphName: glyphName}
}

// NewSpaceCenter returns a SpaceCenter descriptor.
func NewSpaceCenter(state SpaceCenterState, frame Frame) WindowDescriptor {
	return WindowDescriptor{Kind: KindSpaceCenter, Frame: frame, SpaceCenter: &state}
}

// SortFontWindowFirst returns a copy of windows with every FontWindow moved
// ahead of the other kinds. Relative order is otherwise preserved.
func SortFontWindowFirst(windows []WindowDescriptor) []WindowDescriptor {
	sorted := make([]WindowDescriptor, 0, len(windows))
	for _, w := range windows {
		if w.Kind == KindFontWindow {
			sorted = append(sorted, w)
		}
	}
	for _, w := range windows {
		if w.Kind != KindFontWindow {
			sorted = append(sorted, w)
		}
	}
	return sorted
}
