package host

// DocumentID identifies an open document within a host session.
type DocumentID int

// WindowID identifies a window within a host session.
type WindowID int

// Document is an open document as reported by the host.
type Document struct {
	ID DocumentID `yaml:"id" json:"id"`
	// Path is the backing file, empty for documents never saved.
	Path    string     `yaml:"path,omitempty" json:"path,omitempty"`
	Windows []WindowID `yaml:"windows"        json:"windows"`
}

// Untitled reports whether the document has no backing file.
func (d Document) Untitled() bool {
	return d.Path == ""
}

// MenuItem places a menu command.
type MenuItem struct {
	Menu  string
	Title string
	After string
}

// SaveChoice is the user's answer to the save prompt.
type SaveChoice struct {
	Path             string
	UseRelativePaths bool
}
