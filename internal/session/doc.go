// Package session converts between a running editor and a project.
//
// Capture walks the host's open documents and windows and builds a
// model.Project. Restore walks a project and drives the host to reopen the
// documents and windows at their saved frames, then runs the startup script.
//
// Restore is best effort. A missing file, a document that will not open or a
// window the host rejects is recorded in the Report and the pass continues
// with the next item. Restore must not run concurrently with another restore
// or with user-driven document switching: every step relies on the document
// it just opened being the host's current document.
package session
