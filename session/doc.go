// Package session ties the extraction pipeline together around one open
// document.
//
// A Session owns every piece of mutable state: the page source and
// renderer, the current page and display zoom, the selection, the marker
// store, the current grid, extracted and manually entered grids per page
// and the orientation corrector. Operations validate their inputs before
// changing anything, so a failed call leaves the session as it was.
//
// A Session is not safe for concurrent use. Callers that run detection or
// extraction in the background must serialize every call.
//
// The Dispatcher maps named intents such as "add-column" or "extract" to
// session operations so that scripts and other front ends can drive a
// session without depending on its method set:
//
//	s := session.New(session.DefaultConfig())
//	d := session.NewDispatcher(s)
//	err := d.Run(strings.NewReader("load-document report.pdf\nselect 72 92 522 182\ndetect\nextract\n"), os.Stdout)
package session
