// Package gesture records and replays editor input as TOML scripts.
//
// A script is an ordered list of gestures, each doing exactly one thing:
// switching the pen mode, clicking at a canvas point, or clearing the
// canvas.
//
//	[[gesture]]
//	mode = "node"
//	[[gesture]]
//	click = [10.0, 10.0]
//	[[gesture]]
//	mode = "edge"
//	[[gesture]]
//	click = [12.0, 9.0]
//
// Scripts are input, not saved graphs: replaying one drives an
// [editor.Editor] through the same state machine a person clicking would,
// near-point snapping included. The terminal UI can record a session with
// [Script.Mode], [Script.Click] and [Script.Clear] and write it out with
// [Script.Encode].
package gesture
