// Package editor turns pointer clicks into graph operations.
//
// An [Editor] owns a [netwk.Graph] and a pen [Mode]. Front ends (the
// terminal UI, the HTTP canvas, gesture replay) feed it clicks in canvas
// coordinates:
//
//	ed := editor.New()
//	ed.SetMode(editor.ModePlaceNode)
//	ed.Handle(netwk.Pt(10, 10))
//
//	ed.SetMode(editor.ModePlaceEdge)
//	ed.Handle(netwk.Pt(12, 9))   // picks the node near (12, 9)
//	ed.Handle(netwk.Pt(98, 101)) // picks the second node and links them
//
// [Editor.Click] runs the state machine and returns a [Message];
// [Editor.Apply] performs a message against the graph. They are separate so
// a front end can inspect or forward messages before applying them.
// [Editor.Handle] does both.
//
// Multi-click gestures resolve their endpoints with near-point lookup and
// store the resolved node positions; Apply resolves those positions back to
// nodes with exact-point lookup.
package editor
