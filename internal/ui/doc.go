// Package ui renders retroai's terminal screens and owns terminal I/O.
//
// Rendering is pure: Renderer turns archive results and item metadata into
// lipgloss-styled strings (menu panel, result table, detail panel, notices)
// so the session loop and its tests can treat screens as plain text.
// ResultRows is the projection behind the table and is exported for tests.
//
// Console handles input and transient regions. On a terminal it reads lines
// through liner (history, Ctrl+C aborts), clears the screen between menus,
// shows a bubbletea spinner while blocking requests run, and opens a live
// region for model output via Stream. The live region tails the response as
// it arrives; once the model finishes the region is torn down and the full
// text is printed to normal output so it stays in scrollback. Esc or Ctrl+C
// inside the region stops the model process.
//
// When stdin or stdout is not a terminal everything degrades to a line
// scanner and direct writes, which is also what the tests exercise.
//
// Themes are Dracula (default) and Slate; NextTheme cycles between them.
package ui
