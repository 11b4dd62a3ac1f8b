// Package session runs the interactive menu as an explicit state machine.
//
// The loop has three states. MENU is initial: every MENU step probes the
// archive first, so connectivity is never cached between iterations, then
// renders the menu and dispatches one command. A search with at least one
// result moves to RESULTS, where item commands are read until the user
// goes back. EXIT ends Run.
//
// Transitions live in a map from State to step function; each step returns
// the next state. Every failure a user can trigger (offline search, bad
// index, unknown command, model launch or exit failure, HTTP errors) is
// rendered inline and the loop stays where it was. Only quitting, the end of
// input, or Ctrl+C at a prompt leave the loop.
//
// Results commands:
//
//	N        show details for result N
//	a [N]    ask the model about result N (prompts for N and a mode)
//	o [N]    open result N in the browser
//	c [N]    copy the link for result N
//	q, back  return to the menu (an empty line does the same)
package session
