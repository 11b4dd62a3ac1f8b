// Package app is the composition root for retroai.
//
// Run loads configuration and preferences, opens the rotating log file,
// builds the archive client, the terminal console and the model dispatcher,
// shows the boot screen and then hands control to the session loop:
//
//	config.Load ─┐
//	prefs.Load  ─┼─> archive.Client ─┐
//	logging.New ─┘   ui.Console ─────┼─> session.Loop.Run
//	                 ai.Dispatcher ──┘
//
// Nothing runs in the background. Connectivity is probed by the loop on
// every menu render and model output streams only while a question is
// being answered.
//
// Run returns nil when the user quits, input ends or the context is
// cancelled. Errors are returned only for startup failures such as an
// unparsable config file.
package app
