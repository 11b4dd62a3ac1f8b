// Package ai sends prompts to a locally installed language model and streams
// the reply.
//
// The model runs as a child process, "ollama run <model> <prompt>" by
// default. Each call builds a prompt envelope:
//
//	You are Darkelf Retro AI.
//	Focus on retro computing, emulation, and digital preservation.
//	Output Mode: FACT_SHEET
//	Be concise, factual, and structured when possible.
//
//	<question>
//
// Standard output is read as it arrives and forwarded to a Display sink;
// standard error is discarded. The sink is closed exactly once whether the
// process exits cleanly, fails, or is cancelled through the cancel function
// handed to the display.
//
// Failures never escape as panics: a missing binary is ErrLaunch and a failed
// run is ErrProcess. There is no timeout on the process itself.
package ai
