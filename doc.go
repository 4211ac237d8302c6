// Package votebot implements a traffic generator for the emojivoto demo
// application: a client that votes for one emoji, forever, against the
// voting service.
//
// A run goes through three phases. Logging is set up first. A preflight
// check then dials the joy and ghost voting backends, one after the other,
// and fails the run if either is unreachable. Finally a Voter dials the
// voting service once, reads its target from the VOTE_FOR environment
// variable, and casts a vote every 5 to 29 seconds.
//
// Nothing is retried. Any failure ends the run, and ExitCode turns the
// failing phase into a distinct process exit status so a supervisor (for
// example a Kubernetes restart policy) can tell them apart and restart the
// process:
//
//	1  logging could not be set up
//	2  a preflight endpoint was unreachable
//	3  the voting service was unreachable, VOTE_FOR was bad, or a vote failed
package votebot
