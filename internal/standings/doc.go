// Package standings derives win/loss/tie records and ranked tables from a game
// log. Every function is pure: callers filter the log to the scope they want
// and can recompute freely on each request.
package standings
