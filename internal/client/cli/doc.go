// Package cli implements the interactive terminal front-end for Inkpress:
// a REPL whose commands drive the session manager and the API client.
// Protected commands pass through the route guard; an anonymous user is
// pointed at login and resumed where they left off after signing in.
package cli
