// Package cli is the interactive RecipeBox terminal client.
//
// It wires configuration, the session store and the HTTP API client, then
// runs a read-eval-print loop. Commands that need an identity use the
// session's token; when the server rejects it the session is dropped and
// the user is asked to log in again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See runREPL for the command table.
package cli
