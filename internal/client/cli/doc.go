// Package cli provides the interactive CommunityHub command-line client.
//
// It wires configuration, the local session database, the API client, the
// notification tray and the views into a REPL. Every command that changes
// the page goes through the router, so guarded pages redirect to the login
// page (remembering where the user was going) or home exactly as links
// would in a browser.
//
// Notifications are printed as they arrive and stay listed under "toasts"
// until they expire or are dismissed.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See App and runREPL for details.
package cli
