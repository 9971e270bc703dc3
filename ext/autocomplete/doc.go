// Package autocomplete shows completion suggestions below the cursor.
//
// Requests run through the view's Scheduler so sources can block on I/O
// without stalling the event loop. Each view holds at most one request in
// flight; starting another or destroying the view cancels it.
package autocomplete
