// Package cli is the interactive seller dashboard client.
//
// NewApp opens the local store, restores the saved session and wires the
// API services; App.Run then shows the landing page and starts a REPL that
// navigates dashboard pages (go /dashboard/analytics), manages the linked
// account selection and sharing, moves the date range and prints the period
// comparison cards. A background watcher probes the server's gRPC health
// endpoint and shows online/offline in the prompt.
package cli
