// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the session handlers. They give
// clients a more specific reason for closure than the standard codes.
// Failures before the upgrade (bad session id, bad token) answer with plain
// HTTP status codes instead.
const (
	BadSubprotocolError  = 3000 // Client connected with an unsupported subprotocol.
	SessionFinishedError = 3003 // The match already ended or the table was aborted.
)
