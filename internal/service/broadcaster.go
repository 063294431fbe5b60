package service

// Broadcaster pushes live events to connected attempt watchers. The WebSocket
// hub implements it; the service only nil-checks and fires.
type Broadcaster interface {
	BroadcastToAttempt(attemptID string, event string, payload interface{})
}
