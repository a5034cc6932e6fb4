package session

// SessionGetOutput for GET /session
type SessionGetOutput struct {
	Body Session
}

// NameUpdateOutput for PUT /session/name
type NameUpdateOutput struct {
	Body Session
}
