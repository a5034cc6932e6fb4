package session

// SessionGetInput for GET /session (no body needed)
type SessionGetInput struct{}

// NameUpdateInput for PUT /session/name
type NameUpdateInput struct {
	Body struct {
		DisplayName string `json:"displayName" minLength:"1" maxLength:"100" required:"true" doc:"Display name" example:"Jane Client"`
	}
}
