package session

// Session describes the caller's classified session.
type Session struct {
	State       string `json:"state"                 doc:"Session state"                                enum:"authenticated_no_name,authenticated_named,authenticated_admin" example:"authenticated_named"`
	UID         string `json:"uid"                   doc:"User identifier"                              example:"user-123"`
	Email       string `json:"email,omitempty"       doc:"Email address, absent for phone-only users"   example:"jane@example.com"`
	DisplayName string `json:"displayName,omitempty" doc:"Display name"                                 example:"Jane Client"`
	PhoneNumber string `json:"phoneNumber,omitempty" doc:"Phone number (E.164)"                         example:"+14155550100"`
	NeedsName   bool   `json:"needsName"             doc:"True when the name prompt should block"       example:"false"`
	Admin       bool   `json:"admin"                 doc:"True for the operator account"                example:"false"`
}
