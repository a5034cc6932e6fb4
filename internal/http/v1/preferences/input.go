package preferences

// PreferencesGetInput for GET /preferences (no body needed)
type PreferencesGetInput struct{}

// PreferencesPutInput for PUT /preferences
type PreferencesPutInput struct {
	Body Preferences
}

// PreferencesResetInput for DELETE /preferences (no body needed)
type PreferencesResetInput struct{}
