package preferences

// PreferencesGetOutput for GET /preferences
type PreferencesGetOutput struct {
	Body Preferences
}

// PreferencesPutOutput for PUT /preferences
type PreferencesPutOutput struct {
	Body Preferences
}

// PreferencesResetOutput for DELETE /preferences
type PreferencesResetOutput struct {
	Body Preferences
}
