package preferences

// Preferences represents the persisted accessibility settings. Reader mode
// is intentionally absent: it is session-only and never stored.
type Preferences struct {
	FontLevel      int  `json:"fontLevel"      doc:"Font scale level"      minimum:"0" maximum:"2" example:"1"`
	HighContrast   bool `json:"highContrast"   doc:"High contrast theme"   example:"false"`
	HighlightLinks bool `json:"highlightLinks" doc:"Link highlighting"     example:"true"`
}
