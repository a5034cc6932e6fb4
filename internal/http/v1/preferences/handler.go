package preferences

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jirehclean/portal/internal/platform/auth"
	prefsvc "github.com/jirehclean/portal/internal/service/preferences"
)

// Register registers accessibility preference endpoints.
func Register(api huma.API, svc prefsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-preferences",
		Method:      http.MethodGet,
		Path:        "/preferences",
		Summary:     "Get accessibility preferences",
		Description: "Retrieves the caller's stored accessibility preferences. Users with no stored record get the defaults.",
		Tags:        []string{"Preferences"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *PreferencesGetInput) (*PreferencesGetOutput, error) {
		user := auth.UserFromContext(ctx)

		prefs, err := svc.Get(ctx, user.UID)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &PreferencesGetOutput{Body: toHTTPPreferences(prefs)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-preferences",
		Method:      http.MethodPut,
		Path:        "/preferences",
		Summary:     "Replace accessibility preferences",
		Description: "Replaces the caller's stored preferences with the provided record. There are no partial updates.",
		Tags:        []string{"Preferences"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *PreferencesPutInput) (*PreferencesPutOutput, error) {
		user := auth.UserFromContext(ctx)

		prefs := prefsvc.Preferences{
			FontLevel:      input.Body.FontLevel,
			HighContrast:   input.Body.HighContrast,
			HighlightLinks: input.Body.HighlightLinks,
		}.Normalize()

		if err := svc.Put(ctx, user.UID, prefs); err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &PreferencesPutOutput{Body: toHTTPPreferences(prefs)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reset-preferences",
		Method:      http.MethodDelete,
		Path:        "/preferences",
		Summary:     "Reset accessibility preferences",
		Description: "Resets the caller's preferences to the defaults and returns them.",
		Tags:        []string{"Preferences"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *PreferencesResetInput) (*PreferencesResetOutput, error) {
		user := auth.UserFromContext(ctx)

		prefs, err := svc.Reset(ctx, user.UID)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &PreferencesResetOutput{Body: toHTTPPreferences(prefs)}, nil
	})
}

func toHTTPPreferences(p prefsvc.Preferences) Preferences {
	return Preferences{
		FontLevel:      p.FontLevel,
		HighContrast:   p.HighContrast,
		HighlightLinks: p.HighlightLinks,
	}
}
