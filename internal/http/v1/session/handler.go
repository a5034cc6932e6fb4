package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jirehclean/portal/internal/identity"
	"github.com/jirehclean/portal/internal/platform/auth"
	accountsvc "github.com/jirehclean/portal/internal/service/account"
	sessioncore "github.com/jirehclean/portal/internal/session"
)

// Register registers session endpoints. adminEmail is the distinguished
// operator address used for classification; empty disables it.
func Register(api huma.API, accounts accountsvc.Service, adminEmail string) {
	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/session",
		Summary:     "Get current session",
		Description: "Classifies the caller's token into a session state. Anonymous callers are rejected by the auth middleware, so the anonymous state never appears here.",
		Tags:        []string{"Session"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *SessionGetInput) (*SessionGetOutput, error) {
		user := auth.UserFromContext(ctx)
		return &SessionGetOutput{
			Body: toHTTPSession(user, adminEmail),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-session-name",
		Method:      http.MethodPut,
		Path:        "/session/name",
		Summary:     "Set display name",
		Description: "Sets the caller's display name, resolving the name-collection prompt after a first phone sign-in.",
		Tags:        []string{"Session"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *NameUpdateInput) (*NameUpdateOutput, error) {
		user := auth.UserFromContext(ctx)

		name, err := accounts.UpdateDisplayName(ctx, user.UID, input.Body.DisplayName)
		if err != nil {
			return nil, mapServiceError(err)
		}

		updated := *user
		updated.DisplayName = name
		return &NameUpdateOutput{
			Body: toHTTPSession(&updated, adminEmail),
		}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, accountsvc.ErrEmptyName):
		return huma.Error422UnprocessableEntity("display name must not be blank")
	case errors.Is(err, accountsvc.ErrNotFound):
		return huma.Error404NotFound("user not found")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPSession(user *auth.User, adminEmail string) Session {
	id := &identity.Identity{
		UID:         user.UID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}
	state := sessioncore.Classify(id, adminEmail)
	sess := sessioncore.Session{State: state, Identity: id}

	return Session{
		State:       state.String(),
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhoneNumber: user.PhoneNumber,
		NeedsName:   sess.NeedsName(),
		Admin:       state == sessioncore.AuthenticatedAdmin,
	}
}
