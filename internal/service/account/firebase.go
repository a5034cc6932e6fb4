package account

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"github.com/jirehclean/portal/internal/platform/logging"
)

// FirebaseService implements Service against the Firebase Auth user store.
type FirebaseService struct {
	client *auth.Client
}

var _ Service = (*FirebaseService)(nil)

// NewFirebaseService creates an account service backed by Firebase Auth.
func NewFirebaseService(client *auth.Client) *FirebaseService {
	return &FirebaseService{client: client}
}

// UpdateDisplayName sets the display name on the Firebase user record.
func (s *FirebaseService) UpdateDisplayName(ctx context.Context, uid, name string) (string, error) {
	name, err := NormalizeDisplayName(name)
	if err != nil {
		return "", err
	}

	update := (&auth.UserToUpdate{}).DisplayName(name)
	if _, err := s.client.UpdateUser(ctx, uid, update); err != nil {
		if auth.IsUserNotFound(err) {
			return "", ErrNotFound
		}
		logging.LogError(ctx, "failed to update display name", err,
			zap.String("uid", uid))
		return "", fmt.Errorf("update display name: %w", err)
	}

	logging.LogAuditEvent(ctx, "update_name", uid, "account", uid, "success", nil)
	return name, nil
}
