package preferences

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/jirehclean/portal/internal/platform/logging"
)

const preferencesCollection = "preferences"

// firestorePreferences maps to the Firestore document structure, one doc per
// user keyed by uid. fontLevel is the canonical field name; reader mode is
// never written.
type firestorePreferences struct {
	FontLevel      int       `firestore:"fontLevel"`
	HighContrast   bool      `firestore:"highContrast"`
	HighlightLinks bool      `firestore:"highlightLinks"`
	UpdatedAt      time.Time `firestore:"updatedAt"`
}

// FirestoreStore implements Service using Firestore.
type FirestoreStore struct {
	client *firestore.Client
	now    func() time.Time
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client, now: time.Now}
}

// Get retrieves the user's preference record, falling back to defaults when
// none exists or the stored bytes cannot be decoded.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (Preferences, error) {
	doc, err := s.client.Collection(preferencesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Defaults(), nil
		}
		return Defaults(), err
	}

	var fp firestorePreferences
	if err := doc.DataTo(&fp); err != nil {
		applog.LogWarn(ctx, "malformed preference record, using defaults")
		return Defaults(), nil
	}

	return Preferences{
		FontLevel:      fp.FontLevel,
		HighContrast:   fp.HighContrast,
		HighlightLinks: fp.HighlightLinks,
	}.Normalize(), nil
}

// Put replaces the user's preference record.
func (s *FirestoreStore) Put(ctx context.Context, userID string, prefs Preferences) error {
	prefs = prefs.Normalize()
	fp := firestorePreferences{
		FontLevel:      prefs.FontLevel,
		HighContrast:   prefs.HighContrast,
		HighlightLinks: prefs.HighlightLinks,
		UpdatedAt:      s.now().UTC(),
	}

	_, err := s.client.Collection(preferencesCollection).Doc(userID).Set(ctx, fp)
	if err != nil {
		applog.LogAuditEvent(ctx, "update", userID, "preferences", userID, "failure", nil)
		return err
	}

	applog.LogAuditEvent(ctx, "update", userID, "preferences", userID, "success", nil)
	return nil
}

// Reset overwrites storage with the defaults and returns them.
func (s *FirestoreStore) Reset(ctx context.Context, userID string) (Preferences, error) {
	defaults := Defaults()
	if err := s.Put(ctx, userID, defaults); err != nil {
		return defaults, err
	}
	return defaults, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
