package profile

import "context"

// Intent is a user action addressed to the Store.
type Intent interface {
	apply(ctx context.Context, s *Store) error
}

// SetFieldIntent edits one scalar field.
type SetFieldIntent struct {
	Field Field
	Value string
}

// ToggleInterestIntent adds or removes an interest label.
type ToggleInterestIntent struct {
	Label string
}

// RandomizeIntent replaces the whole record.
type RandomizeIntent struct{}

// RandomizeAvatarIntent replaces only the avatar.
type RandomizeAvatarIntent struct{}

// ToggleModeIntent switches between View and Edit.
type ToggleModeIntent struct{}

func (i SetFieldIntent) apply(_ context.Context, s *Store) error {
	s.SetField(i.Field, i.Value)
	return nil
}

func (i ToggleInterestIntent) apply(_ context.Context, s *Store) error {
	s.ToggleInterest(i.Label)
	return nil
}

func (RandomizeIntent) apply(ctx context.Context, s *Store) error {
	return s.Randomize(ctx)
}

func (RandomizeAvatarIntent) apply(ctx context.Context, s *Store) error {
	return s.RandomizeAvatar(ctx)
}

func (ToggleModeIntent) apply(_ context.Context, s *Store) error {
	s.ToggleMode()
	return nil
}

// Dispatch applies an intent. Until a record has been installed only
// RandomizeIntent is accepted; everything else fails with ErrNotInitialized.
func (s *Store) Dispatch(ctx context.Context, in Intent) error {
	if _, ok := in.(RandomizeIntent); !ok && !s.isInitialized() {
		return ErrNotInitialized
	}
	return in.apply(ctx, s)
}
