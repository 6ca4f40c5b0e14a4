package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqGenerator returns a distinct record on every call.
type seqGenerator struct {
	calls   int
	avatars int
	err     error
	next    *Record
}

func (g *seqGenerator) Generate(_ context.Context) (Record, error) {
	if g.err != nil {
		return Record{}, g.err
	}
	g.calls++
	if g.next != nil {
		rec := *g.next
		g.next = nil
		return rec, nil
	}
	n := g.calls
	return Record{
		AvatarURL: fmt.Sprintf("https://avatars.test/%d.png", n),
		FullName:  fmt.Sprintf("Person %d", n),
		Nickname:  fmt.Sprintf("person_%d", n),
		About:     fmt.Sprintf("About person %d.", n),
		Interests: NewInterests(fmt.Sprintf("Hobby%d", n), "Travel"),
		Achievements: []string{
			fmt.Sprintf("First %d.", n),
			fmt.Sprintf("Second %d.", n),
			fmt.Sprintf("Third %d.", n),
		},
		Email: fmt.Sprintf("person%d@example.test", n),
		Phone: fmt.Sprintf("555-000-%04d", n),
	}, nil
}

func (g *seqGenerator) Avatar(_ context.Context) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.avatars++
	return fmt.Sprintf("https://avatars.test/new-%d.png", g.avatars), nil
}

func newTestStore(t *testing.T) (*Store, *seqGenerator) {
	t.Helper()
	gen := &seqGenerator{}
	ids := 0
	s := NewStore(gen, WithIDFunc(func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}))
	_, err := s.Initialize(context.Background())
	require.NoError(t, err)
	return s, gen
}

func TestInitialize(t *testing.T) {
	s, gen := newTestStore(t)

	snap := s.Snapshot()
	assert.True(t, snap.Initialized)
	assert.Equal(t, ModeView, snap.Mode)
	assert.Equal(t, "id-1", snap.Record.ID)
	assert.Equal(t, "Person 1", snap.Record.FullName)
	assert.Len(t, snap.Record.Achievements, AchievementCount)
	assert.Equal(t, 1, gen.calls)
}

func TestInitializeGeneratorFailure(t *testing.T) {
	s := NewStore(&seqGenerator{err: errors.New("boom")})

	_, err := s.Initialize(context.Background())
	require.Error(t, err)
	assert.False(t, s.Snapshot().Initialized)
}

func TestSetFieldChangesOnlyThatField(t *testing.T) {
	for _, f := range Fields {
		t.Run(string(f), func(t *testing.T) {
			s, _ := newTestStore(t)
			before := s.Snapshot().Record

			s.SetField(f, "new value")

			after := s.Snapshot().Record
			assert.Equal(t, "new value", after.Get(f))
			for _, other := range Fields {
				if other == f {
					continue
				}
				assert.Equal(t, before.Get(other), after.Get(other), "field %s changed", other)
			}
			assert.Equal(t, before.Interests, after.Interests)
			assert.Equal(t, before.Achievements, after.Achievements)
			assert.Equal(t, before.ID, after.ID)
		})
	}
}

func TestSetFieldAcceptsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetField(FieldEmail, "")
	assert.Equal(t, "", s.Snapshot().Record.Email)
}

func TestToggleInterestAbsentTwice(t *testing.T) {
	s, _ := newTestStore(t)
	original := s.Snapshot().Record.Interests

	s.ToggleInterest("Music")
	added := s.Snapshot().Record.Interests
	assert.Equal(t, "Music", added[len(added)-1])
	assert.Equal(t, original.Len()+1, added.Len())

	s.ToggleInterest("Music")
	assert.True(t, original.Equal(s.Snapshot().Record.Interests))
}

func TestToggleInterestReAddMovesToEnd(t *testing.T) {
	s, _ := newTestStore(t)
	// Initial interests: [Hobby1 Travel]
	s.ToggleInterest("Hobby1")
	assert.Equal(t, Interests{"Travel"}, s.Snapshot().Record.Interests)

	s.ToggleInterest("Hobby1")
	assert.Equal(t, Interests{"Travel", "Hobby1"}, s.Snapshot().Record.Interests)
}

func TestToggleInterestOutsideCatalog(t *testing.T) {
	s, _ := newTestStore(t)
	s.ToggleInterest("Underwater Basket Weaving")
	assert.True(t, s.Snapshot().Record.Interests.Has("Underwater Basket Weaving"))
}

func TestRandomizeReplacesEverything(t *testing.T) {
	s, _ := newTestStore(t)
	s.ToggleMode()
	initial := s.Snapshot().Record

	require.NoError(t, s.Randomize(context.Background()))
	require.NoError(t, s.Randomize(context.Background()))

	final := s.Snapshot()
	assert.Equal(t, ModeEdit, final.Mode, "randomize must not touch mode")
	assert.Len(t, final.Record.Achievements, AchievementCount)
	assert.NotEqual(t, initial.ID, final.Record.ID)
	for _, f := range Fields {
		assert.NotEqual(t, initial.Get(f), final.Record.Get(f), "field %s carried over", f)
	}
	for i := range initial.Achievements {
		assert.NotEqual(t, initial.Achievements[i], final.Record.Achievements[i])
	}
}

func TestRandomizeFailureKeepsRecord(t *testing.T) {
	s, gen := newTestStore(t)
	before := s.Snapshot().Record

	gen.err = errors.New("generator down")
	err := s.Randomize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, gen.err)
	assert.Equal(t, before, s.Snapshot().Record)
}

func TestRandomizeRejectsBrokenRecord(t *testing.T) {
	s, gen := newTestStore(t)
	before := s.Snapshot().Record

	gen.next = &Record{FullName: "Short", Achievements: []string{"only one"}}
	err := s.Randomize(context.Background())

	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "achievements", inv.Rule)
	assert.Equal(t, before, s.Snapshot().Record)
}

func TestInstallCollapsesDuplicateInterests(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.Install(Record{
		FullName:     "Dup",
		Interests:    Interests{"Art", "Music", "Art"},
		Achievements: []string{"a", "b", "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, Interests{"Art", "Music"}, s.Snapshot().Record.Interests)
}

func TestRandomizeAvatar(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.Snapshot().Record

	require.NoError(t, s.RandomizeAvatar(context.Background()))

	after := s.Snapshot().Record
	assert.Equal(t, "https://avatars.test/new-1.png", after.AvatarURL)
	assert.Equal(t, before.With(FieldAvatarURL, after.AvatarURL), after)
}

func TestToggleModeIsItsOwnInverse(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.Snapshot()

	s.ToggleMode()
	assert.Equal(t, ModeEdit, s.Mode())
	s.ToggleMode()

	after := s.Snapshot()
	assert.Equal(t, before.Mode, after.Mode)
	assert.Equal(t, before.Record, after.Record)
}

func TestEditScenario(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.Equal(t, ModeView, s.Mode())

	require.NoError(t, s.Dispatch(ctx, ToggleModeIntent{}))
	assert.Equal(t, ModeEdit, s.Mode())

	require.NoError(t, s.Dispatch(ctx, SetFieldIntent{Field: FieldFullName, Value: "Ada Lovelace"}))
	assert.Equal(t, "Ada Lovelace", s.Snapshot().Record.FullName)

	require.False(t, s.Snapshot().Record.Interests.Has("Music"))
	require.NoError(t, s.Dispatch(ctx, ToggleInterestIntent{Label: "Music"}))
	interests := s.Snapshot().Record.Interests
	assert.Equal(t, "Music", interests[len(interests)-1])

	saved := s.Snapshot().Record
	require.NoError(t, s.Dispatch(ctx, ToggleModeIntent{}))
	assert.Equal(t, ModeView, s.Mode())
	assert.Equal(t, saved, s.Snapshot().Record)
}

func TestDispatchBeforeInitialize(t *testing.T) {
	s := NewStore(&seqGenerator{})
	ctx := context.Background()

	err := s.Dispatch(ctx, SetFieldIntent{Field: FieldFullName, Value: "x"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, s.Dispatch(ctx, ToggleModeIntent{}), ErrNotInitialized)
	assert.Equal(t, ModeView, s.Mode())

	require.NoError(t, s.Dispatch(ctx, RandomizeIntent{}))
	snap := s.Snapshot()
	assert.True(t, snap.Initialized)
	assert.Equal(t, ModeView, snap.Mode)
}

func TestFirstInstallStartsInViewMode(t *testing.T) {
	s := NewStore(&seqGenerator{})
	s.ToggleMode()
	require.Equal(t, ModeEdit, s.Mode())

	require.NoError(t, s.Install(Record{FullName: "Late", Achievements: []string{"a", "b", "c"}}))
	assert.Equal(t, ModeView, s.Mode())

	s.ToggleMode()
	require.NoError(t, s.Install(Record{FullName: "Later", Achievements: []string{"a", "b", "c"}}))
	assert.Equal(t, ModeEdit, s.Mode(), "later installs keep the mode")
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseField("shoeSize")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s, _ := newTestStore(t)
	snap := s.Snapshot()
	snap.Record.Achievements[0] = "mutated"
	snap.Record.Interests[0] = "mutated"

	fresh := s.Snapshot().Record
	assert.NotEqual(t, "mutated", fresh.Achievements[0])
	assert.NotEqual(t, "mutated", fresh.Interests[0])
}
