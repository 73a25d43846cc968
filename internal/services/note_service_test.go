package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestNoteService_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := newTestUser(t, db, "alice")

	note, err := svc.Create(alice, "  buy milk  ", false)
	require.NoError(t, err)
	require.Equal(t, "buy milk", note.Note)
	require.False(t, note.IsDone)
	require.Equal(t, alice, note.UserID)
	require.Positive(t, note.NoteID)

	notes, err := svc.ListForUser(alice)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, note.NoteID, notes[0].NoteID)
}

func TestNoteService_CreateEmptyText(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := newTestUser(t, db, "alice")

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(alice, text, false)
		require.ErrorIs(t, err, ErrEmptyNote, "text=%q", text)
	}

	// Nothing may have been persisted.
	notes, err := svc.ListForUser(alice)
	require.NoError(t, err)
	require.Empty(t, notes)
}

func TestNoteService_ListIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	_, err := svc.Create(alice, "alice's note", false)
	require.NoError(t, err)

	notes, err := svc.ListForUser(bob)
	require.NoError(t, err)
	require.NotNil(t, notes)
	require.Empty(t, notes)
}

func TestNoteService_UpdateFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := newTestUser(t, db, "alice")

	note, err := svc.Create(alice, "buy milk", false)
	require.NoError(t, err)

	// Toggle done only; text must survive.
	updated, err := svc.UpdateFields(alice, note.NoteID, NoteUpdate{IsDone: boolPtr(true)})
	require.NoError(t, err)
	require.True(t, updated.IsDone)
	require.Equal(t, "buy milk", updated.Note)

	// Change text only; done flag must survive.
	updated, err = svc.UpdateFields(alice, note.NoteID, NoteUpdate{Note: strPtr("buy oat milk")})
	require.NoError(t, err)
	require.True(t, updated.IsDone)
	require.Equal(t, "buy oat milk", updated.Note)
}

func TestNoteService_UpdateFieldsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := newTestUser(t, db, "alice")

	note, err := svc.Create(alice, "buy milk", false)
	require.NoError(t, err)

	_, err = svc.UpdateFields(alice, note.NoteID, NoteUpdate{})
	require.ErrorIs(t, err, ErrNoFields)

	// A blank text patch counts as no field, not as an erase.
	_, err = svc.UpdateFields(alice, note.NoteID, NoteUpdate{Note: strPtr("   ")})
	require.ErrorIs(t, err, ErrNoFields)
}

func TestNoteService_CrossUserAccessDenied(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	note, err := svc.Create(alice, "alice's note", false)
	require.NoError(t, err)

	_, err = svc.UpdateFields(bob, note.NoteID, NoteUpdate{IsDone: boolPtr(true)})
	require.ErrorIs(t, err, ErrNoteNotFound)

	_, err = svc.Replace(bob, note.NoteID, "stolen", true)
	require.ErrorIs(t, err, ErrNoteNotFound)

	err = svc.Delete(bob, note.NoteID)
	require.ErrorIs(t, err, ErrNoteNotFound)

	// The note is untouched.
	notes, err := svc.ListForUser(alice)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "alice's note", notes[0].Note)
	require.False(t, notes[0].IsDone)
}

func TestNoteService_Replace(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := newTestUser(t, db, "alice")

	note, err := svc.Create(alice, "buy milk", false)
	require.NoError(t, err)

	updated, err := svc.Replace(alice, note.NoteID, "  buy bread  ", true)
	require.NoError(t, err)
	require.Equal(t, "buy bread", updated.Note)
	require.True(t, updated.IsDone)
	require.Equal(t, alice, updated.UserID)

	_, err = svc.Replace(alice, note.NoteID, "   ", true)
	require.ErrorIs(t, err, ErrEmptyNote)

	_, err = svc.Replace(alice, 99999, "whatever", false)
	require.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteService_DeleteTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := newTestUser(t, db, "alice")

	note, err := svc.Create(alice, "buy milk", false)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(alice, note.NoteID))
	require.ErrorIs(t, svc.Delete(alice, note.NoteID), ErrNoteNotFound)
}
