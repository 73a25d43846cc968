package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lmtavares/todo-notes-be/internal/models"
)

// NoteUpdate is a sparse patch for a note. Nil fields are left untouched.
type NoteUpdate struct {
	Note   *string
	IsDone *bool
}

// NoteServiceProvider defines the interface for note services. Every method
// takes the verified owner's user id; a caller-supplied owner is never
// consulted.
type NoteServiceProvider interface {
	ListForUser(userID int) ([]models.Note, error)
	Create(userID int, text string, isDone bool) (models.Note, error)
	UpdateFields(userID, noteID int, update NoteUpdate) (models.Note, error)
	Replace(userID, noteID int, text string, isDone bool) (models.Note, error)
	Delete(userID, noteID int) error
}

// NoteService provides business logic for notes and enforces ownership.
type NoteService struct {
	db *sql.DB
}

// NewNoteService creates a new NoteService.
func NewNoteService(db *sql.DB) *NoteService {
	return &NoteService{db: db}
}

// getOwned resolves a note by id and checks it belongs to userID. A missing
// note and a foreign note both come back as ErrNoteNotFound.
func (s *NoteService) getOwned(userID, noteID int) (models.Note, error) {
	var note models.Note
	row := s.db.QueryRow("SELECT note_id, note, is_done, user_id, created_at FROM notes WHERE note_id = ?", noteID)
	err := row.Scan(&note.NoteID, &note.Note, &note.IsDone, &note.UserID, &note.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}
	if note.UserID != userID {
		return models.Note{}, ErrNoteNotFound
	}
	return note, nil
}

// ListForUser retrieves all notes owned by the given user.
func (s *NoteService) ListForUser(userID int) ([]models.Note, error) {
	rows, err := s.db.Query("SELECT note_id, note, is_done, user_id, created_at FROM notes WHERE user_id = ? ORDER BY note_id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.NoteID, &note.Note, &note.IsDone, &note.UserID, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// Create inserts a new note owned by the given user.
func (s *NoteService) Create(userID int, text string, isDone bool) (models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Note{}, ErrEmptyNote
	}

	res, err := s.db.Exec("INSERT INTO notes(note, is_done, user_id) VALUES(?, ?, ?)", text, isDone, userID)
	if err != nil {
		return models.Note{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Note{}, err
	}

	return s.getOwned(userID, int(id))
}

// UpdateFields applies a sparse patch to a note the user owns and returns the
// updated note. Only the provided fields are written.
func (s *NoteService) UpdateFields(userID, noteID int, update NoteUpdate) (models.Note, error) {
	set := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)
	if update.Note != nil {
		text := strings.TrimSpace(*update.Note)
		if text != "" {
			set = append(set, "note = ?")
			args = append(args, text)
		}
	}
	if update.IsDone != nil {
		set = append(set, "is_done = ?")
		args = append(args, *update.IsDone)
	}
	if len(set) == 0 {
		return models.Note{}, ErrNoFields
	}

	if _, err := s.getOwned(userID, noteID); err != nil {
		return models.Note{}, err
	}

	args = append(args, noteID)
	if _, err := s.db.Exec("UPDATE notes SET "+strings.Join(set, ", ")+" WHERE note_id = ?", args...); err != nil {
		return models.Note{}, err
	}

	return s.getOwned(userID, noteID)
}

// Replace overwrites a note's text and done flag. The owner column is
// re-forced to the verified user so a note can never migrate to another
// account.
func (s *NoteService) Replace(userID, noteID int, text string, isDone bool) (models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Note{}, ErrEmptyNote
	}

	if _, err := s.getOwned(userID, noteID); err != nil {
		return models.Note{}, err
	}

	if _, err := s.db.Exec("UPDATE notes SET note = ?, is_done = ?, user_id = ? WHERE note_id = ?", text, isDone, userID, noteID); err != nil {
		return models.Note{}, err
	}

	return s.getOwned(userID, noteID)
}

// Delete removes a note the user owns. Deleting an already-deleted note
// reports ErrNoteNotFound rather than succeeding silently.
func (s *NoteService) Delete(userID, noteID int) error {
	if _, err := s.getOwned(userID, noteID); err != nil {
		return err
	}

	_, err := s.db.Exec("DELETE FROM notes WHERE note_id = ?", noteID)
	return err
}
