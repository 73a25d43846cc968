package models

import "time"

// Note is a single to-do item. A note belongs to exactly one user and is
// only ever readable or writable by that user.
type Note struct {
	NoteID    int       `json:"noteId"`
	Note      string    `json:"note"`
	IsDone    bool      `json:"isDone"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
