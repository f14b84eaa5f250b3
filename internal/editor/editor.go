package editor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Almas2004/led/internal/models"
	"github.com/rs/zerolog/log"
)

// State is the editor's lifecycle phase.
type State int

const (
	StateClosed State = iota
	StateCreating
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	}
	return "closed"
}

// Store persists drafts. Implementations dispatch on the concrete draft type.
type Store interface {
	Create(ctx context.Context, d Draft) error
	Update(ctx context.Context, id int64, d Draft) error
}

// Refresher reloads the full collection of a kind after a successful save.
type Refresher func(ctx context.Context, kind Kind) error

// SaveError reports a failed create or update. Slug conflicts and any other
// server-side rejection arrive here.
type SaveError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Editor drives one item at a time through Closed, Creating and Editing(id).
// It is not safe for concurrent use.
type Editor struct {
	store   Store
	refresh Refresher
	now     func() time.Time

	state State
	id    int64
	draft Draft
}

func NewEditor(store Store, refresh Refresher) *Editor {
	return &Editor{
		store:   store,
		refresh: refresh,
		now:     time.Now,
	}
}

func (e *Editor) State() State { return e.state }

// EditingID returns the id of the persisted item being edited.
func (e *Editor) EditingID() (int64, bool) {
	return e.id, e.state == StateEditing
}

// Draft returns the open draft, or nil when closed.
func (e *Editor) Draft() Draft { return e.draft }

// Open starts a new item of kind from its template. Any open draft is discarded.
func (e *Editor) Open(kind Kind) error {
	d, err := NewDraft(kind, e.now())
	if err != nil {
		return err
	}
	e.state, e.id, e.draft = StateCreating, 0, d
	return nil
}

// Edit opens a copy of an existing item.
func (e *Editor) Edit(kind Kind, item models.Content) error {
	d, err := DraftFrom(item)
	if err != nil {
		return err
	}
	if d.Kind() != kind {
		return fmt.Errorf("%w: %s item opened as %s", ErrKindMismatch, d.Kind(), kind)
	}
	if item.GetID() == 0 {
		return ErrMissingID
	}
	e.state, e.id, e.draft = StateEditing, item.GetID(), d
	return nil
}

// Set writes value through the draft's binding for f.
func (e *Editor) Set(f Field, value string) error {
	if e.draft == nil {
		return ErrEditorClosed
	}
	return e.draft.Set(f, value)
}

// AttachImage ingests an upload and makes it the draft's first image.
// A rejected upload leaves the draft unchanged.
func (e *Editor) AttachImage(name string, size int64, r io.Reader) error {
	if e.draft == nil {
		return ErrEditorClosed
	}
	uri, err := IngestImage(name, size, r)
	if err != nil {
		return err
	}
	e.draft.setImage(uri)
	return nil
}

// Save validates the draft and persists it. A validation failure never
// reaches the store and keeps the editor open, as does a store failure.
func (e *Editor) Save(ctx context.Context) error {
	if e.draft == nil {
		return ErrEditorClosed
	}
	if err := Validate(e.draft); err != nil {
		return err
	}

	kind := e.draft.Kind()
	var err error
	op := "create"
	if e.state == StateEditing {
		op = "update"
		err = e.store.Update(ctx, e.id, e.draft)
	} else {
		err = e.store.Create(ctx, e.draft)
	}
	if err != nil {
		return &SaveError{Kind: kind, Op: op, Err: err}
	}

	log.Info().
		Str("kind", string(kind)).
		Str("op", op).
		Str("slug", e.draft.Common().Slug).
		Msg("Content saved")

	e.Cancel()
	if e.refresh != nil {
		if err := e.refresh(ctx, kind); err != nil {
			log.Warn().Err(err).Str("kind", string(kind)).Msg("Failed to refresh after save")
		}
	}
	return nil
}

// Cancel closes the editor, discarding the draft.
func (e *Editor) Cancel() {
	e.state, e.id, e.draft = StateClosed, 0, nil
}
