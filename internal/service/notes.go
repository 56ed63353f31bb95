package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/primeos/internal/feed"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

// NoteStore is the store surface the note service needs: the uniform table
// access plus the atomic note-and-tags write.
type NoteStore interface {
	types.Store

	// PutNoteWithTags upserts the note and, when tagIDs is non-nil,
	// replaces the note's junction rows with exactly those tag IDs, all in
	// one transaction. A nil tagIDs leaves the junction rows untouched.
	PutNoteWithTags(id string, note *types.Note, tagIDs []string) (string, error)
}

// NoteInput is the caller-supplied portion of a new note. Each Tags element
// is a tag ID or a tag name; unmatched names create new tags.
type NoteInput struct {
	Title       string
	RichContent types.RichContent
	Tags        []string
	Archived    bool
}

// NoteService owns the notes and tags tables and their junction.
type NoteService struct {
	store NoteStore
	log   *zap.Logger
	notes *feed.Feed[[]types.Note]
	tags  *feed.Feed[[]types.Tag]
}

// NewNoteService creates a note service over an attached store.
// A nil logger disables logging.
func NewNoteService(store NoteStore, logger *zap.Logger) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{
		store: store,
		log:   logger,
		notes: feed.New[[]types.Note](),
		tags:  feed.New[[]types.Tag](),
	}
}

// Notes returns the feed of non-deleted note snapshots, most recently
// updated first, with tags hydrated.
func (s *NoteService) Notes() *feed.Feed[[]types.Note] { return s.notes }

// Tags returns the feed of non-deleted tag snapshots.
func (s *NoteService) Tags() *feed.Feed[[]types.Tag] { return s.tags }

// LoadNotes queries the non-deleted notes and publishes the snapshot.
// Never returns an error; on failure it logs and keeps the prior snapshot.
func (s *NoteService) LoadNotes() {
	tbl, err := s.store.GetTable(types.NotesTable)
	if err != nil {
		s.log.Error("loading notes", zap.Error(err))
		return
	}
	rows, err := tbl.Fetch(map[string]any{"isDeleted": false})
	if err != nil {
		s.log.Error("loading notes", zap.Error(err))
		return
	}
	notes := make([]types.Note, 0, len(rows))
	for _, r := range rows {
		notes = append(notes, *(r.(*types.Note)))
	}
	s.notes.Publish(notes)
}

// LoadTags queries the non-deleted tags and publishes the snapshot.
func (s *NoteService) LoadTags() {
	tbl, err := s.store.GetTable(types.TagsTable)
	if err != nil {
		s.log.Error("loading tags", zap.Error(err))
		return
	}
	rows, err := tbl.Fetch(map[string]any{"isDeleted": false})
	if err != nil {
		s.log.Error("loading tags", zap.Error(err))
		return
	}
	tags := make([]types.Tag, 0, len(rows))
	for _, r := range rows {
		tags = append(tags, *(r.(*types.Tag)))
	}
	s.tags.Publish(tags)
}

// AddNote creates a note with the given tag references and returns it with
// tags hydrated.
func (s *NoteService) AddNote(input NoteInput) (*types.Note, error) {
	tagIDs, err := s.resolveTagRefs(input.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note := types.Note{
		Title:       input.Title,
		RichContent: input.RichContent,
		IsArchived:  input.Archived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.store.PutNoteWithTags("", &note, tagIDs)
	if err != nil {
		return nil, err
	}

	s.LoadNotes()
	s.LoadTags()
	return s.getNote(id)
}

// UpdateNote merges the partial update over the stored note and refreshes
// UpdatedAt. A non-nil Tags slice replaces the note's tag set in full.
func (s *NoteService) UpdateNote(id string, upd types.NoteUpdate) (*types.Note, error) {
	tbl, err := s.store.GetTable(types.NotesTable)
	if err != nil {
		return nil, err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return nil, err
	}
	note := got.(*types.Note)

	if upd.Title != nil {
		note.Title = *upd.Title
	}
	if upd.RichContent != nil {
		note.RichContent = *upd.RichContent
	}
	if upd.Archived != nil {
		note.IsArchived = *upd.Archived
	}
	note.UpdatedAt = time.Now()

	var tagIDs []string
	if upd.Tags != nil {
		if tagIDs, err = s.resolveTagRefs(upd.Tags); err != nil {
			return nil, err
		}
		if tagIDs == nil {
			tagIDs = []string{}
		}
	}

	if _, err := s.store.PutNoteWithTags(id, note, tagIDs); err != nil {
		return nil, err
	}

	s.LoadNotes()
	s.LoadTags()
	return s.getNote(id)
}

// DeleteNote soft-deletes by default; soft=false physically removes the note
// and its junction rows.
func (s *NoteService) DeleteNote(id string, soft bool) error {
	tbl, err := s.store.GetTable(types.NotesTable)
	if err != nil {
		return err
	}

	if soft {
		got, err := tbl.Get(id)
		if err != nil {
			return err
		}
		note := got.(*types.Note)
		note.IsDeleted = true
		note.UpdatedAt = time.Now()
		if _, err := tbl.Set(id, note); err != nil {
			return err
		}
	} else {
		if err := tbl.Delete(id); err != nil {
			return err
		}
	}
	s.LoadNotes()
	return nil
}

// RestoreNote clears the soft-delete state.
func (s *NoteService) RestoreNote(id string) error {
	return s.setNoteFlag(id, func(n *types.Note) { n.IsDeleted = false })
}

// ArchiveNote marks the note archived.
func (s *NoteService) ArchiveNote(id string) error {
	return s.setNoteFlag(id, func(n *types.Note) { n.IsArchived = true })
}

// UnarchiveNote clears the archived flag.
func (s *NoteService) UnarchiveNote(id string) error {
	return s.setNoteFlag(id, func(n *types.Note) { n.IsArchived = false })
}

func (s *NoteService) setNoteFlag(id string, mutate func(*types.Note)) error {
	tbl, err := s.store.GetTable(types.NotesTable)
	if err != nil {
		return err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return err
	}
	note := got.(*types.Note)
	mutate(note)
	note.UpdatedAt = time.Now()
	if _, err := tbl.Set(id, note); err != nil {
		return err
	}
	s.LoadNotes()
	return nil
}

// AddTag creates a tag.
func (s *NoteService) AddTag(name string) (*types.Tag, error) {
	if name == "" {
		return nil, types.ErrInvalidName
	}
	tbl, err := s.store.GetTable(types.TagsTable)
	if err != nil {
		return nil, err
	}
	tag := types.Tag{Name: name, CreatedAt: time.Now()}
	if _, err := tbl.Set("", &tag); err != nil {
		return nil, err
	}
	s.LoadTags()
	return &tag, nil
}

// DeleteTag physically removes a tag and its junction rows. Notes keep
// existing; their hydrated tag sets shrink on the next load.
func (s *NoteService) DeleteTag(id string) error {
	tbl, err := s.store.GetTable(types.TagsTable)
	if err != nil {
		return err
	}
	if err := tbl.Delete(id); err != nil {
		return err
	}
	s.LoadTags()
	s.LoadNotes()
	return nil
}

// resolveTagRefs maps tag references to tag IDs. Each reference is tried as
// an ID first, then as a name over all tags including deleted ones, and an
// unmatched name creates a new tag.
func (s *NoteService) resolveTagRefs(refs []string) ([]string, error) {
	if refs == nil {
		return nil, nil
	}
	tbl, err := s.store.GetTable(types.TagsTable)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(refs))
	seen := map[string]bool{}
	for _, ref := range refs {
		if ref == "" {
			continue
		}

		id, err := s.resolveTagRef(tbl, ref)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *NoteService) resolveTagRef(tbl types.Table, ref string) (string, error) {
	if got, err := tbl.Get(ref); err == nil {
		return got.(*types.Tag).ID, nil
	}

	matches, err := tbl.Fetch(map[string]any{"name": ref})
	if err != nil {
		return "", err
	}
	if len(matches) > 0 {
		return matches[0].(*types.Tag).ID, nil
	}

	tag := types.Tag{Name: ref, CreatedAt: time.Now()}
	return tbl.Set("", &tag)
}

func (s *NoteService) getNote(id string) (*types.Note, error) {
	tbl, err := s.store.GetTable(types.NotesTable)
	if err != nil {
		return nil, err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return nil, err
	}
	return got.(*types.Note), nil
}
