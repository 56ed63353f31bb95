package types

import "time"

// RichOp is a single operation in a rich-text document. Insert is a string
// for text runs and an arbitrary object for embeds.
type RichOp struct {
	Insert     any            `json:"insert,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// RichContent is a structured rich-text document: an ordered sequence of
// insert operations (Quill delta shaped).
type RichContent struct {
	Ops []RichOp `json:"ops"`
}

// PlainText concatenates the string inserts of the document, skipping embeds.
func (rc RichContent) PlainText() string {
	var out string
	for _, op := range rc.Ops {
		if s, ok := op.Insert.(string); ok {
			out += s
		}
	}
	return out
}

// PlainTextSnippet returns the plain text truncated to at most n runes.
func (rc RichContent) PlainTextSnippet(n int) string {
	text := rc.PlainText()
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// Tag labels notes. Tags relate to notes many-to-many via the junction table.
type Tag struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	IsDeleted bool       `json:"isDeleted"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Note is a rich-text note. Tags is hydrated from the junction table on read;
// the slice itself is not a stored column.
type Note struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	RichContent RichContent `json:"richContent"`
	Tags        []Tag       `json:"tags"`
	IsArchived  bool        `json:"isArchived"`
	IsDeleted   bool        `json:"isDeleted"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NoteTagJunction is one row of the note-tag many-to-many junction table,
// keyed by the (NoteID, TagID) pair.
type NoteTagJunction struct {
	NoteID string `json:"noteId"`
	TagID  string `json:"tagId"`
}

// NoteUpdate carries a partial note mutation. Nil fields are left untouched.
// A non-nil Tags slice replaces the note's tag set in full; each element is a
// tag ID or a tag name, and unmatched names create new tags.
type NoteUpdate struct {
	Title       *string
	RichContent *RichContent
	Tags        []string
	Archived    *bool
}
