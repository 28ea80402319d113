// Package models defines the domain types for laguz.
package models

// Note is a normalized remote note record. Timestamps keep the remote
// text form "YYYY-MM-DD HH:MM:SS", which sorts lexicographically.
type Note struct {
	Slug        string       `json:"slug"`
	Content     string       `json:"content"`
	Tags        []string     `json:"tags"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	DeletedAt   string       `json:"deleted_at,omitempty"` // empty when not deleted
	Source      string       `json:"source"`
	CreatorID   int64        `json:"creator_id,omitempty"`
	Pin         int          `json:"pin"`
	LinkedCount int          `json:"linked_count"`
	Files       []Attachment `json:"files,omitempty"`
}

// Deleted reports whether the note was soft-deleted remotely.
func (n *Note) Deleted() bool {
	return n.DeletedAt != ""
}

// CreatedDate returns the date portion of CreatedAt (YYYY-MM-DD).
func (n *Note) CreatedDate() string {
	if len(n.CreatedAt) < 10 {
		return n.CreatedAt
	}
	return n.CreatedAt[:10]
}

// Attachment is a media item referenced by a note. Fields are kept
// exactly as the API returns them; the download URL is a time-limited
// signed URL.
type Attachment struct {
	ID           int64   `json:"id"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Size         int64   `json:"size"`
	URL          string  `json:"url"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	Path         string  `json:"path,omitempty"`
	Seconds      *int    `json:"seconds,omitempty"`
	Content      *string `json:"content,omitempty"`
}

// ChangeKind classifies a fetched note against the recovered sync state.
type ChangeKind int

const (
	// Unchanged means the stored document already reflects the remote note.
	Unchanged ChangeKind = iota
	// New means no document exists for the note's slug.
	New
	// Updated means the remote updated_at is strictly newer than the stored one.
	Updated
)

func (k ChangeKind) String() string {
	switch k {
	case New:
		return "new"
	case Updated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Candidate is a note selected for transformation and writing.
type Candidate struct {
	Note Note
	Kind ChangeKind
}

// SyncStats accumulates the outcome of a sync run.
type SyncStats struct {
	Total   int
	New     int
	Updated int
	Failed  int
}

// Succeeded reports whether the run counts as successful: something was
// written, or there was nothing to do.
func (s SyncStats) Succeeded() bool {
	return s.New+s.Updated > 0 || s.Total == 0
}
