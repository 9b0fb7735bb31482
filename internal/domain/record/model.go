package record

import (
	"time"
)

// Collection names a durable set of records of one kind.
type Collection string

const (
	Journals Collection = "journals"
	Projects Collection = "projects"
)

// String returns the collection name.
func (c Collection) String() string {
	return string(c)
}

// Valid reports whether the collection is one of the known names.
func (c Collection) Valid() bool {
	switch c {
	case Journals, Projects:
		return true
	}
	return false
}

// Record is one journal entry or project. The ID is store-assigned,
// unique within its collection and never reused after deletion.
// CreatedAt is captured at submit time and immutable thereafter.
type Record struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Attachment is an uploaded file kept inline with a project record.
// Slice order is upload order.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Data []byte `json:"data"`
}
