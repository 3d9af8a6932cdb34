package gallery

import (
	"fieldnotes/pkg/imaging"

	"github.com/google/uuid"
)

// Source says where an image's bytes live. A record is either pending (bytes
// held locally, not yet uploaded) or durable (already persisted under a
// storage path) — never both.
type Source interface {
	isSource()
}

// PendingSource holds a file selected by the author but not yet uploaded.
type PendingSource struct {
	File imaging.File
}

// DurableSource points at an image already persisted by the server.
type DurableSource struct {
	Path string
}

func (PendingSource) isSource() {}
func (DurableSource) isSource() {}

// ImageRecord is one image attached to the post being authored.
type ImageRecord struct {
	ID       string
	Filename string
	URL      string
	Size     int64
	MimeType string
	Order    int
	Source   Source
}

// Pending reports whether the record still needs to be uploaded.
func (r ImageRecord) Pending() bool {
	_, ok := r.Source.(PendingSource)
	return ok
}

// Collection owns the ordered image list for one open post form. It is
// discarded once the form is submitted or abandoned. Not safe for concurrent
// use; all mutations happen on the single authoring flow.
type Collection struct {
	records []ImageRecord
}

func NewCollection(existing []ImageRecord) *Collection {
	c := &Collection{}
	c.records = append(c.records, existing...)
	return c
}

// Add appends one pending record per file, ordered after everything already
// in the collection. Existing entries are never reordered.
func (c *Collection) Add(files []imaging.File) {
	base := len(c.records)
	for i, f := range files {
		id := uuid.New().String()
		c.records = append(c.records, ImageRecord{
			ID:       id,
			Filename: f.Name,
			URL:      "local://" + id,
			Size:     int64(len(f.Data)),
			MimeType: f.MimeType,
			Order:    base + i,
			Source:   PendingSource{File: f},
		})
	}
}

// Remove deletes the record with the given id. Remaining order values are
// left untouched; renumbering happens at submit time. Unknown ids are a
// no-op.
func (c *Collection) Remove(id string) {
	for i, r := range c.records {
		if r.ID == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return
		}
	}
}

// Reorder moves the record fromID to the position currently held by toID,
// shifting the records in between, then renumbers every record to its array
// index so orders are dense again.
func (c *Collection) Reorder(fromID, toID string) {
	from, to := -1, -1
	for i, r := range c.records {
		switch r.ID {
		case fromID:
			from = i
		case toID:
			to = i
		}
	}
	if from == -1 || to == -1 || from == to {
		return
	}

	c.records = Move(c.records, from, to)
	for i := range c.records {
		c.records[i].Order = i
	}
}

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.records) }

// Records returns a copy of the current list in display order.
func (c *Collection) Records() []ImageRecord {
	out := make([]ImageRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Move returns a new slice with the element at from inserted at to, shifting
// everything in between by one. Out-of-range indexes return the input
// unchanged.
func Move(list []ImageRecord, from, to int) []ImageRecord {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return list
	}

	out := make([]ImageRecord, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	moved := list[from]
	out = append(out[:to], append([]ImageRecord{moved}, out[to:]...)...)
	return out
}
