// Package upload implements the client's batch-upload pipeline: a pure
// in-memory queue of validated pending files and the controller that
// drains it through the gateway one file at a time.
package upload

import "gestoria/internal/api"

// FileCandidate is a file the operator picked, before validation.
type FileCandidate struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// PendingFile is a validated file waiting in the queue. Files are
// identified by the (Name, Size) pair for deduplication.
type PendingFile struct {
	Name string
	Size int64
	Data []byte
}

// Queue is the set of pending files. All operations are pure: they return
// the updated queue and never mutate the receiver, so callers can hold on
// to old values safely.
type Queue []PendingFile

// Add validates candidates against the document-type allow-list and
// appends the eligible ones, skipping (name, size) duplicates silently.
// Rejected names are returned so the operator can be told some files were
// ignored; acceptance is per-file, one bad candidate never blocks the rest.
func (q Queue) Add(candidates ...FileCandidate) (Queue, []string) {
	out := make(Queue, len(q), len(q)+len(candidates))
	copy(out, q)

	var ignored []string
	for _, c := range candidates {
		if !api.AcceptedUpload(c.Name, c.ContentType) {
			ignored = append(ignored, c.Name)
			continue
		}
		if out.Contains(c.Name, c.Size) {
			continue
		}
		out = append(out, PendingFile{Name: c.Name, Size: c.Size, Data: c.Data})
	}

	return out, ignored
}

// Remove drops the entry matching (name, size) exactly, if present.
func (q Queue) Remove(name string, size int64) Queue {
	out := make(Queue, 0, len(q))
	for _, f := range q {
		if f.Name == name && f.Size == size {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Clear empties the queue unconditionally.
func (q Queue) Clear() Queue {
	return nil
}

// Contains reports whether an entry with the same (name, size) is queued.
func (q Queue) Contains(name string, size int64) bool {
	for _, f := range q {
		if f.Name == name && f.Size == size {
			return true
		}
	}
	return false
}
