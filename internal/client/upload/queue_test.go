package upload

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gestoria/internal/api"
)

func pdf(name string, size int64) FileCandidate {
	return FileCandidate{Name: name, Size: size, ContentType: api.MimePDF, Data: []byte("%PDF")}
}

func TestQueueAdd_AcceptsValidFiles(t *testing.T) {
	q, ignored := Queue(nil).Add(pdf("a.pdf", 100), pdf("b.pdf", 200))
	require.Empty(t, ignored)
	require.Len(t, q, 2)
	require.Equal(t, "a.pdf", q[0].Name)
	require.Equal(t, "b.pdf", q[1].Name)
}

func TestQueueAdd_RejectsDisallowedTypesButKeepsRest(t *testing.T) {
	q, ignored := Queue(nil).Add(
		FileCandidate{Name: "report.docx", Size: 300, ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		FileCandidate{Name: "ok.pdf", Size: 100, ContentType: api.MimePDF, Data: []byte("%PDF")},
	)

	require.Equal(t, []string{"report.docx"}, ignored)
	require.Len(t, q, 1, "partial acceptance: valid files still enter")
	require.Equal(t, "ok.pdf", q[0].Name)
}

func TestQueueAdd_ExtensionFallback(t *testing.T) {
	q, ignored := Queue(nil).Add(
		FileCandidate{Name: "sin-mime.xlsx", Size: 50},
		FileCandidate{Name: "sin-mime.bin", Size: 60},
	)
	require.Equal(t, []string{"sin-mime.bin"}, ignored)
	require.Len(t, q, 1)
}

func TestQueueAdd_DeduplicatesByNameAndSize(t *testing.T) {
	q, _ := Queue(nil).Add(pdf("a.pdf", 100))

	// same (name, size): silently skipped, queue unchanged
	q2, ignored := q.Add(pdf("a.pdf", 100))
	require.Empty(t, ignored, "a duplicate is not an error")
	require.Equal(t, q, q2)

	// same name, different size: a distinct file
	q3, _ := q2.Add(pdf("a.pdf", 999))
	require.Len(t, q3, 2)
}

func TestQueueAdd_DeduplicatesWithinOneCall(t *testing.T) {
	q, _ := Queue(nil).Add(pdf("a.pdf", 100), pdf("a.pdf", 100))
	require.Len(t, q, 1)
}

func TestQueueAdd_IsPure(t *testing.T) {
	orig, _ := Queue(nil).Add(pdf("a.pdf", 100))
	snapshot := make(Queue, len(orig))
	copy(snapshot, orig)

	_, _ = orig.Add(pdf("b.pdf", 200))
	_ = orig.Remove("a.pdf", 100)

	require.Equal(t, snapshot, orig, "operations must not mutate the receiver")
}

func TestQueueRemove_ExactMatchOnly(t *testing.T) {
	q, _ := Queue(nil).Add(pdf("a.pdf", 100), pdf("b.pdf", 200))

	require.Len(t, q.Remove("a.pdf", 999), 2, "size must match exactly")
	require.Len(t, q.Remove("c.pdf", 100), 2, "name must match exactly")

	out := q.Remove("a.pdf", 100)
	require.Len(t, out, 1)
	require.Equal(t, "b.pdf", out[0].Name)
}

func TestQueueContains(t *testing.T) {
	q, _ := Queue(nil).Add(pdf("a.pdf", 100))
	require.True(t, q.Contains("a.pdf", 100))
	require.False(t, q.Contains("a.pdf", 101))
	require.False(t, q.Contains("b.pdf", 100))
}

func TestQueueClear(t *testing.T) {
	q, _ := Queue(nil).Add(pdf("a.pdf", 100), pdf("b.pdf", 200))
	require.Empty(t, q.Clear())
	require.Len(t, q, 2, "Clear must not mutate the receiver")
}
