package html

import (
	"bytes"
	"time"

	"neuroreport/pkg/errors"
)

// Document is the top-level ordered sequence of report fragments. It owns the
// identifier allocator and the rendering order: body markup is append-only,
// TOC entries are recorded as ids are allocated, and the table of contents is
// spliced in exactly once when the document is serialized.
type Document struct {
	title     string
	body      []string
	toc       []TOCEntry
	artifacts []string // artifact names backing the TOC, in render order

	nextID    int
	finalized bool
}

// NewDocument creates an empty document with the given title.
func NewDocument(title string) *Document {
	return &Document{title: title}
}

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// NextID hands out the next fragment id. The first call yields 1; ids are
// never reused and there is no reset.
func (d *Document) NextID() int {
	d.nextID++
	return d.nextID
}

// AppendFragment serializes f and appends it to the body.
func (d *Document) AppendFragment(f Fragment) error {
	return d.AppendRaw(f.HTML())
}

// AppendRaw appends pre-serialized markup to the body.
func (d *Document) AppendRaw(markup string) error {
	if d.finalized {
		return errors.New(errors.ErrCodeInternal, "append to finalized document")
	}
	d.body = append(d.body, markup)
	return nil
}

// AddTOCEntry records a navigation row for a fragment that was just
// allocated. Call order defines TOC order.
func (d *Document) AddTOCEntry(e TOCEntry) {
	d.toc = append(d.toc, e)
}

// AddArtifact records the name of a rendered artifact. The list backs
// TOC generation diagnostics and mirrors rendering order, not filesystem
// order.
func (d *Document) AddArtifact(name string) {
	d.artifacts = append(d.artifacts, name)
}

// Artifacts returns the rendered artifact names in order.
func (d *Document) Artifacts() []string { return d.artifacts }

// TOC returns the recorded navigation entries in order.
func (d *Document) TOC() []TOCEntry { return d.toc }

// Bytes assembles header, TOC, body and footer into the final page and
// finalizes the document; further appends fail.
func (d *Document) Bytes(now time.Time) []byte {
	d.finalized = true

	var buf bytes.Buffer
	writeHeader(&buf, d.title)
	writeTOC(&buf, d.toc)
	for _, h := range d.body {
		buf.WriteString(h)
	}
	writeFooter(&buf, now)
	return buf.Bytes()
}

// Finalized reports whether the document has been serialized.
func (d *Document) Finalized() bool { return d.finalized }
