// Package html assembles the report document: typed fragments, slider
// controls, the table of contents, and the surrounding page chrome. All
// client-side style and script is embedded inline so the resulting file is
// portable and renders without network access.
package html

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
)

// ColorFlag marks whether a TOC row follows the expected naming conventions.
type ColorFlag int

const (
	FlagNormal ColorFlag = iota
	FlagWarning
)

// Fragment is one self-contained renderable unit of the document body.
// Exactly one payload is embedded: Interactive markup takes precedence over
// Image, which takes precedence over TextRepr. The template exposes a binary
// choice, not a merge.
type Fragment struct {
	ID       int    // unique, strictly increasing in allocation order
	CSSClass string // section class used for toggling and TOC grouping
	Caption  string
	Visible  bool // false for follow-up slices in a slider group

	Image       []byte // raster payload (PNG bytes)
	Interactive string // self-contained widget markup
	TextRepr    string // sanitized textual representation
}

// HTML serializes the fragment.
func (f Fragment) HTML() string {
	var buf bytes.Buffer
	f.write(&buf)
	return buf.String()
}

func (f Fragment) write(buf *bytes.Buffer) {
	if f.Interactive == "" && f.Image == nil {
		f.writeRepr(buf)
		return
	}

	style := ""
	if !f.Visible {
		style = ` style="display: none"`
	}
	fmt.Fprintf(buf, `<li class="%s" id="%d"%s>`+"\n", f.CSSClass, f.ID, style)
	if f.Caption != "" {
		fmt.Fprintf(buf, "<h4>%s</h4>\n", html.EscapeString(f.Caption))
	}
	buf.WriteString(`<div class="thumbnail">` + "\n")
	if f.Interactive != "" {
		// Widget markup is collaborator-produced and embedded as-is.
		fmt.Fprintf(buf, "<center>%s</center>\n", f.Interactive)
	} else {
		fmt.Fprintf(buf, `<img alt="" style="width:50%%;" src="data:image/png;base64,%s">`+"\n",
			base64.StdEncoding.EncodeToString(f.Image))
	}
	buf.WriteString("</div>\n</li>\n")
}

func (f Fragment) writeRepr(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<li class="%s" id="%d">`+"\n", f.CSSClass, f.ID)
	fmt.Fprintf(buf, "<h4>%s</h4><hr>\n", html.EscapeString(f.Caption))
	fmt.Fprintf(buf, "%s\n", sanitizeRepr(f.TextRepr))
	buf.WriteString("<hr></li>\n")
}

// SliceImage serializes one member of a slider group: a list item carrying
// the group class so the slider script can toggle it, hidden unless it is the
// group's initially visible member.
func SliceImage(img []byte, sliceID, divClass, imgClass, caption string, show bool) string {
	var buf bytes.Buffer
	style := ""
	if !show {
		style = ` style="display: none"`
	}
	fmt.Fprintf(&buf, `<li class="%s" id="%s"%s>`+"\n", divClass, sliceID, style)
	buf.WriteString(`<div class="thumbnail">` + "\n")
	fmt.Fprintf(&buf, `<img class="%s" alt="" style="width:90%%;" src="data:image/png;base64,%s">`+"\n",
		imgClass, base64.StdEncoding.EncodeToString(img))
	buf.WriteString("</div>\n")
	if caption != "" {
		fmt.Fprintf(&buf, "<h4>%s</h4>\n", html.EscapeString(caption))
	}
	buf.WriteString("</li>")
	return buf.String()
}

// sanitizeRepr strips angle brackets from a collaborator-provided textual
// representation and turns newlines into breaks so it reads as the reader
// printed it.
func sanitizeRepr(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<', '>':
		case '\n':
			buf.WriteString("<br/>\n")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
