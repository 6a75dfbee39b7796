package html

import (
	"bytes"
	"fmt"
	"html"
)

// TOCEntry is one navigation row. Entries are recorded in the same pass that
// allocates fragment ids, so the TOC and the body always agree on numbering.
type TOCEntry struct {
	ID       int    // target fragment id; ignored when Linked is false
	Label    string // display text
	Title    string // hover text, usually the full path
	CSSClass string
	Flag     ColorFlag
	Linked   bool
	Children []TOCEntry // nested rows, e.g. evoked conditions
}

// colorFor maps a flag to the inline color used by TOC rows. Warning rows are
// red; normal rows inherit the page color.
func colorFor(f ColorFlag) string {
	if f == FlagWarning {
		return "red"
	}
	return ""
}

// writeTOC emits the navigation list and opens the content container that the
// footer later closes.
func writeTOC(buf *bytes.Buffer, entries []TOCEntry) {
	buf.WriteString(`<div id="container">` + "\n")
	buf.WriteString(`<div id="toc"><center><h4>CONTENTS</h4></center>` + "\n<ul>")
	for _, e := range entries {
		writeTOCEntry(buf, e)
	}
	buf.WriteString("\n</ul></div>\n")
	buf.WriteString(`<div id="content">` + "\n")
}

func writeTOCEntry(buf *bytes.Buffer, e TOCEntry) {
	if len(e.Children) > 0 {
		// Parent row is a plain heading; only the nested rows link.
		fmt.Fprintf(buf, "\n\t"+`<li class="%s"><span title="%s" style="color:#428bca"> %s </span>`,
			e.CSSClass, html.EscapeString(e.Title), html.EscapeString(e.Label))
		fmt.Fprintf(buf, `<li class="%s"><ul>`, e.CSSClass)
		for _, c := range e.Children {
			writeTOCEntry(buf, c)
		}
		buf.WriteString("</ul></li>")
		return
	}

	if !e.Linked {
		fmt.Fprintf(buf, "\n\t"+`<li class="%s"><span title="%s" style="color:%s"> %s </span></li>`,
			e.CSSClass, html.EscapeString(e.Title), colorFor(e.Flag), html.EscapeString(e.Label))
		return
	}

	fmt.Fprintf(buf, "\n\t"+`<li class="%s"><a href="#%d"><span title="%s" style="color:%s"> %s </span></a></li>`,
		e.CSSClass, e.ID, html.EscapeString(e.Title), colorFor(e.Flag), html.EscapeString(e.Label))
}

// CountRows returns the number of linked rows an entry list resolves to: one
// per leaf, with parent headings of nested groups not counted. Used by tests
// and diagnostics to check TOC arithmetic.
func CountRows(entries []TOCEntry) int {
	n := 0
	for _, e := range entries {
		if len(e.Children) > 0 {
			n += CountRows(e.Children)
			continue
		}
		n++
	}
	return n
}
