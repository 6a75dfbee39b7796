package html

import (
	"bytes"
	"fmt"
	"html"
	"time"
)

// All style and script the document needs is embedded below; the generated
// file must render with no external fetches.

const baseCSS = `
body {
    line-height: 1.5em;
    font-family: arial, sans-serif;
    margin: 0;
}

h1 {
    font-size: 30px;
    text-align: center;
}

h4 {
    text-align: center;
}

li {
    list-style-type: none;
}

img {
    max-width: 100%;
}

.navbar {
    position: fixed;
    top: 0;
    width: 100%;
    background-color: #222;
    color: white;
    padding: 8px 16px;
    z-index: 10;
}

.navbar h3 {
    display: inline-block;
    margin: 4px 16px 4px 0;
}

.navbar ul {
    display: inline-block;
    margin: 0;
    padding: 0;
}

.navbar li {
    display: inline-block;
    margin-right: 4px;
}

.navbar a {
    color: #ddd;
    text-decoration: none;
    padding: 4px 8px;
    border-radius: 4px;
}

.navbar li.active a {
    background-color: #428bca;
    color: white;
}

#container {
    position: relative;
}

#toc {
    margin-top: 60px;
    position: fixed;
    width: 20%;
    height: 100%;
    overflow: auto;
}

#toc li {
    overflow: auto;
    padding-bottom: 2px;
    margin-left: 20px;
}

#content {
    margin-left: 22%;
    margin-top: 60px;
    width: 75%;
}

.thumbnail {
    text-align: center;
}

.slice-strip {
    display: inline-block;
    vertical-align: top;
    width: 31%;
    margin: 1%;
}

.slice-slider {
    width: 90%;
}

div.footer {
    background-color: #C0C0C0;
    color: #000000;
    padding: 3px 8px 3px 0;
    clear: both;
    font-size: 0.8em;
    text-align: right;
}
`

const baseJS = `
function togglebutton(className) {
    document.querySelectorAll(className).forEach(function (el) {
        el.style.display = (el.style.display === 'none') ? '' : 'none';
    });
    document.querySelectorAll(className + '-btn').forEach(function (el) {
        el.classList.toggle('active');
    });
}

function showSlice(group, value) {
    document.querySelectorAll('.' + group).forEach(function (el) {
        el.style.display = 'none';
    });
    var current = document.getElementById(group + '-' + value);
    if (current) current.style.display = '';
}

function sliceSlider(sliderId, group, start) {
    var slider = document.getElementById(sliderId);
    if (!slider) return;
    showSlice(group, slider.value || start);
    slider.addEventListener('input', function () {
        showSlice(group, slider.value);
    });
}
`

// navbar toggle buttons, one per section class.
var navSections = []struct {
	class string
	label string
}{
	{"raw", "Raw"},
	{"epochs", "Epochs"},
	{"evoked", "Evoked"},
	{"forward", "Forward"},
	{"covariance", "Cov"},
	{"events", "Events"},
	{"trans", "Trans"},
	{"slices-images", "MRI"},
	{"custom", "Custom"},
}

// writeHeader emits the document head, inline assets, and the fixed navbar
// with per-section toggle buttons.
func writeHeader(buf *bytes.Buffer, title string) {
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	fmt.Fprintf(buf, "<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(buf, "<style type=\"text/css\">%s</style>\n", baseCSS)
	fmt.Fprintf(buf, "<script type=\"text/javascript\">%s</script>\n", baseJS)
	buf.WriteString("</head>\n<body>\n")

	buf.WriteString(`<nav class="navbar" role="navigation">` + "\n")
	fmt.Fprintf(buf, "<h3>%s</h3>\n<ul>\n", html.EscapeString(title))
	for _, s := range navSections {
		fmt.Fprintf(buf,
			`    <li class="active %s-btn"><a href="#" onclick="togglebutton('.%s')">%s</a></li>`+"\n",
			s.class, s.class, s.label)
	}
	buf.WriteString("</ul>\n</nav>\n")
}

// writeFooter closes the content container and emits the generation stamp.
func writeFooter(buf *bytes.Buffer, now time.Time) {
	buf.WriteString("</div></div></body>\n")
	fmt.Fprintf(buf, `<div class="footer">Created on %s. Powered by neuroreport.</div>`+"\n",
		now.Format("January 2, 2006"))
	buf.WriteString("</html>\n")
}
