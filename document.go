package pdfimport

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Document is the text of one document, as lines. It is never modified.
type Document struct {
	name  string
	lines []string
}

// NewDocument splits text into the lines of a document.
func NewDocument(name, text string) Document {
	text = strings.TrimSuffix(text, "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	for i, l := range lines {
		lines[i] = normalize(l)
	}
	return Document{name: name, lines: lines}
}

// ReadDocument reads all lines from r.
func ReadDocument(name string, r io.Reader) (Document, error) {
	doc := Document{name: name}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		doc.lines = append(doc.lines, normalize(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return Document{}, fmt.Errorf("cannot read %q: %w", name, err)
	}
	return doc, nil
}

// normalize drops the trailing blanks text extraction leaves behind.
func normalize(line string) string { return strings.TrimRight(line, " \t\r") }

func (d Document) Name() string           { return d.name }
func (d Document) Len() int               { return len(d.lines) }
func (d Document) Line(i int) string      { return d.lines[i] }
func (d Document) Text() string           { return strings.Join(d.lines, "\n") }
func (d Document) contains(s string) bool { return strings.Contains(d.Text(), s) }

// search reports whether re matches somewhere in the document.
func (d Document) search(re *regexp.Regexp) bool {
	for _, l := range d.lines {
		if re.MatchString(l) {
			return true
		}
	}
	return false
}
