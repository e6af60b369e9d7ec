// Package docs embeds the pdfi documentation topics.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	md "github.com/nao1215/markdown"
)

//go:embed *.md
var files embed.FS

// index is the topic shown first, listing the others.
const index = "readme"

// Topic is one page of documentation.
type Topic struct {
	Name  string // file name without the .md extension
	Title string // first level one heading
}

// Topics returns every topic but the index, sorted by name.
func Topics() ([]Topic, error) {
	names, err := fs.Glob(files, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, file := range names {
		name := strings.TrimSuffix(file, ".md")
		if name == index {
			continue
		}
		content, err := files.ReadFile(file)
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title(content)})
	}
	slices.SortFunc(topics, func(a, b Topic) int { return strings.Compare(a.Name, b.Name) })
	return topics, nil
}

// title returns the text of the first "# " heading of content.
func title(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		if t, ok := strings.CutPrefix(scanner.Text(), "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return ""
}

// Index returns the index topic followed by the table of all topics.
func Index() (string, error) {
	intro, err := files.ReadFile(index + ".md")
	if err != nil {
		return "", err
	}
	topics, err := Topics()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Topics")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Topic", "Title"},
	}
	for _, t := range topics {
		table.Rows = append(table.Rows, []string{"`" + t.Name + "`", t.Title})
	}
	doc.Table(table)
	return string(intro) + "\n" + doc.String(), nil
}

// Get returns the content of the named topics, concatenated. The name "*"
// stands for all the topics.
func Get(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		pages := []string{name}
		if name == "*" {
			topics, err := Topics()
			if err != nil {
				return "", err
			}
			pages = pages[:0]
			for _, t := range topics {
				pages = append(pages, t.Name)
			}
		}
		for _, page := range pages {
			content, err := files.ReadFile(page + ".md")
			if err != nil {
				return "", fmt.Errorf("topic %q not found: %w", page, err)
			}
			b.Write(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
