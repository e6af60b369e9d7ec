package pdfimport

import (
	"fmt"
	"regexp"
	"slices"
)

// Template turns one block instance into an Item. *Transaction[T] is the
// only implementation.
type Template interface {
	parse(env *Env, lines []string, start, end int, src Source) (Item, string, error)
}

// Block locates the instances of one kind of transaction in a document. An
// instance starts on a line matching the start pattern and runs until the
// next line starting an instance of any block of the same DocumentType, its
// end line, or the end of the document.
type Block struct {
	name  string
	start *regexp.Regexp
	end   *regexp.Regexp
	tx    Template
}

// NewBlock returns a block whose instances start on lines fully matching expr.
func NewBlock(expr string) *Block {
	return &Block{name: expr, start: pattern(expr)}
}

// EndWith closes each instance on the first line fully matching expr, inclusive.
func (b *Block) EndWith(expr string) *Block {
	b.end = pattern(expr)
	return b
}

// Set sets the transaction parsing each instance.
func (b *Block) Set(t Template) *Block {
	if t == nil {
		panic(fmt.Sprintf("block %q: nil transaction", b.name))
	}
	b.tx = t
	return b
}

// Name returns the start pattern of the block.
func (b *Block) Name() string { return b.name }

// anchor is a line starting an instance of block.
type anchor struct {
	line  int
	block *Block
}

// instance is a located span [start, end) of document lines.
type instance struct {
	block      *Block
	start, end int
}

// span returns the instance starting at a. It ends before the first line of
// bounds after a.line, or on the block end line, or at the end of doc.
// bounds must be sorted.
func (a anchor) span(doc Document, bounds []int) instance {
	end := doc.Len()
	if k, _ := slices.BinarySearch(bounds, a.line+1); k < len(bounds) {
		end = bounds[k]
	}
	if a.block.end != nil {
		for i := a.line + 1; i < end; i++ {
			if a.block.end.MatchString(doc.Line(i)) {
				end = i + 1
				break
			}
		}
	}
	return instance{block: a.block, start: a.line, end: end}
}

// DocumentType activates its blocks on documents where its identifying text
// appears anywhere.
type DocumentType struct {
	name    string
	literal string
	re      *regexp.Regexp
	blocks  []*Block
}

// NewDocumentType returns a DocumentType identified by a literal substring.
func NewDocumentType(literal string) *DocumentType {
	return &DocumentType{name: literal, literal: literal}
}

// NewDocumentTypeRegexp returns a DocumentType identified by a regular
// expression matching part of a line.
func NewDocumentTypeRegexp(expr string) *DocumentType {
	return &DocumentType{name: expr, re: regexp.MustCompile(expr)}
}

// AddBlock adds a block to the document type.
func (t *DocumentType) AddBlock(b *Block) *DocumentType {
	t.blocks = append(t.blocks, b)
	return t
}

func (t *DocumentType) Name() string     { return t.name }
func (t *DocumentType) Blocks() []*Block { return t.blocks }

// activates reports whether doc is of this type. It does not depend on any
// block finding an instance.
func (t *DocumentType) activates(doc Document) bool {
	if t.re != nil {
		return doc.search(t.re)
	}
	return doc.contains(t.literal)
}

// anchors returns the lines of doc starting an instance of a block, in line order.
func (t *DocumentType) anchors(doc Document) []anchor {
	var anchors []anchor
	for i := range doc.Len() {
		for _, b := range t.blocks {
			if b.start.MatchString(doc.Line(i)) {
				anchors = append(anchors, anchor{i, b})
			}
		}
	}
	return anchors
}
