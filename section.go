package pdfimport

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// AssignFunc applies the values captured so far to the state of a transaction
// and returns the new state.
type AssignFunc[T any] func(env *Env, v Values, t T) (T, error)

// WrapFunc turns the final state of a transaction into an Item.
type WrapFunc[T any] func(env *Env, t T, src Source) (Item, error)

// pattern compiles a whole line pattern: it must match the full line.
func pattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + expr + `)$`)
}

// step is one anchor or capture pattern of a section.
type step struct {
	re      *regexp.Regexp
	capture bool
}

// Section is one step of a Transaction: it finds its anchor lines, matches
// its capture lines, then assigns the captured values.
//
// Each pattern must match a full line, and consumes it: the next pattern is
// searched from the following line.
type Section[T any] struct {
	tx       *Transaction[T]
	names    []string
	steps    []step
	optional bool
	detached bool
	assign   AssignFunc[T]
}

// Optional marks the section as optional: when its patterns are not found the
// section is skipped.
func (s *Section[T]) Optional() *Section[T] {
	s.optional = true
	return s
}

// Detached makes the section search the whole block instance, from its start
// line, and leave the cursor untouched. Sections for line items that may
// appear anywhere (taxes, fees) are detached so that their order does not matter.
func (s *Section[T]) Detached() *Section[T] {
	s.detached = true
	return s
}

// Find adds an anchor line: the next line matching expr, no capture.
// Anchors come before the Match patterns of a section.
func (s *Section[T]) Find(expr string) *Section[T] {
	if len(s.steps) > 0 && s.steps[len(s.steps)-1].capture {
		panic(fmt.Sprintf("section %s: Find(%q) after Match", s, expr))
	}
	s.steps = append(s.steps, step{re: pattern(expr)})
	return s
}

// Match adds a capture line: the next line matching expr, its named groups
// are recorded into the Values.
func (s *Section[T]) Match(expr string) *Section[T] {
	s.steps = append(s.steps, step{re: pattern(expr), capture: true})
	return s
}

// Assign sets the function applying the captures, and ends the section.
//
// It panics if a declared name is not a named group of the Match patterns.
func (s *Section[T]) Assign(f AssignFunc[T]) *Transaction[T] {
	groups := make(map[string]bool)
	for _, st := range s.steps {
		if !st.capture {
			continue
		}
		for _, name := range st.re.SubexpNames() {
			if name != "" {
				groups[name] = true
			}
		}
	}
	if len(groups) == 0 {
		panic(fmt.Sprintf("section %s: no Match pattern with named groups", s))
	}
	for _, name := range s.names {
		if !groups[name] {
			panic(fmt.Sprintf("section %s: %q is not captured by any Match pattern", s, name))
		}
	}
	s.assign = f
	return s.tx
}

// String returns the names the section declares.
func (s *Section[T]) String() string { return strings.Join(s.names, ",") }

// scan searches the lines of the instance for all the section patterns.
// On success it returns the captures and the line after the last match.
func (s *Section[T]) scan(lines []string, c *cursor) (captured Values, next int, found bool, err error) {
	pos := c.pos
	if s.detached {
		pos = c.start
	}
	for _, st := range s.steps {
		i := slices.IndexFunc(lines[pos:c.end], st.re.MatchString)
		if i < 0 {
			return Values{}, 0, false, nil
		}
		pos += i
		if st.capture {
			m := st.re.FindStringSubmatch(lines[pos])
			for k, name := range st.re.SubexpNames() {
				if name == "" || m[k] == "" {
					continue // unnamed or not participating
				}
				if err := captured.set(name, m[k]); err != nil {
					return Values{}, 0, false, err
				}
			}
		}
		pos++
	}
	return captured, pos, true, nil
}

// cursor is the position of the scanner in a block instance [start, end).
// It only ever moves forward.
type cursor struct {
	start, pos, end int
}

// advance moves the cursor to line 'to'. It panics if that would move it backward.
func (c *cursor) advance(to int) {
	if to < c.pos {
		panic(fmt.Sprintf("cursor cannot move back from line %d to %d", c.pos, to))
	}
	c.pos = to
}

// Transaction describes how a block instance becomes an Item: a subject
// creating the initial state, sections updating it, and a wrap function.
type Transaction[T any] struct {
	subject  func() T
	sections []*Section[T]
	wrap     WrapFunc[T]
}

// NewTransaction returns a Transaction whose instances start from subject().
func NewTransaction[T any](subject func() T) *Transaction[T] {
	return &Transaction[T]{subject: subject}
}

// Section starts a new section declaring the names its Match patterns capture.
func (t *Transaction[T]) Section(names ...string) *Section[T] {
	s := &Section[T]{tx: t, names: names}
	t.sections = append(t.sections, s)
	return s
}

// Wrap sets the function turning the final state into an Item.
func (t *Transaction[T]) Wrap(f WrapFunc[T]) *Transaction[T] {
	t.wrap = f
	return t
}

// Sections returns the number of sections.
func (t *Transaction[T]) Sections() int { return len(t.sections) }

// parse runs the sections in order over lines [start, end). On error it
// also returns the name of the failing section, if any.
func (t *Transaction[T]) parse(env *Env, lines []string, start, end int, src Source) (Item, string, error) {
	if t.wrap == nil {
		return nil, "", fmt.Errorf("%w: no wrap function", ErrUnsupportedTransactionVariant)
	}
	state := t.subject()
	var values Values
	c := &cursor{start: start, pos: start, end: end}
	for _, s := range t.sections {
		if s.assign == nil {
			return nil, s.String(), fmt.Errorf("%w: section has no assign function", ErrUnsupportedTransactionVariant)
		}
		captured, next, found, err := s.scan(lines, c)
		if err != nil {
			return nil, s.String(), err
		}
		if !found {
			if s.optional {
				continue
			}
			return nil, s.String(), ErrRequiredSectionNotFound
		}
		if err := values.merge(captured); err != nil {
			return nil, s.String(), err
		}
		if !s.detached {
			c.advance(next)
		}
		if state, err = s.assign(env, values, state); err != nil {
			return nil, s.String(), err
		}
	}
	item, err := t.wrap(env, state, src)
	if err != nil {
		return nil, "", err
	}
	return item, "", nil
}
