package pdfimport

import (
	"fmt"
	"slices"
)

// Values is the capture context of a block instance: the strings matched by
// named groups, accumulated across its sections in capture order.
//
// Each name is written once. Assign functions only read it.
type Values struct {
	names  []string
	values map[string]string
}

// Get returns the value captured as name, or "".
func (v Values) Get(name string) string { return v.values[name] }

// Lookup returns the value captured as name and whether it was captured.
func (v Values) Lookup(name string) (string, bool) {
	s, ok := v.values[name]
	return s, ok
}

// Names returns the captured names in capture order.
func (v Values) Names() []string { return slices.Clone(v.names) }

// Len returns the number of captured names.
func (v Values) Len() int { return len(v.names) }

// set records a capture. Capturing the same value again is a no-op,
// a different one is a conflict.
func (v *Values) set(name, value string) error {
	if prev, ok := v.values[name]; ok {
		if prev != value {
			return fmt.Errorf("%w: %q is %q, cannot become %q", ErrCaptureConflict, name, prev, value)
		}
		return nil
	}
	if v.values == nil {
		v.values = make(map[string]string)
	}
	v.names = append(v.names, name)
	v.values[name] = value
	return nil
}

// merge records all captures of o into v.
func (v *Values) merge(o Values) error {
	for _, name := range o.names {
		if err := v.set(name, o.values[name]); err != nil {
			return err
		}
	}
	return nil
}
