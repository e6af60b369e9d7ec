package pdfimport

import (
	"fmt"
	"slices"
	"sync"
)

// Securities is the shared registry of securities, keyed by ISIN.
//
// It is safe for concurrent use: at most one Security is ever created per
// ISIN, concurrent callers all receive that same instance.
type Securities struct {
	mu         sync.Mutex
	securities []*Security
	index      map[string]*Security
}

// NewSecurities returns a new empty security registry.
func NewSecurities() *Securities {
	return &Securities{
		securities: make([]*Security, 0),
		index:      make(map[string]*Security),
	}
}

// Add registers a known security. It fails if the ISIN is already registered.
func (s *Securities) Add(sec *Security) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[sec.isin]; exists {
		return fmt.Errorf("security %s is already registered", sec.isin)
	}
	s.insert(sec)
	return nil
}

func (s *Securities) insert(sec *Security) {
	s.securities = append(s.securities, sec)
	s.index[sec.isin] = sec
}

// Get returns the security for isin, or nil.
func (s *Securities) Get(isin string) *Security {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index[isin]
}

// GetOrCreate returns the security registered for isin, creating it with name
// and currency when there is none. created reports whether this call created it.
func (s *Securities) GetOrCreate(isin, name, currency string) (sec *Security, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sec, ok := s.index[isin]; ok {
		return sec, false, nil
	}
	sec, err = NewSecurity(isin, name, currency)
	if err != nil {
		return nil, false, err
	}
	s.insert(sec)
	return sec, true, nil
}

// Len returns the number of registered securities.
func (s *Securities) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.securities)
}

// All returns the registered securities in registration order.
func (s *Securities) All() []*Security {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.securities)
}
