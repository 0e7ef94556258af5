package emails

import (
	"iter"
	"maps"
	"slices"
)

// Set holds distinct normalized addresses. The zero value is ready to use.
type Set struct {
	m map[string]struct{}
}

// Add inserts addr and reports whether it was new.
func (s *Set) Add(addr string) bool {
	if s.m == nil {
		s.m = make(map[string]struct{})
	}
	if _, ok := s.m[addr]; ok {
		return false
	}
	s.m[addr] = struct{}{}
	return true
}

// Contains reports whether addr is in the set.
func (s *Set) Contains(addr string) bool {
	_, ok := s.m[addr]
	return ok
}

func (s *Set) Len() int { return len(s.m) }

// Sorted returns the addresses in lexical order.
func (s *Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s.m))
}

// Collect validates every candidate in seq and gathers the valid ones.
// Rejected candidates are passed to reject, which may be nil.
func Collect(seq iter.Seq[string], v Validator, reject func(candidate string, err error)) *Set {
	set := &Set{}
	for candidate := range seq {
		addr, err := v.Validate(candidate)
		if err != nil {
			if reject != nil {
				reject(candidate, err)
			}
			continue
		}
		set.Add(addr)
	}
	return set
}
