package model

import (
	"errors"
	"fmt"
	"sync"
)

// ErrAnnotationNotFound is returned when no annotation has the given badge.
var ErrAnnotationNotFound = errors.New("annotation not found")

// AnnotationStore is the ordered collection of annotations for one session.
// Insertion order is display order. Badge numbers come from a counter that
// only moves forward, so a removed badge is never handed out again; Clear is
// the one operation that resets it to 1.
type AnnotationStore struct {
	mu    sync.Mutex
	items []Annotation
	next  int
}

// NewAnnotationStore returns an empty store whose first badge is 1.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{next: 1}
}

// RestoreAnnotationStore rebuilds a store from saved annotations. next is the
// badge the store will assign next; it is raised if needed so it always
// exceeds every restored badge.
func RestoreAnnotationStore(items []Annotation, next int) *AnnotationStore {
	s := &AnnotationStore{items: append([]Annotation(nil), items...), next: next}
	for _, a := range items {
		if a.Badge >= s.next {
			s.next = a.Badge + 1
		}
	}
	if s.next < 1 {
		s.next = 1
	}
	return s
}

// Add assigns the next badge number to a and appends it.
func (s *AnnotationStore) Add(a Annotation) Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.Badge = s.next
	s.next++
	s.items = append(s.items, a)
	return a
}

// Remove deletes the annotation with the given badge. Remaining annotations
// keep their badges.
func (s *AnnotationStore) Remove(badge int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.items {
		if a.Badge == badge {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("badge %d: %w", badge, ErrAnnotationNotFound)
}

// UpdateText replaces the feedback text of an annotation.
func (s *AnnotationStore) UpdateText(badge int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Badge == badge {
			s.items[i].Text = text
			return nil
		}
	}
	return fmt.Errorf("badge %d: %w", badge, ErrAnnotationNotFound)
}

// Get returns the annotation with the given badge.
func (s *AnnotationStore) Get(badge int) (Annotation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.items {
		if a.Badge == badge {
			return a, true
		}
	}
	return Annotation{}, false
}

// FindElement returns the first annotation whose element matches desc.
func (s *AnnotationStore) FindElement(desc ElementDescriptor) (Annotation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.items {
		if SameElement(a.Element, desc) {
			return a, true
		}
	}
	return Annotation{}, false
}

// All returns a copy of the annotations in display order.
func (s *AnnotationStore) All() []Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Annotation, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of annotations.
func (s *AnnotationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// NextBadge returns the badge the next Add will assign.
func (s *AnnotationStore) NextBadge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Clear empties the store and restarts badge numbering at 1.
func (s *AnnotationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.next = 1
}
