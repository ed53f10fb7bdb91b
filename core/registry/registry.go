// Package registry maps objects to stable integer ids and back.  Ids
// are issued in increasing order and never reused, so an id observed
// once keeps naming the same object, or nothing, for the life of the
// registry.
package registry

import "sort"

type Registry[T comparable] struct {
	next int
	byID map[int]T
	toID map[T]int
}

func New[T comparable]() *Registry[T] {
	return &Registry[T]{
		byID: make(map[int]T),
		toID: make(map[T]int),
	}
}

// Add registers v and returns its id.  Adding an object already
// present returns the existing id.
func (r *Registry[T]) Add(v T) int {
	if id, ok := r.toID[v]; ok {
		return id
	}
	id := r.next
	r.next++
	r.byID[id] = v
	r.toID[v] = id
	return id
}

// ID returns the id of v, or -1 if v is not registered.
func (r *Registry[T]) ID(v T) int {
	if id, ok := r.toID[v]; ok {
		return id
	}
	return -1
}

func (r *Registry[T]) Get(id int) (T, bool) {
	v, ok := r.byID[id]
	return v, ok
}

func (r *Registry[T]) Has(id int) bool {
	_, ok := r.byID[id]
	return ok
}

// Delete removes id and reports whether it was present.
func (r *Registry[T]) Delete(id int) bool {
	v, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	delete(r.toID, v)
	return true
}

func (r *Registry[T]) Len() int {
	return len(r.byID)
}

// Issued is the number of ids handed out so far, including deleted
// ones.
func (r *Registry[T]) Issued() int {
	return r.next
}

// IDs returns the live ids in ascending order.
func (r *Registry[T]) IDs() []int {
	ids := make([]int, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
