package exercise

import "strings"

// Registry holds the ordered curriculum. Membership and order are fixed at
// construction; callers share the backing exercises by reference for the
// lifetime of the process.
type Registry struct {
	exercises []Exercise
}

// NewRegistry builds a registry from descriptors in the given order.
// Every exercise starts pending. Descriptors are assumed to be validated.
func NewRegistry(descs []Descriptor) *Registry {
	r := &Registry{exercises: make([]Exercise, len(descs))}
	for i, d := range descs {
		r.exercises[i] = Exercise{
			Name: d.Name,
			Path: d.Path,
			Mode: d.Mode,
			Hint: strings.TrimSpace(d.Hint),
		}
	}
	return r
}

// Len returns the number of exercises.
func (r *Registry) Len() int {
	return len(r.exercises)
}

// At returns the exercise at index i. It panics if i is out of range.
func (r *Registry) At(i int) *Exercise {
	return &r.exercises[i]
}

// All returns the exercises in curriculum order. The slice aliases the
// registry's storage and must not be resliced or appended to.
func (r *Registry) All() []Exercise {
	return r.exercises
}

// Index returns the position of the exercise with the given name.
func (r *Registry) Index(name string) (int, bool) {
	for i := range r.exercises {
		if r.exercises[i].Name == name {
			return i, true
		}
	}
	return 0, false
}
