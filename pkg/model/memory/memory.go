// Package memory provides an in-memory model.Store. It stands in for the
// external model-object collection in tests and examples; a real host
// would back model.Store with its own object model instead.
package memory

import (
	"fmt"

	"github.com/chazu/masonry/pkg/model"
)

// Compile-time interface check.
var _ model.Store = (*Store)(nil)

type object struct {
	name    string
	objType string
	fields  map[string]any
}

func (o *object) Name() string { return o.name }

func (o *object) Type() string { return o.objType }

func (o *object) Get(field string) any { return o.fields[field] }

func (o *object) Set(field string, value any) { o.fields[field] = value }

// Store is an insertion-ordered in-memory object collection.
type Store struct {
	objects map[string][]*object // by type, insertion order
}

// New returns an empty store.
func New() *Store {
	return &Store{objects: make(map[string][]*object)}
}

// New creates and registers an object. It panics on a duplicate
// type/name pair: the engine generates names deterministically and a
// collision is a bug.
func (s *Store) New(objType, name string) model.Object {
	for _, o := range s.objects[objType] {
		if o.name == name {
			panic(fmt.Sprintf("memory: duplicate object %s %q", objType, name))
		}
	}
	o := &object{name: name, objType: objType, fields: make(map[string]any)}
	s.objects[objType] = append(s.objects[objType], o)
	return o
}

// Remove deletes the object, preserving the order of the rest.
func (s *Store) Remove(obj model.Object) {
	list := s.objects[obj.Type()]
	for i, o := range list {
		if o.name == obj.Name() {
			s.objects[obj.Type()] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// ObjectsOf returns all objects of the given type in insertion order.
func (s *Store) ObjectsOf(objType string) []model.Object {
	list := s.objects[objType]
	out := make([]model.Object, len(list))
	for i, o := range list {
		out[i] = o
	}
	return out
}

// Len returns the number of objects of the given type.
func (s *Store) Len(objType string) int {
	return len(s.objects[objType])
}
