package faking

import "github.com/go-faker/faker/v4"

// Unique draws values from gen, refusing any value already handed out.
type Unique[T comparable] struct {
	seen map[T]bool
	gen  func() T
}

func NewUnique[T comparable](gen func() T) *Unique[T] {
	return &Unique[T]{
		seen: make(map[T]bool),
		gen:  gen,
	}
}

func (u *Unique[T]) Next() T {
	retry := 0
	for {
		value := u.gen()
		if !u.seen[value] {
			u.seen[value] = true
			return value
		}
		retry++
		if retry >= 16 {
			panic("too many retries")
		}
	}
}

func NewUniqueWords() *Unique[string] {
	return NewUnique(func() string {
		return faker.Word()
	})
}
