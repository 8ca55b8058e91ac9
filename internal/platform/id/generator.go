package id

import "github.com/google/uuid"

// Generator creates opaque ids for refresh runs and other external references.
type Generator interface {
	NewID() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Static always returns the same id. Useful in tests.
type Static string

func (s Static) NewID() string {
	return string(s)
}
