// Package feature provides schema'd vector feature storage with
// streaming, tabular access to feature attributes and spatial
// filtering over feature geometries.
package feature

import (
	"fmt"
	"io"
	"time"

	"github.com/paulmach/orb"
)

// FieldType is the declared type of one attribute field.
type FieldType int

const (
	// Int is a 64 bit signed integer field.
	Int FieldType = iota
	// Float is a 64 bit floating point field.
	Float
	// String is a text field.
	String
	// Bool is a boolean field.
	Bool
	// Time is a timestamp field.
	Time
)

func (ft FieldType) String() string {
	switch ft {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Bool:
		return "Bool"
	case Time:
		return "Time"
	default:
		return fmt.Sprintf("FieldType(%d)", int(ft))
	}
}

// FieldDef defines one attribute field.
type FieldDef struct {
	Name string
	Type FieldType
}

// Schema is an ordered set of field definitions shared by every
// feature of a source.
type Schema struct {
	Fields []FieldDef
}

// FieldIndex returns the index of the named field, or -1.
func (s Schema) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// checkValues verifies that values matches the schema in count and
// type. Nil values are permitted for any field.
func (s Schema) checkValues(values []interface{}) error {
	if len(values) != len(s.Fields) {
		return fmt.Errorf("got %d values for %d fields", len(values), len(s.Fields))
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		ok := false
		switch s.Fields[i].Type {
		case Int:
			_, ok = v.(int64)
		case Float:
			_, ok = v.(float64)
		case String:
			_, ok = v.(string)
		case Bool:
			_, ok = v.(bool)
		case Time:
			_, ok = v.(time.Time)
		}
		if !ok {
			return fmt.Errorf("field %q: value %T does not match %s",
				s.Fields[i].Name, v, s.Fields[i].Type)
		}
	}
	return nil
}

// Feature is one vector feature: an identifier, a geometry and one
// attribute value per schema field.
type Feature struct {
	ID       uint64
	Geometry orb.Geometry
	Values   []interface{}
}

// Source streams features. Next returns io.EOF after the last
// feature. Sources are single-pass; obtain a fresh one to re-read.
type Source interface {
	Schema() Schema
	Next() (*Feature, error)
	Close() error
}

// sliceSource streams an in-memory feature snapshot.
type sliceSource struct {
	schema Schema
	feats  []*Feature
	pos    int
	closed bool
}

func (s *sliceSource) Schema() Schema {
	return s.schema
}

func (s *sliceSource) Next() (*Feature, error) {
	if s.closed {
		return nil, fmt.Errorf("source is closed")
	}
	if s.pos >= len(s.feats) {
		return nil, io.EOF
	}
	f := s.feats[s.pos]
	s.pos++
	return f, nil
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}
