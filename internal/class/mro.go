// Package class computes method resolution order and synthesizes the
// implicit members of record classes, named tuples, TypedDicts and
// enums, grounded on pyre2's class_field.rs / named_tuple.rs /
// typed_dict.rs (see original_source/pyrefly) and structured the way
// escalier's checker/scope.go builds a class's namespace.
package class

import (
	"fmt"

	"github.com/typewell-lang/typewell/internal/types"
)

// Linearize computes c's C3 MRO from its already-resolved Bases and
// stores it on c.MRO. It returns an error naming c when no consistent
// linearization exists.
func Linearize(c *types.Class) error {
	mro, err := c3Merge(c)
	if err != nil {
		return err
	}
	c.MRO = mro
	return nil
}

func c3Merge(c *types.Class) ([]*types.Class, error) {
	if len(c.Bases) == 0 {
		return []*types.Class{c}, nil
	}

	sequences := make([][]*types.Class, 0, len(c.Bases)+1)
	for _, b := range c.Bases {
		base := b.Class
		if len(base.MRO) == 0 {
			if err := Linearize(base); err != nil {
				return nil, err
			}
		}
		sequences = append(sequences, append([]*types.Class{}, base.MRO...))
	}
	directBases := make([]*types.Class, len(c.Bases))
	for i, b := range c.Bases {
		directBases[i] = b.Class
	}
	sequences = append(sequences, directBases)

	merged := []*types.Class{c}
	for {
		sequences = dropEmpty(sequences)
		if len(sequences) == 0 {
			break
		}
		head, ok := pickHead(sequences)
		if !ok {
			return nil, fmt.Errorf("inconsistent method resolution order for class %s", c.QualName)
		}
		merged = append(merged, head)
		sequences = removeHead(sequences, head)
	}
	return merged, nil
}

func dropEmpty(seqs [][]*types.Class) [][]*types.Class {
	out := make([][]*types.Class, 0, len(seqs))
	for _, s := range seqs {
		if len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// pickHead finds a candidate appearing at the head of some sequence and
// nowhere in the tail of any sequence (the C3 "good head" rule).
func pickHead(seqs [][]*types.Class) (*types.Class, bool) {
	for _, s := range seqs {
		candidate := s[0]
		if appearsInAnyTail(seqs, candidate) {
			continue
		}
		return candidate, true
	}
	return nil, false
}

func appearsInAnyTail(seqs [][]*types.Class, candidate *types.Class) bool {
	for _, s := range seqs {
		for _, c := range s[1:] {
			if c == candidate {
				return true
			}
		}
	}
	return false
}

func removeHead(seqs [][]*types.Class, head *types.Class) [][]*types.Class {
	out := make([][]*types.Class, 0, len(seqs))
	for _, s := range seqs {
		if s[0] == head {
			s = s[1:]
		}
		out = append(out, s)
	}
	return out
}
