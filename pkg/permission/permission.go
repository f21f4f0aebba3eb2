// Package permission implements a small boolean algebra over authorization
// predicates. Trees are built once at command registration time from leaves
// combined with And, Or and Not, and evaluated per invocation against an
// opaque caller context supplied by the embedding transport.
//
// Combining two like-kind nodes re-associates them into a single flat node
// with deduplicated children, so p1.And(p2).And(p3) stays one And node
// instead of a nested chain.
package permission

import (
	"context"
	"strings"
)

// Predicate decides whether the caller passes a single leaf check. Predicates
// may perform I/O (e.g. a membership lookup) and should honor ctx; an error
// is treated as a denial by callers.
type Predicate func(ctx context.Context, caller any) (bool, error)

type kind uint8

const (
	kindLeaf kind = iota
	kindAnd
	kindOr
	kindNot
)

// Permission is a node in an authorization expression tree. Immutable after
// construction; safe for unsynchronized concurrent evaluation.
type Permission struct {
	kind      kind
	name      string
	predicate Predicate
	children  []*Permission
}

// New returns a leaf permission with the given name and predicate.
// The name shows up in String output when explaining a denial.
func New(name string, predicate Predicate) *Permission {
	if predicate == nil {
		panic("permission: New requires a predicate")
	}
	return &Permission{kind: kindLeaf, name: name, predicate: predicate}
}

// Anybody is granted to everyone.
func Anybody() *Permission {
	return New("anybody", func(context.Context, any) (bool, error) { return true, nil })
}

// Nobody is granted to no one.
func Nobody() *Permission {
	return New("nobody", func(context.Context, any) (bool, error) { return false, nil })
}

// And combines permissions so that all of them must be granted.
// And operands that are themselves And nodes are flattened in.
func And(perms ...*Permission) *Permission {
	return combine(kindAnd, perms)
}

// Or combines permissions so that at least one must be granted.
// Or operands that are themselves Or nodes are flattened in.
func Or(perms ...*Permission) *Permission {
	return combine(kindOr, perms)
}

// Not inverts a permission.
func Not(p *Permission) *Permission {
	if p == nil {
		panic("permission: Not requires a permission")
	}
	return &Permission{kind: kindNot, children: []*Permission{p}}
}

// And returns p AND others.
func (p *Permission) And(others ...*Permission) *Permission {
	return And(append([]*Permission{p}, others...)...)
}

// Or returns p OR others.
func (p *Permission) Or(others ...*Permission) *Permission {
	return Or(append([]*Permission{p}, others...)...)
}

// Not returns the inversion of p.
func (p *Permission) Not() *Permission { return Not(p) }

func combine(k kind, perms []*Permission) *Permission {
	if len(perms) == 0 {
		panic("permission: combination requires at least one permission")
	}
	var children []*Permission
	seen := make(map[*Permission]struct{})
	add := func(c *Permission) {
		if c == nil {
			panic("permission: nil permission in combination")
		}
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		children = append(children, c)
	}
	for _, p := range perms {
		if p != nil && p.kind == k {
			for _, c := range p.children {
				add(c)
			}
			continue
		}
		add(p)
	}
	if len(children) == 1 {
		return children[0]
	}
	return &Permission{kind: k, children: children}
}

// Evaluate walks the tree and reports whether the caller is authorized.
// And and Or short-circuit; a predicate error aborts evaluation.
func (p *Permission) Evaluate(ctx context.Context, caller any) (bool, error) {
	switch p.kind {
	case kindLeaf:
		return p.predicate(ctx, caller)
	case kindNot:
		v, err := p.children[0].Evaluate(ctx, caller)
		if err != nil {
			return false, err
		}
		return !v, nil
	case kindAnd:
		for _, c := range p.children {
			v, err := c.Evaluate(ctx, caller)
			if err != nil || !v {
				return false, err
			}
		}
		return true, nil
	case kindOr:
		for _, c := range p.children {
			v, err := c.Evaluate(ctx, caller)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil
	}
	panic("permission: unknown node kind")
}

// Children returns the direct children of a combination node. Leaves return
// nil. The returned slice must not be modified.
func (p *Permission) Children() []*Permission { return p.children }

// String renders the expression, e.g. "(admin and (not banned))". Useful for
// telling a user why a command was denied.
func (p *Permission) String() string {
	switch p.kind {
	case kindLeaf:
		return p.name
	case kindNot:
		return "(not " + p.children[0].String() + ")"
	case kindAnd:
		return renderChildren(p.children, " and ")
	case kindOr:
		return renderChildren(p.children, " or ")
	}
	return "?"
}

func renderChildren(children []*Permission, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
