// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package query implements structural queries over parsed SDLang nodes.
//
// A query describes a traversal of a node tree: a path through named
// children, a positional value, or an attribute lookup.  Evaluating a
// query against a node walks the described structure and returns the
// result, which is either a *sdlite.Node or a sdlite.Value depending on
// the final step.
//
// For example, given the document:
//
//	server "edge" {
//	    limits burst=10 {
//	        window 0:05:00
//	    }
//	}
//
// the query
//
//	query.Path("limits", query.Attr("burst"))
//
// yields the value 10.
package query

import (
	"errors"
	"fmt"

	"github.com/creachadair/sdlite"
)

// Eval evaluates the given query beginning from root, returning the
// resulting node or value, or an error.
func Eval(root *sdlite.Node, q Query) (any, error) {
	return q.eval(root)
}

// A Query describes a traversal of a node tree.
type Query interface {
	eval(*sdlite.Node) (any, error)
}

// Path traverses a sequence of keys from the root.  A string key selects
// the first child with that qualified name, an int key selects a child
// by position, and a Query is applied as-is.  If no keys are given the
// root itself is returned.  Every step but the last must land on a node.
func Path(keys ...any) Query {
	pq := make(Seq, len(keys))
	for i, key := range keys {
		pq[i] = pathElem(key)
	}
	if len(pq) == 1 {
		return pq[0]
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return childName(t)
	case int:
		return nthChild(t)
	case Query:
		return t
	default:
		panic(fmt.Sprintf("invalid path element %T", key))
	}
}

// A Seq is a sequence of queries evaluated in order, each beginning at
// the result of its predecessor.
type Seq []Query

func (s Seq) eval(n *sdlite.Node) (any, error) {
	cur, res := n, any(n)
	for i, q := range s {
		var err error
		res, err = q.eval(cur)
		if err != nil {
			return nil, err
		}
		if i+1 == len(s) {
			break
		}
		next, ok := res.(*sdlite.Node)
		if !ok {
			return nil, errors.New("cannot traverse into a value")
		}
		cur = next
	}
	return res, nil
}

type childName string

func (c childName) eval(n *sdlite.Node) (any, error) {
	if kid := n.Find(string(c)); kid != nil {
		return kid, nil
	}
	return nil, fmt.Errorf("child %q not found", string(c))
}

type nthChild int

func (q nthChild) eval(n *sdlite.Node) (any, error) {
	idx := int(q)
	if idx < 0 {
		idx += len(n.Children)
	}
	if idx < 0 || idx >= len(n.Children) {
		return nil, fmt.Errorf("child index %d out of range (0..%d)", int(q), len(n.Children)-1)
	}
	return n.Children[idx], nil
}

// Attr returns a query for the value of the named attribute.
func Attr(name string) Query { return attrQuery(name) }

type attrQuery string

func (q attrQuery) eval(n *sdlite.Node) (any, error) {
	if v := n.Attr(string(q)); v != nil {
		return v, nil
	}
	return nil, fmt.Errorf("attribute %q not found", string(q))
}

// Value returns a query for the positional value at index i.  Negative
// indices count backward from the end.
func Value(i int) Query { return valueQuery(i) }

type valueQuery int

func (q valueQuery) eval(n *sdlite.Node) (any, error) {
	idx := int(q)
	if idx < 0 {
		idx += len(n.Values)
	}
	if idx < 0 || idx >= len(n.Values) {
		return nil, fmt.Errorf("value index %d out of range (0..%d)", int(q), len(n.Values)-1)
	}
	return n.Values[idx], nil
}
