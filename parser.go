// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sdlite

import (
	"fmt"
	"io"

	"github.com/creachadair/sdlite/pool"
)

// A Node is a single SDLang statement: a possibly-anonymous qualified
// name, positional values, named attributes, and an optional block of
// child nodes.
type Node struct {
	// The node name, either "name" or "namespace:name".  An anonymous
	// node has the literal name "content".
	Name string

	// The location of the first token of the node.
	Location Location

	// Values and Attributes are in source order.  Attributes are not
	// deduplicated.
	Values     []Value
	Attributes []Attribute

	// Children holds the nodes of the "{ ... }" block, in source order,
	// or is empty if no block was present.
	Children []*Node
}

// An Attribute is a named value attached to a node.  The name is either
// "name" or "namespace:name".
type Attribute struct {
	Name  string
	Value Value
}

// Find returns the first child of n with the given qualified name, or
// nil if there is none.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Attr returns the value of the first attribute of n with the given
// qualified name, or nil if there is none.
func (n *Node) Attr(name string) Value {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value
		}
	}
	return nil
}

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Location Location
	Message  string

	err error
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// anonymousName is the name given to nodes that begin with a value
// rather than an identifier.
const anonymousName = "content"

// Parse parses input as an SDLang document and calls f once for each
// top-level node, in source order, with the node's children already
// attached.  The file name is used only for error and location
// reporting.
//
// Parsing stops at the first syntactic or semantic violation, which is
// reported as a *SyntaxError.  If f reports an error, parsing stops and
// that error is returned unchanged.  The nodes passed to f are owned by
// the caller; the parser does not retain or modify them.
func Parse(input []byte, file string, f func(*Node) error) (err error) {
	p := &parser{sc: NewScanner(input, file)}
	defer p.recoverParseError(&err)

	p.advance()
	p.parseNodes(0, func(n *Node) {
		if err := f(n); err != nil {
			panic(callbackError{err})
		}
	})
	if p.cur.tok != EOF {
		p.unexpected("end of file")
	}
	return nil
}

// ParseReader is shorthand for Parse on the full contents of r.
func ParseReader(r io.Reader, file string, f func(*Node) error) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return Parse(input, file, f)
}

// ParseAll parses input and returns all its top-level nodes.
func ParseAll(input []byte, file string) ([]*Node, error) {
	var out []*Node
	if err := Parse(input, file, func(n *Node) error {
		out = append(out, n)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// A parser consumes the token stream of a scanner and builds nodes.  All
// node storage is drawn from its pool appenders: one each for values,
// attributes, string contents, and binary contents, and one per depth
// for child nodes.  The per-depth appenders are reused across sibling
// blocks, so peak pool memory follows the widest spine of the tree, not
// its total size.
type parser struct {
	sc  *Scanner
	cur token

	values pool.Appender[Value]
	attrs  pool.Appender[Attribute]
	chars  pool.Appender[byte]
	data   pool.Appender[byte]
	nodes  []*pool.Appender[*Node]
}

// A token is a parser-side copy of one scanner token.  It remains valid
// after the scanner advances because the text is a view over the input.
type token struct {
	tok  Token
	text []byte
	loc  Location
}

func (t token) Token() Token       { return t.tok }
func (t token) Text() []byte       { return t.text }
func (t token) Location() Location { return t.loc }

type callbackError struct{ error }

func (c callbackError) Unwrap() error { return c.error }

func (p *parser) recoverParseError(errp *error) {
	if v := recover(); v != nil {
		switch err := v.(type) {
		case *SyntaxError:
			*errp = err
		case callbackError:
			*errp = err.error
		default:
			panic(v)
		}
	}
}

// next moves to the next non-comment token.
func (p *parser) next() {
	for p.sc.Next() {
		if p.sc.Token() == Comment {
			continue
		}
		p.cur = token{tok: p.sc.Token(), text: p.sc.Text(), loc: p.sc.Location()}
		return
	}
	// The scanner is exhausted; hold at EOF.
	p.cur.tok = EOF
}

// advance moves to the next token, applying the line-continuation rule:
// a backslash must be followed by an end of line, and both are elided.
func (p *parser) advance() {
	p.next()
	for p.cur.tok == Backslash {
		loc := p.cur.loc
		p.next()
		if p.cur.tok != EOL {
			panic(&SyntaxError{Location: loc, Message: "Expected EOL after backslash"})
		}
		p.next()
	}
}

// tokenRep renders the current token for an error message.
func tokenRep(t token) string {
	switch t.tok {
	case Invalid:
		return fmt.Sprintf("malformed token '%s'", t.text)
	case Ident:
		return fmt.Sprintf("identifier '%s'", t.text)
	}
	return t.tok.String()
}

func (p *parser) unexpected(want string) {
	panic(&SyntaxError{
		Location: p.cur.loc,
		Message:  fmt.Sprintf("Unexpected %s, expected %s", tokenRep(p.cur), want),
	})
}

// failValue reports a value-construction failure at the current token.
func (p *parser) failValue(err error) {
	panic(&SyntaxError{Location: p.cur.loc, Message: err.Error(), err: err})
}

// parseNodes consumes statements until a close brace or the end of
// input, passing each completed node to emit.
func (p *parser) parseNodes(depth int, emit func(*Node)) {
	for {
		for p.cur.tok == EOL || p.cur.tok == Semicolon {
			p.advance()
		}
		if p.cur.tok == EOF || p.cur.tok == BlockClose {
			return
		}
		emit(p.parseNode(depth))
	}
}

// parseNode consumes one statement.  The terminating EOL or semicolon is
// left for parseNodes; the parser only verifies it is present.
func (p *parser) parseNode(depth int) *Node {
	n := &Node{Location: p.cur.loc}
	if p.cur.tok == Ident {
		n.Name = p.qualifiedName()
	} else {
		n.Name = anonymousName
	}

	n.Values = p.parseValues()
	if n.Name == anonymousName && len(n.Values) == 0 {
		p.unexpected("values for anonymous node")
	}
	n.Attributes = p.parseAttributes()

	if p.cur.tok == BlockOpen {
		p.advance()
		if p.cur.tok != EOL {
			p.unexpected("end of line")
		}
		p.advance()
		n.Children = p.parseChildren(depth)
		if p.cur.tok != BlockClose {
			p.unexpected("'}'")
		}
		p.advance()
		if p.cur.tok != EOL && p.cur.tok != EOF {
			p.unexpected("end of node")
		}
	} else if p.cur.tok != EOL && p.cur.tok != Semicolon && p.cur.tok != EOF {
		p.unexpected("end of node")
	}
	return n
}

// parseChildren collects a block's nodes through the depth-d appender.
// The appender is reused by every sibling block at the same depth; the
// extracted slice is what keeps a finished block's children alive.
func (p *parser) parseChildren(depth int) []*Node {
	for len(p.nodes) <= depth {
		p.nodes = append(p.nodes, new(pool.Appender[*Node]))
	}
	ap := p.nodes[depth]
	p.parseNodes(depth+1, ap.Put)
	return ap.Extract()
}

// qualifiedName consumes "ident" or "ident:ident".
func (p *parser) qualifiedName() string {
	p.chars.PutSlice(p.cur.text)
	p.advance()
	if p.cur.tok == Namespace {
		p.advance()
		if p.cur.tok != Ident {
			p.unexpected("identifier")
		}
		p.chars.Put(':')
		p.chars.PutSlice(p.cur.text)
		p.advance()
	}
	return pool.ExtractString(&p.chars)
}

func (p *parser) parseValues() []Value {
	for p.cur.tok.IsScalar() {
		v, err := DecodeValue(p.cur, &p.chars, &p.data)
		if err != nil {
			p.failValue(err)
		}
		p.values.Put(v)
		p.advance()
	}
	return p.values.Extract()
}

func (p *parser) parseAttributes() []Attribute {
	for p.cur.tok == Ident {
		name := p.qualifiedName()
		if p.cur.tok != Assign {
			p.unexpected("'='")
		}
		p.advance()
		if !p.cur.tok.IsScalar() {
			p.unexpected("attribute value")
		}
		v, err := DecodeValue(p.cur, &p.chars, &p.data)
		if err != nil {
			p.failValue(err)
		}
		p.attrs.Put(Attribute{Name: name, Value: v})
		p.advance()
	}
	return p.attrs.Extract()
}
