// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package sdlite implements a scanner, parser, and generator for SDLang,
// a line-oriented data description language with typed values and nested
// blocks.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for SDLang.  Construct a
// scanner from an input buffer and call its Next method to iterate over
// the stream.  Next reports false once the input is exhausted:
//
//	s := sdlite.NewScanner(input, "config.sdl")
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// The scanner itself never fails.  Malformed constructs are delivered as
// tokens of type Invalid, and it is up to the consumer to reject them;
// the last token of every input is EOF.
//
// # Parsing
//
// The Parse function implements a streaming recursive-descent parser
// over the token stream.  It calls a callback once per top-level node,
// in source order, with each node's values, attributes, and children
// fully decoded and attached:
//
//	err := sdlite.Parse(input, "config.sdl", func(n *sdlite.Node) error {
//	   log.Printf("Node %q with %d values", n.Name, len(n.Values))
//	   return nil
//	})
//
// In case of a syntax error, parsing stops and an error of concrete type
// *sdlite.SyntaxError is returned.  If the callback reports an error,
// parsing stops and that error is returned unchanged.  ParseAll is a
// convenience that collects the top-level nodes into a slice.
//
// Because nodes are delivered as they complete and the parser's pool
// buffers are recycled between siblings, the additional memory held by a
// parse is proportional to the depth of the tree, not its total size,
// when the callback does not retain its nodes.
//
// # Generating
//
// The Generate function renders a sequence of nodes back to SDLang text.
// Output of Generate parses back to an equal node sequence, except for
// rounded floats and durations with zero seconds (see Generate); original
// formatting and comments are not preserved.
package sdlite
