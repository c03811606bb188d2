// Package mathblock recognizes fenced display-math blocks:
//
//	$$
//	\int_0^1 x^2 \, dx
//	$$
//
// A block opens with a run of at least two marker bytes (by default '$'),
// optionally indented, and closes at the first later line whose marker run is
// at least as long as the opening one. An unterminated block runs to the end
// of the text it was handed.
//
// The scanner is independent of any host parser. Plugin registers it with the
// native block parser in package blockparse, and package
// parser/goldmark reuses the same fence rules as a goldmark block parser.
package mathblock
