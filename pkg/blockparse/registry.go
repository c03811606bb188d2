// Package blockparse is a block-level Markdown parser built from an ordered
// table of named tokenizers.
//
// At each position the parser offers the remaining text to every tokenizer in
// order; the first one that matches reports how many bytes it consumed and the
// node it built. Paragraphs, list items and blockquotes consult per-container
// interrupt lists, probing tokenizers without consuming, to decide where they
// end. Extensions join the tables through Registry.AddBlock and the Handle it
// returns.
//
// Built-in nodes are shallow: paragraphs and headings keep their raw text in
// Node.Value and no inline parsing is done.
package blockparse

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/gomdmath/pkg/mdast"
)

// Names of the built-in tokenizers.
const (
	BlankLine     = "blankLine"
	IndentedCode  = "indentedCode"
	FencedCode    = "fencedCode"
	Blockquote    = "blockquote"
	ATXHeading    = "atxHeading"
	ThematicBreak = "thematicBreak"
	List          = "list"
	Paragraph     = "paragraph"
)

var (
	// ErrUnknownHandler is returned when a name or insertion anchor does
	// not refer to a registered tokenizer.
	ErrUnknownHandler = errors.New("unknown block handler")

	// ErrDuplicateHandler is returned when a name is registered twice.
	ErrDuplicateHandler = errors.New("duplicate block handler")
)

// Tokenizer recognizes one kind of block at the start of text.
//
// It returns false when text does not start with its block. Otherwise it
// returns the number of bytes consumed and the node built, which may be nil
// for text that produces no node. In probe mode only the match matters: the
// tokenizer must not build nodes and the parser ignores the other results.
type Tokenizer func(ctx *Context, text string, probe bool) (node *mdast.Node, consumed int, ok bool)

// Container identifies an interrupt list.
type Container int

// Containers whose open content can be interrupted by a new block.
const (
	InterruptParagraph Container = iota
	InterruptList
	InterruptBlockquote
)

var containerNames = [...]string{
	InterruptParagraph:  "paragraph",
	InterruptList:       "list",
	InterruptBlockquote: "blockquote",
}

func (c Container) String() string {
	if c >= 0 && int(c) < len(containerNames) {
		return containerNames[c]
	}
	return fmt.Sprintf("Container(%d)", int(c))
}

// Containers lists every interrupt list.
func Containers() []Container {
	return []Container{InterruptParagraph, InterruptList, InterruptBlockquote}
}

type hintKind int

const (
	hintLast hintKind = iota
	hintFirst
	hintBefore
	hintAfter
)

// Hint says where a new entry goes in an ordered table.
type Hint struct {
	kind   hintKind
	anchor string
}

var (
	// First inserts at the front of the table.
	First = Hint{kind: hintFirst}

	// Last appends to the table.
	Last = Hint{kind: hintLast}
)

// Before inserts immediately before the named entry.
func Before(name string) Hint { return Hint{kind: hintBefore, anchor: name} }

// After inserts immediately after the named entry.
func After(name string) Hint { return Hint{kind: hintAfter, anchor: name} }

func (h Hint) index(names []string) (int, error) {
	switch h.kind {
	case hintFirst:
		return 0, nil
	case hintLast:
		return len(names), nil
	}

	idx := slices.Index(names, h.anchor)
	if idx < 0 {
		return 0, fmt.Errorf("anchor %q: %w", h.anchor, ErrUnknownHandler)
	}
	if h.kind == hintAfter {
		idx++
	}
	return idx, nil
}

// Plugin adds block types to a Registry.
type Plugin interface {
	// Name identifies the plugin in errors.
	Name() string

	// Register adds the plugin's tokenizers, interrupt entries and
	// visitors. It is called once per Registry.
	Register(r *Registry) error
}

type method struct {
	name      string
	tokenizer Tokenizer
}

// Registry holds the tokenizer table, the interrupt lists and the serializer
// visitors. It is not safe for concurrent use; build it once, then derive
// immutable Parser and Compiler values from it.
type Registry struct {
	methods    []method
	interrupts map[Container][]string
	visitors   map[mdast.NodeKind]Visitor
}

// NewRegistry returns a registry holding the built-in block types.
func NewRegistry() *Registry {
	r := &Registry{
		methods: []method{
			{BlankLine, tokenizeBlankLine},
			{IndentedCode, tokenizeIndentedCode},
			{FencedCode, tokenizeFencedCode},
			{Blockquote, tokenizeBlockquote},
			{ATXHeading, tokenizeATXHeading},
			{ThematicBreak, tokenizeThematicBreak},
			{List, tokenizeList},
			{Paragraph, tokenizeParagraph},
		},
		interrupts: map[Container][]string{
			InterruptParagraph:  {ThematicBreak, List, ATXHeading, FencedCode, Blockquote},
			InterruptList:       {ATXHeading, FencedCode, ThematicBreak},
			InterruptBlockquote: {IndentedCode, FencedCode, ATXHeading, ThematicBreak, List},
		},
		visitors: make(map[mdast.NodeKind]Visitor),
	}

	for kind, visitor := range builtinVisitors() {
		r.visitors[kind] = visitor
	}

	return r
}

// Use registers plugins in order, stopping at the first error.
func (r *Registry) Use(plugins ...Plugin) error {
	for _, plugin := range plugins {
		if err := plugin.Register(r); err != nil {
			return fmt.Errorf("register %s: %w", plugin.Name(), err)
		}
	}
	return nil
}

// AddBlock inserts a tokenizer into the block table at the position given by
// hint and returns the handle used to add interrupt entries for it.
func (r *Registry) AddBlock(name string, tokenizer Tokenizer, hint Hint) (*Handle, error) {
	if tokenizer == nil {
		return nil, fmt.Errorf("block %q: nil tokenizer", name)
	}

	names := r.Methods()
	if slices.Contains(names, name) {
		return nil, fmt.Errorf("block %q: %w", name, ErrDuplicateHandler)
	}

	idx, err := hint.index(names)
	if err != nil {
		return nil, fmt.Errorf("block %q: %w", name, err)
	}

	r.methods = slices.Insert(r.methods, idx, method{name: name, tokenizer: tokenizer})

	return &Handle{registry: r, name: name}, nil
}

// AddInterrupt inserts a registered tokenizer into the interrupt list of
// container at the position given by hint.
func (r *Registry) AddInterrupt(container Container, name string, hint Hint) error {
	if !slices.Contains(r.Methods(), name) {
		return fmt.Errorf("interrupt %s/%q: %w", container, name, ErrUnknownHandler)
	}

	list := r.interrupts[container]
	if slices.Contains(list, name) {
		return fmt.Errorf("interrupt %s/%q: %w", container, name, ErrDuplicateHandler)
	}

	idx, err := hint.index(list)
	if err != nil {
		return fmt.Errorf("interrupt %s/%q: %w", container, name, err)
	}

	r.interrupts[container] = slices.Insert(slices.Clone(list), idx, name)
	return nil
}

// AddVisitor sets the serializer visitor for kind, replacing any previous one.
func (r *Registry) AddVisitor(kind mdast.NodeKind, visitor Visitor) {
	r.visitors[kind] = visitor
}

// Remove deletes a tokenizer together with its interrupt entries.
func (r *Registry) Remove(name string) error {
	idx := slices.Index(r.Methods(), name)
	if idx < 0 {
		return fmt.Errorf("remove %q: %w", name, ErrUnknownHandler)
	}

	r.methods = slices.Delete(r.methods, idx, idx+1)
	for container, list := range r.interrupts {
		r.interrupts[container] = slices.DeleteFunc(slices.Clone(list), func(entry string) bool {
			return entry == name
		})
	}
	return nil
}

// Methods returns the tokenizer names in dispatch order.
func (r *Registry) Methods() []string {
	names := make([]string, len(r.methods))
	for i, m := range r.methods {
		names[i] = m.name
	}
	return names
}

// Interrupts returns the interrupt list of container.
func (r *Registry) Interrupts(container Container) []string {
	return slices.Clone(r.interrupts[container])
}

// Parser returns a parser for the current tables. Later registry changes do
// not affect it.
func (r *Registry) Parser() *Parser {
	p := &Parser{
		methods:    slices.Clone(r.methods),
		tokenizers: make(map[string]Tokenizer, len(r.methods)),
		interrupts: make(map[Container][]Tokenizer, len(r.interrupts)),
	}

	for _, m := range r.methods {
		p.tokenizers[m.name] = m.tokenizer
	}
	for container, names := range r.interrupts {
		for _, name := range names {
			p.interrupts[container] = append(p.interrupts[container], p.tokenizers[name])
		}
	}

	return p
}

// Compiler returns a serializer for the current visitors.
func (r *Registry) Compiler() *Compiler {
	visitors := make(map[mdast.NodeKind]Visitor, len(r.visitors))
	for kind, visitor := range r.visitors {
		visitors[kind] = visitor
	}
	return &Compiler{visitors: visitors}
}

// Handle is the capability returned by AddBlock. It lets the owner of a
// tokenizer place it in interrupt lists and attach a visitor.
type Handle struct {
	registry *Registry
	name     string
}

// Name returns the tokenizer name.
func (h *Handle) Name() string { return h.name }

// Interrupt adds the tokenizer to the interrupt list of each container at
// the same relative position.
func (h *Handle) Interrupt(hint Hint, containers ...Container) error {
	for _, container := range containers {
		if err := h.registry.AddInterrupt(container, h.name, hint); err != nil {
			return err
		}
	}
	return nil
}

// Visit attaches the serializer visitor for kind.
func (h *Handle) Visit(kind mdast.NodeKind, visitor Visitor) {
	h.registry.AddVisitor(kind, visitor)
}

// Remove unregisters the tokenizer and its interrupt entries.
func (h *Handle) Remove() error {
	return h.registry.Remove(h.name)
}
