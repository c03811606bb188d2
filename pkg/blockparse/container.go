package blockparse

import (
	"regexp"
	"strconv"

	"github.com/yaklabco/gomdmath/pkg/mdast"
)

var (
	blockquoteMarkerRegexp = regexp.MustCompile(`^ {0,3}> ?`)

	// Capture groups:
	// 1. indentation
	// 2. bullet punctuation
	// 3. ordered item start number, 4. its punctuation
	itemMarkerRegexp = regexp.MustCompile(`^( {0,3})(?:([-+*])|([0-9]{1,9})([.)]))`)
)

func tokenizeBlockquote(ctx *Context, text string, probe bool) (*mdast.Node, int, bool) {
	if !ctx.canNest() || !blockquoteMarkerRegexp.MatchString(firstLine(text)) {
		return nil, 0, false
	}
	if probe {
		return nil, 0, true
	}

	var (
		lines    []string
		offsets  []int
		consumed int
	)

	for pos := 0; pos >= 0; {
		end := lineEnd(text, pos)
		line := text[pos:end]

		if marker := blockquoteMarkerRegexp.FindString(line); marker != "" {
			lines = append(lines, line[len(marker):])
			offsets = append(offsets, pos+len(marker))
		} else {
			// Lazy continuation of a paragraph.
			if isBlank(line) || isBlank(lines[len(lines)-1]) ||
				ctx.Interrupts(InterruptBlockquote, text[pos:]) {
				break
			}
			lines = append(lines, line)
			offsets = append(offsets, pos)
		}

		consumed = end
		pos = nextLine(text, end)
	}

	node := mdast.NewNode(mdast.NodeBlockquote)
	mdast.AppendChildren(node, ctx.Nest(lines, offsets))
	return node, consumed, true
}

type itemMarker struct {
	bullet  byte
	ordered bool
	start   int
	delim   byte

	// head is the byte length of indentation plus marker.
	head int
	// width is the number of columns item content is indented by.
	width int
	// empty is true when nothing follows the marker on its line.
	empty bool
}

func (m itemMarker) sameList(other itemMarker) bool {
	if m.ordered != other.ordered {
		return false
	}
	if m.ordered {
		return m.delim == other.delim
	}
	return m.bullet == other.bullet
}

func parseItemMarker(line string) (itemMarker, bool) {
	m := itemMarkerRegexp.FindStringSubmatch(line)
	if m == nil {
		return itemMarker{}, false
	}

	var marker itemMarker
	punct := len(m[2])
	if m[2] != "" {
		marker.bullet = m[2][0]
	} else {
		marker.ordered = true
		marker.start, _ = strconv.Atoi(m[3])
		marker.delim = m[4][0]
		punct = len(m[3]) + 1
	}

	head := len(m[1]) + punct
	marker.head = head
	rest := line[head:]
	spaces := indentWidth(rest)

	switch {
	case isBlank(rest):
		marker.empty = true
		marker.width = head + 1
	case spaces == 0:
		// "-foo" is not an item.
		return itemMarker{}, false
	case spaces > codeIndent:
		marker.width = head + 1
	default:
		marker.width = head + spaces
	}

	return marker, true
}

type listItem struct {
	width   int
	lines   []string
	offsets []int
	start   int
	end     int
}

func (item *listItem) add(line string, offset, end int) {
	item.lines = append(item.lines, line)
	item.offsets = append(item.offsets, offset)
	item.end = end
}

func (item *listItem) trimTrailingBlank() {
	n := len(item.lines)
	for n > 1 && isBlank(item.lines[n-1]) {
		n--
	}
	item.lines = item.lines[:n]
	item.offsets = item.offsets[:n]
}

func (item *listItem) hasInnerBlank() bool {
	for _, line := range item.lines[1:] {
		if isBlank(line) {
			return true
		}
	}
	return false
}

func tokenizeList(ctx *Context, text string, probe bool) (*mdast.Node, int, bool) {
	first, ok := parseItemMarker(firstLine(text))
	if !ok || !ctx.canNest() {
		return nil, 0, false
	}
	if probe {
		// An empty item cannot interrupt other content.
		return nil, 0, !first.empty
	}

	var (
		items     []*listItem
		current   *listItem
		consumed  int
		prevBlank bool
		loose     bool
	)

	startItem := func(line string, pos, end int, marker itemMarker) {
		content, removed := stripColumns(line[marker.head:], marker.width-marker.head)
		current = &listItem{width: marker.width, start: pos}
		current.add(content, pos+marker.head+removed, end)
		items = append(items, current)
	}

	for pos := 0; pos >= 0; {
		end := lineEnd(text, pos)
		line := text[pos:end]

		marker, isItem := parseItemMarker(line)
		isItem = isItem && !thematicBreakRegexp.MatchString(line)

		switch {
		case current == nil:
			startItem(line, pos, end, first)
		case isBlank(line):
			current.lines = append(current.lines, "")
			current.offsets = append(current.offsets, pos)
			prevBlank = true
			pos = nextLine(text, end)
			continue
		case indentWidth(line) >= current.width:
			content, removed := stripColumns(line, current.width)
			current.add(content, pos+removed, end)
		case isItem && marker.sameList(first):
			if prevBlank {
				loose = true
			}
			current.trimTrailingBlank()
			startItem(line, pos, end, marker)
		case prevBlank || isItem || ctx.Interrupts(InterruptList, text[pos:]):
			pos = -1
			continue
		default:
			// Lazy continuation.
			current.add(line, pos, end)
		}

		prevBlank = false
		consumed = end
		pos = nextLine(text, end)
	}

	attrs := &mdast.ListAttrs{Ordered: first.ordered, StartNumber: first.start}
	if first.ordered {
		attrs.Delimiter = string(first.delim)
	} else {
		attrs.BulletMarker = string(first.bullet)
	}

	list := mdast.NewNode(mdast.NodeList)
	for _, item := range items {
		item.trimTrailingBlank()
		if item.hasInnerBlank() {
			loose = true
		}

		node := mdast.NewNode(mdast.NodeListItem)
		mdast.AppendChildren(node, ctx.Nest(item.lines, item.offsets))
		node.Position = mdast.Position{Start: ctx.Point(item.start), End: ctx.Point(item.end)}
		mdast.AppendChild(list, node)
	}

	attrs.Tight = !loose
	list.Block = &mdast.BlockAttrs{List: attrs}
	return list, consumed, true
}
