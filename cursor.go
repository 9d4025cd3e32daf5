package cstn

// eof is returned by peek and read once the cursor is past the end of the
// input. It is never a valid rune.
const eof rune = -1

// cursor is a read position over a rune buffer.
type cursor struct {
	text []rune
	i    int
}

func newCursor(text string) *cursor {
	return &cursor{text: []rune(text)}
}

func (c *cursor) Offset() int {
	return c.i
}

func (c *cursor) peek() rune {
	if c.i < len(c.text) {
		return c.text[c.i]
	}
	return eof
}

func (c *cursor) read() rune {
	r := c.peek()
	if r != eof {
		c.i++
	}
	return r
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// skipWhitespace consumes whitespace and the first rune after it, and
// returns that rune.
func (c *cursor) skipWhitespace() rune {
	r := c.read()
	for isWhitespace(r) {
		r = c.read()
	}
	return r
}

// peekPastWhitespace consumes whitespace and returns the next rune without
// consuming it.
func (c *cursor) peekPastWhitespace() rune {
	for isWhitespace(c.peek()) {
		c.i++
	}
	return c.peek()
}

func (c *cursor) readWhile(pred func(rune) bool) string {
	start := c.i
	for {
		r := c.peek()
		if r == eof || !pred(r) {
			break
		}
		c.i++
	}
	return string(c.text[start:c.i])
}
