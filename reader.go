package calc

// eof is the rune the reader returns outside its buffer.
const eof rune = -1

// reader is a cursor over a copy of the source text. The position starts
// before the first rune, so the first get returns it.
type reader struct {
	buf []rune
	ptr int
}

func newReader(text string) *reader {
	var r reader
	r.reset(text)
	return &r
}

// reset binds the reader to new text and rewinds it.
func (r *reader) reset(text string) {
	r.buf = []rune(text)
	r.ptr = -1
}

// get advances and returns the rune at the new position.
func (r *reader) get() rune {
	r.ptr++
	if r.ptr >= len(r.buf) {
		return eof
	}
	return r.buf[r.ptr]
}

// back retreats one position. Backing up past the start leaves the reader
// before the first rune.
func (r *reader) back() {
	if r.ptr >= 0 {
		r.ptr--
	}
}

// cur returns the rune at the current position.
func (r *reader) cur() rune {
	if r.ptr < 0 || r.ptr >= len(r.buf) {
		return eof
	}
	return r.buf[r.ptr]
}

// peek returns the next rune without advancing.
func (r *reader) peek() rune {
	if r.ptr+1 >= len(r.buf) {
		return eof
	}
	return r.buf[r.ptr+1]
}

// backc returns the rune before the current position without retreating.
func (r *reader) backc() rune {
	if r.ptr-1 < 0 || r.ptr-1 >= len(r.buf) {
		return eof
	}
	return r.buf[r.ptr-1]
}

// geteq advances only if the next rune is c.
func (r *reader) geteq(c rune) bool {
	if r.peek() != c {
		return false
	}
	r.ptr++
	return true
}

// done reports whether every rune has been read.
func (r *reader) done() bool {
	return r.ptr >= len(r.buf)-1
}

// col is the 1-based column of the current rune.
func (r *reader) col() int {
	return r.ptr + 1
}

// linecol converts a 1-based column over the whole text to a 1-based line
// number and a column within that line.
func (r *reader) linecol(col int) (line, c int) {
	line, start := 1, 0
	for i := 0; i < col-1 && i < len(r.buf); i++ {
		if r.buf[i] == '\n' {
			line++
			start = i + 1
		}
	}
	return line, col - start
}
