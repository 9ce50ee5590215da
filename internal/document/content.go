package document

// maxFormDepth bounds Form XObject nesting, cycles included.
const maxFormDepth = 8

// FormResolver gives access to the Form XObjects a content stream may paint
// with "/Name Do".
type FormResolver interface {
	// Form returns the decoded content of the named form and the resolver
	// for its own resources. ok is false for images and unknown names.
	Form(name string) (content []byte, sub FormResolver, ok bool)
}

// ParseDrawings scans a decoded page content stream and returns the painted
// paths it draws. Only the operators matter here, so operands are skipped
// without being interpreted. Clipping-only paths (ended by "n") are dropped.
func ParseDrawings(content []byte) []Drawing {
	return ParseDrawingsWithForms(content, nil)
}

// ParseDrawingsWithForms is ParseDrawings that also follows "Do" into Form
// XObjects, appending their drawings where they are painted.
func ParseDrawingsWithForms(content []byte, forms FormResolver) []Drawing {
	return parseDrawings(content, forms, 0)
}

func parseDrawings(content []byte, forms FormResolver, depth int) []Drawing {
	var (
		out     []Drawing
		current []PathOp
	)
	lx := lexer{data: content}
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		switch tok {
		case "m":
			current = append(current, PathMove)
		case "l":
			current = append(current, PathLine)
		case "c", "v", "y":
			current = append(current, PathCurve)
		case "re":
			current = append(current, PathRect)
		case "h":
			current = append(current, PathClose)
		case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*":
			if len(current) > 0 {
				out = append(out, Drawing{Segments: current})
			}
			current = nil
		case "n":
			current = nil
		case "BI":
			lx.skipInlineImage()
		case "Do":
			if forms == nil || depth >= maxFormDepth || lx.lastName == "" {
				continue
			}
			if data, sub, ok := forms.Form(lx.lastName); ok {
				out = append(out, parseDrawings(data, sub, depth+1)...)
			}
		}
	}
	return out
}

// lexer yields operator tokens of a PDF content stream.
type lexer struct {
	data []byte
	pos  int
	// lastName is the most recent name operand, the target of "Do".
	lastName string
}

func isWhite(b byte) bool {
	switch b {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// next returns the next operator, skipping numbers, names, strings,
// arrays and dictionaries.
func (lx *lexer) next() (string, bool) {
	for lx.pos < len(lx.data) {
		b := lx.data[lx.pos]
		switch {
		case isWhite(b):
			lx.pos++
		case b == '%':
			for lx.pos < len(lx.data) && lx.data[lx.pos] != '\n' && lx.data[lx.pos] != '\r' {
				lx.pos++
			}
		case b == '(':
			lx.skipString()
		case b == '<':
			if lx.pos+1 < len(lx.data) && lx.data[lx.pos+1] == '<' {
				lx.pos += 2
			} else {
				lx.skipHex()
			}
		case b == '>' || b == '[' || b == ']' || b == '{' || b == '}' || b == ')':
			lx.pos++
		case b == '/':
			lx.pos++
			lx.lastName = lx.word()
		default:
			w := lx.word()
			if w == "" {
				lx.pos++
				continue
			}
			if isNumber(w) || w == "true" || w == "false" || w == "null" {
				continue
			}
			return w, true
		}
	}
	return "", false
}

func (lx *lexer) word() string {
	start := lx.pos
	for lx.pos < len(lx.data) && !isWhite(lx.data[lx.pos]) && !isDelim(lx.data[lx.pos]) {
		lx.pos++
	}
	return string(lx.data[start:lx.pos])
}

// skipString consumes a literal string with nested parentheses and escapes.
func (lx *lexer) skipString() {
	depth := 0
	for lx.pos < len(lx.data) {
		switch lx.data[lx.pos] {
		case '\\':
			lx.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				lx.pos++
				return
			}
		}
		lx.pos++
	}
}

func (lx *lexer) skipHex() {
	for lx.pos < len(lx.data) && lx.data[lx.pos] != '>' {
		lx.pos++
	}
	lx.pos++
}

// skipInlineImage jumps past the binary payload of a BI ... ID ... EI block.
func (lx *lexer) skipInlineImage() {
	for {
		tok, ok := lx.next()
		if !ok || tok == "ID" {
			break
		}
	}
	for lx.pos+2 <= len(lx.data) {
		if lx.data[lx.pos] == 'E' && lx.data[lx.pos+1] == 'I' &&
			lx.pos > 0 && isWhite(lx.data[lx.pos-1]) &&
			(lx.pos+2 == len(lx.data) || isWhite(lx.data[lx.pos+2])) {
			lx.pos += 2
			return
		}
		lx.pos++
	}
	lx.pos = len(lx.data)
}

func isNumber(w string) bool {
	digits := 0
	for i := 0; i < len(w); i++ {
		c := w[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
		case (c == '-' || c == '+') && i == 0:
		default:
			return false
		}
	}
	return digits > 0 || w == "."
}
