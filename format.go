package pythonic

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jacoelho/pythonic/internal/num"
)

// String renders v the way Python's str does: strings are unquoted, every
// other value uses its repr.
func (v Value) String() string {
	if v.tag == TagStr {
		return v.UncheckedStr()
	}
	return v.Repr()
}

// Repr renders v the way Python's repr does.
func (v Value) Repr() string {
	var b strings.Builder
	writeRepr(&b, v)
	return b.String()
}

func writeRepr(b *strings.Builder, v Value) {
	switch {
	case v.tag == TagNone:
		b.WriteString("None")
	case v.tag == TagBool:
		if v.UncheckedBool() {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case v.tag.IsUnsigned():
		b.WriteString(strconv.FormatUint(v.bits, 10))
	case v.tag.IsSigned():
		b.WriteString(strconv.FormatInt(int64(v.bits), 10))
	case v.tag == TagF32:
		b.WriteString(num.FormatFloat(v.UncheckedFloat64(), 32))
	case v.tag == TagF64:
		b.WriteString(num.FormatFloat(v.UncheckedFloat64(), 64))
	case v.tag == TagF80:
		b.WriteString(num.FormatExt(v.UncheckedBigFloat()))
	case v.tag == TagStr:
		writeQuoted(b, v.UncheckedStr())
	case v.tag == TagList:
		writeSeq(b, "[", "]", v.UncheckedList().items)
	case v.tag == TagSet:
		if v.UncheckedSet().Len() == 0 {
			b.WriteString("set()")
			return
		}
		writeSeq(b, "{", "}", members(v))
	case v.tag == TagOrderedSet:
		if v.UncheckedOrderedSet().Len() == 0 {
			b.WriteString("ordered_set()")
			return
		}
		writeSeq(b, "{", "}", members(v))
	case v.tag == TagDict || v.tag == TagOrderedDict:
		entries, _ := dictAll(v)
		b.WriteByte('{')
		first := true
		for k, e := range entries {
			if !first {
				b.WriteString(", ")
			}
			first = false
			writeQuoted(b, k)
			b.WriteString(": ")
			writeRepr(b, e)
		}
		b.WriteByte('}')
	case v.tag == TagGraph:
		g := v.UncheckedGraph()
		fmt.Fprintf(b, "<graph nodes=%d edges=%d>", g.NodeCount(), g.EdgeCount())
	default:
		b.WriteString("<invalid>")
	}
}

func writeSeq(b *strings.Builder, lb, rb string, items []Value) {
	b.WriteString(lb)
	for i, e := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeRepr(b, e)
	}
	b.WriteString(rb)
}

// writeQuoted quotes s like Python: single quotes unless s contains a single
// quote and no double quote.
func writeQuoted(b *strings.Builder, s string) {
	quote := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		quote = '"'
	}
	b.WriteByte(quote)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(b, `\x%02x`, s[i])
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r) || r == ' ':
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(b, `\u%04x`, r)
		default:
			fmt.Fprintf(b, `\U%08x`, r)
		}
		i += size
	}
	b.WriteByte(quote)
}

// PrettyOptions configures PrettyStringWithOptions.
type PrettyOptions struct {
	// Indent is the number of spaces before the outermost value.
	Indent int
	// Step is the number of spaces added per nesting level. Zero means 2.
	Step int
}

// PrettyString renders v with one container element per line.
func (v Value) PrettyString(indent, step int) string {
	return v.PrettyStringWithOptions(PrettyOptions{Indent: indent, Step: step})
}

// PrettyStringWithOptions renders v with one container element per line.
// Empty containers and scalars render as their repr.
func (v Value) PrettyStringWithOptions(opts PrettyOptions) string {
	if opts.Step <= 0 {
		opts.Step = 2
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", max(opts.Indent, 0)))
	writePretty(&b, v, max(opts.Indent, 0), opts.Step)
	return b.String()
}

func writePretty(b *strings.Builder, v Value, indent, step int) {
	n, err := v.Len()
	if err != nil || n == 0 || v.tag == TagStr || v.tag == TagGraph {
		writeRepr(b, v)
		return
	}
	lb, rb := "{", "}"
	if v.tag == TagList {
		lb, rb = "[", "]"
	}
	inner := strings.Repeat(" ", indent+step)
	b.WriteString(lb)
	b.WriteByte('\n')
	i := 0
	sep := func() {
		if i > 0 {
			b.WriteString(",\n")
		}
		i++
		b.WriteString(inner)
	}
	if entries, ok := dictAll(v); ok {
		for k, e := range entries {
			sep()
			writeQuoted(b, k)
			b.WriteString(": ")
			writePretty(b, e, indent+step, step)
		}
	} else {
		for e := range v.All() {
			sep()
			writePretty(b, e, indent+step, step)
		}
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString(rb)
}
