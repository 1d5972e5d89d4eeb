//go:build rp2040

package fmtx

import (
	"io"

	"thermosense-go/x/strconvx"
)

// DefaultOutput is used by Print/Printf on MCU builds.
// Set this from the platform bootstrap (e.g. a UART writer).
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func Sprintf(format string, a ...any) string {
	var b builder
	b.format(format, a...)
	return string(b.buf)
}

func Printf(format string, a ...any) (int, error) {
	return io.WriteString(DefaultOutput, Sprintf(format, a...))
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return io.WriteString(w, Sprintf(format, a...))
}

func Errorf(format string, a ...any) error {
	return &stringError{Sprintf(format, a...)}
}

// Sprint joins operands with spaces.
func Sprint(a ...any) string {
	var b builder
	for i, v := range a {
		if i > 0 {
			b.byte(' ')
		}
		b.value(v, -1)
	}
	return string(b.buf)
}

func Print(a ...any) (int, error) { return io.WriteString(DefaultOutput, Sprint(a...)) }

// Supported: %s %d %x %t %v %f %% with optional width and precision.
// Width pads on the left with spaces. No flags.

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }

type builder struct{ buf []byte }

func (b *builder) byte(c byte)  { b.buf = append(b.buf, c) }
func (b *builder) str(s string) { b.buf = append(b.buf, s...) }

func (b *builder) value(v any, prec int) {
	switch x := v.(type) {
	case string:
		b.str(x)
	case error:
		b.str(x.Error())
	case bool:
		if x {
			b.str("true")
		} else {
			b.str("false")
		}
	case float32:
		b.str(strconvx.FormatFloat(float64(x), 'f', precOr(prec, 6), 32))
	case float64:
		b.str(strconvx.FormatFloat(x, 'f', precOr(prec, 6), 64))
	default:
		if i, ok := toI64(v); ok {
			b.str(strconvx.FormatInt(i, 10))
			return
		}
		if u, ok := toU64(v); ok {
			b.str(strconvx.FormatUint(u, 10))
			return
		}
		b.str("<?>")
	}
}

func precOr(p, def int) int {
	if p < 0 {
		return def
	}
	return p
}

func (b *builder) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			b.byte(c)
			i++
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			b.byte('%')
			i++
			continue
		}
		width, prec := 0, -1
		i = parseNum(format, i, &width)
		if i < len(format) && format[i] == '.' {
			prec = 0
			i = parseNum(format, i+1, &prec)
		}
		if i >= len(format) || ai >= len(args) {
			return
		}
		verb := format[i]
		arg := args[ai]
		ai++
		i++

		start := len(b.buf)
		switch verb {
		case 'x':
			if u, ok := toU64(arg); ok {
				b.str(strconvx.FormatUint(u, 16))
			} else if n, ok := toI64(arg); ok {
				b.str(strconvx.FormatInt(n, 16))
			}
		case 'f', 'v', 's', 'd', 't':
			b.value(arg, prec)
		default:
			b.byte('%')
			b.byte(verb)
		}
		b.pad(start, width)
	}
}

// pad right-aligns the text written since start within width.
func (b *builder) pad(start, width int) {
	n := width - (len(b.buf) - start)
	if n <= 0 {
		return
	}
	for j := 0; j < n; j++ {
		b.buf = append(b.buf, ' ')
	}
	copy(b.buf[start+n:], b.buf[start:len(b.buf)-n])
	for j := 0; j < n; j++ {
		b.buf[start+j] = ' '
	}
}

func toI64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}

func toU64(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint:
		return uint64(t), true
	case uint8:
		return uint64(t), true
	case uint16:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case uint64:
		return t, true
	}
	return 0, false
}

func parseNum(s string, i int, out *int) int {
	n, start := 0, i
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i > start {
		*out = n
	}
	return i
}
