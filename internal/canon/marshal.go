package canon

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Marshal produces the canonical byte serialization of a payload value.
// Two independent runs over identical input always produce identical bytes.
//
// Rules:
//  1. Object keys follow the Kind's preferred order, then UTF-16 code unit
//     order for the remainder (see Object.OrderedKeys)
//  2. Strings are NFC normalized; no HTML escaping (< > & stay literal)
//  3. Integers only - the Value model has no float type
//  4. No null - absent fields are simply not present
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalValue(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case String:
		marshalString(buf, string(val))
		return nil
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
		return nil
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case Array:
		return marshalArray(buf, val)
	case Object:
		return marshalObject(buf, val)
	case nil:
		return fmt.Errorf("nil Value is forbidden in digest payloads")
	default:
		return fmt.Errorf("unsupported payload type: %T", v)
	}
}

func marshalArray(buf *bytes.Buffer, arr Array) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalValue(buf, elem); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func marshalObject(buf *bytes.Buffer, obj Object) error {
	buf.WriteByte('{')
	for i, k := range obj.OrderedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		marshalString(buf, k)
		buf.WriteByte(':')
		v, _ := obj.Get(k)
		if err := marshalValue(buf, v); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// marshalString writes a JSON string with NFC normalization and the minimal
// escape set: quote, backslash, and control characters U+0000-U+001F. HTML
// characters (< > &) and U+2028/U+2029 are written literally.
func marshalString(buf *bytes.Buffer, s string) {
	s = norm.NFC.String(s)

	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
