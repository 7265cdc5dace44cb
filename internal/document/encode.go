package document

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Marshal encodes v with tab indentation, keeping object key order and
// leaving '<', '>' and '&' unescaped. The output ends with a newline.
func Marshal(v Value) []byte {
	var buf bytes.Buffer
	writeValue(&buf, v, "\t", 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// MarshalCompact encodes v without any whitespace.
func MarshalCompact(v Value) []byte {
	var buf bytes.Buffer
	writeValue(&buf, v, "", 0)
	return buf.Bytes()
}

func writeValue(buf *bytes.Buffer, v Value, indent string, depth int) {
	switch tv := v.(type) {
	case *Object:
		if tv.Len() == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteByte('{')
		i := 0
		for k, item := range tv.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeString(buf, k)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			writeValue(buf, item, indent, depth+1)
			i++
		}
		newline(buf, indent, depth)
		buf.WriteByte('}')
	case *Array:
		if tv.Len() == 0 {
			buf.WriteString("[]")
			return
		}
		// Short arrays of scalars (vectors, version triples) stay on one line.
		if allScalars(tv) && tv.Len() <= 4 {
			buf.WriteByte('[')
			for i, item := range tv.All() {
				if i > 0 {
					buf.WriteByte(',')
					if indent != "" {
						buf.WriteByte(' ')
					}
				}
				writeValue(buf, item, indent, depth)
			}
			buf.WriteByte(']')
			return
		}
		buf.WriteByte('[')
		for i, item := range tv.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeValue(buf, item, indent, depth+1)
		}
		newline(buf, indent, depth)
		buf.WriteByte(']')
	case Scalar:
		switch tv.kind {
		case KindNull:
			buf.WriteString("null")
		case KindBool:
			if tv.flag {
				buf.WriteString("true")
			} else {
				buf.WriteString("false")
			}
		case KindNumber:
			buf.WriteString(tv.text)
		case KindString:
			writeString(buf, tv.text)
		}
	default:
		buf.WriteString("null")
	}
}

func allScalars(a *Array) bool {
	for _, item := range a.All() {
		if !IsScalar(item) {
			return false
		}
	}
	return true
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}

func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	// Encoding a Go string cannot fail.
	_ = enc.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}
