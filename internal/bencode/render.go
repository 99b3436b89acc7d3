package bencode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// RenderJSON writes v as compact JSON for display. Dictionary keys keep their
// encoded order. Byte strings must be valid UTF-8.
func RenderJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderJSON(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case Integer:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case ByteString:
		return renderText(buf, v)
	case List:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := renderJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Dict:
		buf.WriteByte('{')
		for i, e := range v.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := renderText(buf, []byte(e.Key)); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := renderJSON(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("bencode: cannot render %T", v)
	}
	return nil
}

func renderText(buf *bytes.Buffer, s []byte) error {
	if !utf8.Valid(s) {
		return fmt.Errorf("%w: %q", ErrBinaryString, s)
	}
	quoted, err := json.Marshal(string(s))
	if err != nil {
		return err
	}
	buf.Write(quoted)
	return nil
}
