package bencode

import (
	"fmt"
	"strconv"
)

// Encode serializes v. Dictionary entries are written in their stored order,
// so Encode reproduces the bytes of any document Decode accepted without
// duplicate keys.
func Encode(v Value) []byte {
	return AppendEncode(nil, v)
}

// AppendEncode appends the encoding of v to dst. It panics if v, or any value
// nested in it, is nil or not one of the Value types.
func AppendEncode(dst []byte, v Value) []byte {
	switch v := v.(type) {
	case Integer:
		dst = append(dst, tokenInteger)
		dst = strconv.AppendInt(dst, int64(v), 10)
		return append(dst, tokenEnd)
	case ByteString:
		return appendString(dst, v)
	case List:
		dst = append(dst, tokenList)
		for _, item := range v {
			dst = AppendEncode(dst, item)
		}
		return append(dst, tokenEnd)
	case *Dict:
		dst = append(dst, tokenDict)
		if v != nil {
			for _, k := range v.keys {
				dst = appendString(dst, []byte(k))
				dst = AppendEncode(dst, v.values[k])
			}
		}
		return append(dst, tokenEnd)
	}
	panic(fmt.Sprintf("bencode: cannot encode %T", v))
}

func appendString(dst, s []byte) []byte {
	dst = strconv.AppendInt(dst, int64(len(s)), 10)
	dst = append(dst, tokenSeparator)
	return append(dst, s...)
}
