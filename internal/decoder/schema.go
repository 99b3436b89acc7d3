package decoder

import (
	"fmt"

	"github.com/WendelHime/gotorrent/internal/bencode"
)

type kind int

const (
	kindString kind = iota
	kindLength
	kindList
	kindDict
)

func (k kind) String() string {
	switch k {
	case kindString:
		return "a string"
	case kindLength:
		return "a non-negative integer"
	case kindList:
		return "a list"
	default:
		return "a dictionary"
	}
}

func (k kind) matches(v bencode.Value) bool {
	switch v := v.(type) {
	case bencode.ByteString:
		return k == kindString
	case bencode.Integer:
		return k == kindLength && v >= 0
	case bencode.List:
		return k == kindList
	case *bencode.Dict:
		return k == kindDict
	}
	return false
}

type field struct {
	key      string
	kind     kind
	required bool
}

var (
	torrentFields = []field{
		{key: "announce", kind: kindString, required: true},
		{key: "announce-list", kind: kindList},
		{key: "info", kind: kindDict, required: true},
	}
	infoFields = []field{
		{key: "name", kind: kindString, required: true},
		{key: "piece length", kind: kindLength, required: true},
		{key: "pieces", kind: kindString, required: true},
		{key: "length", kind: kindLength},
		{key: "files", kind: kindList},
	}
	fileFields = []field{
		{key: "length", kind: kindLength, required: true},
		{key: "path", kind: kindList, required: true},
	}
)

type layoutKind int

const (
	layoutSingleFile layoutKind = iota
	layoutMultiFile
)

// checkMetainfo verifies presence and type of every field the model reads and
// reports which file layout the info dictionary uses.
func checkMetainfo(root bencode.Value) (layoutKind, error) {
	d, ok := root.(*bencode.Dict)
	if !ok {
		return 0, ErrNotDictionary
	}
	if err := checkFields(d, "", torrentFields); err != nil {
		return 0, err
	}
	if v, ok := d.Get("announce-list"); ok {
		if err := checkAnnounceList(v.(bencode.List)); err != nil {
			return 0, err
		}
	}

	infoValue, _ := d.Get("info")
	info := infoValue.(*bencode.Dict)
	if err := checkFields(info, "info", infoFields); err != nil {
		return 0, err
	}

	_, hasLength := info.Get("length")
	files, hasFiles := info.Get("files")
	switch {
	case hasLength && hasFiles:
		return 0, ErrAmbiguousLayout
	case !hasLength && !hasFiles:
		return 0, ErrMissingLayout
	case hasLength:
		return layoutSingleFile, nil
	}

	for i, f := range files.(bencode.List) {
		if err := checkFile(f, fmt.Sprintf("info.files[%d]", i)); err != nil {
			return 0, err
		}
	}
	return layoutMultiFile, nil
}

func checkFields(d *bencode.Dict, prefix string, fields []field) error {
	for _, f := range fields {
		name := f.key
		if prefix != "" {
			name = prefix + "." + f.key
		}

		v, ok := d.Get(f.key)
		if !ok {
			if f.required {
				return &MissingFieldError{Field: name}
			}
			continue
		}
		if !f.kind.matches(v) {
			return &FieldTypeError{Field: name, Want: f.kind.String()}
		}
	}
	return nil
}

func checkAnnounceList(tiers bencode.List) error {
	for i, tier := range tiers {
		urls, ok := tier.(bencode.List)
		if !ok {
			return &FieldTypeError{Field: fmt.Sprintf("announce-list[%d]", i), Want: kindList.String()}
		}
		for j, u := range urls {
			if !kindString.matches(u) {
				return &FieldTypeError{Field: fmt.Sprintf("announce-list[%d][%d]", i, j), Want: kindString.String()}
			}
		}
	}
	return nil
}

func checkFile(v bencode.Value, name string) error {
	d, ok := v.(*bencode.Dict)
	if !ok {
		return &FieldTypeError{Field: name, Want: kindDict.String()}
	}
	if err := checkFields(d, name, fileFields); err != nil {
		return err
	}

	pathValue, _ := d.Get("path")
	path := pathValue.(bencode.List)
	if len(path) == 0 {
		return fmt.Errorf("%s.path: %w", name, ErrEmptyPath)
	}
	for i, segment := range path {
		if !kindString.matches(segment) {
			return &FieldTypeError{Field: fmt.Sprintf("%s.path[%d]", name, i), Want: kindString.String()}
		}
	}
	return nil
}
