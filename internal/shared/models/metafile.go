package models

// Torrent is a decoded metainfo file.
type Torrent struct {
	Announce     string
	AnnounceList [][]string
	Info         Info
	// InfoHash is the SHA-1 of the info dictionary exactly as it was encoded.
	InfoHash Hash
}

type Info struct {
	Name        string
	PieceLength uint64
	Pieces      HashList
	Layout      FileLayout
}

func (i Info) PieceCount() int {
	return len(i.Pieces)
}

// TotalLength is the size of the content once all files are concatenated.
func (i Info) TotalLength() uint64 {
	if i.Layout == nil {
		return 0
	}
	return i.Layout.TotalLength()
}

// FileLayout is either SingleFile or MultiFile.
type FileLayout interface {
	TotalLength() uint64
	isFileLayout()
}

type SingleFile struct {
	Length uint64
}

// MultiFile lists files in the order their bytes are concatenated for piece
// boundaries.
type MultiFile struct {
	Files []FileEntry
}

func (SingleFile) isFileLayout() {}
func (MultiFile) isFileLayout()  {}

func (s SingleFile) TotalLength() uint64 {
	return s.Length
}

func (m MultiFile) TotalLength() uint64 {
	var total uint64
	for _, f := range m.Files {
		total += f.Length
	}
	return total
}

type FileEntry struct {
	Length uint64
	// Path holds directory segments followed by the file name. It is never empty.
	Path []string
}
