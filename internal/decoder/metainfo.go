package decoder

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"log/slog"

	"github.com/WendelHime/gotorrent/internal/bencode"
	"github.com/WendelHime/gotorrent/internal/shared/models"
	zeebo "github.com/zeebo/bencode"
)

type MetafileDecoder interface {
	Decode(data []byte) (models.Torrent, error)
	DecodeReader(r io.Reader) (models.Torrent, error)
	DecodeValue(v bencode.Value) (models.Torrent, error)
}

type decoder struct {
	values *bencode.Decoder
	log    *slog.Logger
}

// NewDecoder returns a MetafileDecoder. opts configure the grammar pass, for
// example its nesting limit. A nil logger falls back to slog.Default().
func NewDecoder(logger *slog.Logger, opts ...bencode.Option) MetafileDecoder {
	if logger == nil {
		logger = slog.Default()
	}
	return decoder{values: bencode.NewDecoder(opts...), log: logger}
}

// serialization struct that represents the structure of a .torrent file
// it is not immediately usable, so it is converted to a models.Torrent
type bencodeTorrent struct {
	// URL of tracker server to get peers from
	Announce     string     `bencode:"announce"`
	AnnounceList [][]string `bencode:"announce-list"`
	// Info is kept raw so the info hash covers the bytes exactly as encoded
	Info zeebo.RawMessage `bencode:"info"`
}

// bencodeRawInfo only captures the info dictionary as it appears in the
// input; every other key is skipped.
type bencodeRawInfo struct {
	Info zeebo.RawMessage `bencode:"info"`
}

type bencodeInfo struct {
	Name        string        `bencode:"name"`
	PieceLength int64         `bencode:"piece length"`
	Pieces      string        `bencode:"pieces"`
	Length      int64         `bencode:"length"`
	Files       []bencodeFile `bencode:"files"`
}

type bencodeFile struct {
	Length int64    `bencode:"length"`
	Path   []string `bencode:"path"`
}

func (d decoder) Decode(data []byte) (models.Torrent, error) {
	torrent, err := d.decode(data)
	if err != nil {
		d.log.Error("failed to decode torrent", slog.Any("error", err))
		return models.Torrent{}, err
	}

	d.log.Debug("decoded torrent",
		slog.String("announce", torrent.Announce),
		slog.String("name", torrent.Info.Name),
		slog.String("info_hash", torrent.InfoHash.String()),
		slog.Int("pieces", torrent.Info.PieceCount()),
		slog.Any("torrent", torrent),
	)
	return torrent, nil
}

func (d decoder) DecodeReader(r io.Reader) (models.Torrent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		d.log.Error("failed to read torrent", slog.Any("error", err))
		return models.Torrent{}, fmt.Errorf("read torrent: %w", err)
	}
	return d.Decode(data)
}

// DecodeValue maps an already decoded tree. The info hash is computed over
// the re-encoded info dictionary. A tree holding nil nodes panics, as in
// bencode.Encode.
func (d decoder) DecodeValue(v bencode.Value) (models.Torrent, error) {
	return d.Decode(bencode.Encode(v))
}

func (d decoder) decode(data []byte) (models.Torrent, error) {
	root, err := d.values.Unmarshal(data)
	if err != nil {
		return models.Torrent{}, fmt.Errorf("decode torrent: %w", err)
	}

	layout, err := checkMetainfo(root)
	if err != nil {
		return models.Torrent{}, fmt.Errorf("invalid torrent: %w", err)
	}

	// Fields are read from the re-encoded tree, where repeated keys are
	// already collapsed to their last value.
	var bt bencodeTorrent
	if err := zeebo.NewDecoder(bytes.NewReader(bencode.Encode(root))).Decode(&bt); err != nil {
		return models.Torrent{}, fmt.Errorf("decode torrent fields: %w", err)
	}
	var raw bencodeRawInfo
	if err := zeebo.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return models.Torrent{}, fmt.Errorf("decode torrent info: %w", err)
	}
	var bi bencodeInfo
	if err := zeebo.NewDecoder(bytes.NewReader(bt.Info)).Decode(&bi); err != nil {
		return models.Torrent{}, fmt.Errorf("decode torrent info fields: %w", err)
	}

	pieces, err := DecodeHashList([]byte(bi.Pieces))
	if err != nil {
		return models.Torrent{}, fmt.Errorf("invalid torrent: %w", err)
	}

	return models.Torrent{
		Announce:     bt.Announce,
		AnnounceList: bt.AnnounceList,
		Info: models.Info{
			Name:        bi.Name,
			PieceLength: uint64(bi.PieceLength),
			Pieces:      pieces,
			Layout:      newLayout(layout, bi),
		},
		InfoHash: calculateInfoHash(raw.Info),
	}, nil
}

func newLayout(kind layoutKind, bi bencodeInfo) models.FileLayout {
	if kind == layoutSingleFile {
		return models.SingleFile{Length: uint64(bi.Length)}
	}

	files := make([]models.FileEntry, len(bi.Files))
	for i, f := range bi.Files {
		files[i] = models.FileEntry{Length: uint64(f.Length), Path: f.Path}
	}
	return models.MultiFile{Files: files}
}

func calculateInfoHash(info []byte) models.Hash {
	return sha1.Sum(info)
}
