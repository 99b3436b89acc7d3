package integration

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/WendelHime/gotorrent/internal/bencode"
	"github.com/WendelHime/gotorrent/internal/decoder"
	"github.com/WendelHime/gotorrent/internal/shared/models"
	"github.com/cucumber/godog"
)

var errorsByName = map[string]error{
	"unrecognized token":      bencode.ErrUnrecognizedToken,
	"malformed integer":       bencode.ErrMalformedInteger,
	"malformed length":        bencode.ErrMalformedLength,
	"truncated string":        bencode.ErrTruncatedString,
	"non string key":          bencode.ErrNonStringKey,
	"missing value":           bencode.ErrMissingValue,
	"unterminated collection": bencode.ErrUnterminatedCollection,
	"missing field":           decoder.ErrMissingField,
	"missing layout":          decoder.ErrMissingLayout,
	"ambiguous layout":        decoder.ErrAmbiguousLayout,
	"invalid hash length":     decoder.ErrInvalidHashLength,
	"empty path":              decoder.ErrEmptyPath,
	"invalid field type":      decoder.ErrFieldType,
}

type IntegrationTest struct {
	Decoder decoder.MetafileDecoder

	input   []byte
	value   bencode.Value
	rest    []byte
	torrent models.Torrent
	err     error
}

func (i *IntegrationTest) theBencodedValue(input string) error {
	i.input = []byte(input)
	return nil
}

func (i *IntegrationTest) iDecodeTheValue() error {
	i.value, i.rest, i.err = bencode.Decode(i.input)
	return nil
}

func (i *IntegrationTest) theJSONOutputShouldBe(expected string) error {
	if i.err != nil {
		return fmt.Errorf("decoding failed: %w", i.err)
	}
	out, err := bencode.RenderJSON(i.value)
	if err != nil {
		return err
	}
	if string(out) != expected {
		return fmt.Errorf("expected %s, got %s", expected, out)
	}
	return nil
}

func (i *IntegrationTest) nothingShouldRemain() error {
	return i.shouldRemain("")
}

func (i *IntegrationTest) shouldRemain(expected string) error {
	if string(i.rest) != expected {
		return fmt.Errorf("expected remainder %q, got %q", expected, i.rest)
	}
	return nil
}

func (i *IntegrationTest) shouldFailWith(name string) error {
	target, ok := errorsByName[name]
	if !ok {
		return fmt.Errorf("unknown error %q", name)
	}
	if !errors.Is(i.err, target) {
		return fmt.Errorf("expected error %q, got %v", name, i.err)
	}
	return nil
}

func (i *IntegrationTest) iHaveATorrentFile(torrentPath string) error {
	data, err := os.ReadFile(torrentPath)
	if err != nil {
		return err
	}
	i.input = data
	return nil
}

func (i *IntegrationTest) aTorrentWhoseInfoDictionaryIs(info string) error {
	i.input = []byte("d8:announce26:http://tracker.example.com4:info" + info + "e")
	return nil
}

func (i *IntegrationTest) iReadTheTorrent() error {
	i.torrent, i.err = i.Decoder.Decode(i.input)
	return nil
}

func (i *IntegrationTest) theTrackerURLShouldBe(expected string) error {
	if i.err != nil {
		return fmt.Errorf("reading failed: %w", i.err)
	}
	if i.torrent.Announce != expected {
		return fmt.Errorf("expected tracker %q, got %q", expected, i.torrent.Announce)
	}
	return nil
}

func (i *IntegrationTest) theNameShouldBe(expected string) error {
	if i.torrent.Info.Name != expected {
		return fmt.Errorf("expected name %q, got %q", expected, i.torrent.Info.Name)
	}
	return nil
}

func (i *IntegrationTest) theLayoutShouldBeASingleFile(length int) error {
	layout, ok := i.torrent.Info.Layout.(models.SingleFile)
	if !ok {
		return fmt.Errorf("expected a single file layout, got %T", i.torrent.Info.Layout)
	}
	if layout.Length != uint64(length) {
		return fmt.Errorf("expected length %d, got %d", length, layout.Length)
	}
	return nil
}

func (i *IntegrationTest) theLayoutShouldBeFiles(count, total int) error {
	layout, ok := i.torrent.Info.Layout.(models.MultiFile)
	if !ok {
		return fmt.Errorf("expected a multi file layout, got %T", i.torrent.Info.Layout)
	}
	if len(layout.Files) != count {
		return fmt.Errorf("expected %d files, got %d", count, len(layout.Files))
	}
	if layout.TotalLength() != uint64(total) {
		return fmt.Errorf("expected %d bytes, got %d", total, layout.TotalLength())
	}
	return nil
}

func (i *IntegrationTest) theTorrentShouldHavePieceHashes(count int) error {
	if i.torrent.Info.PieceCount() != count {
		return fmt.Errorf("expected %d piece hashes, got %d", count, i.torrent.Info.PieceCount())
	}
	return nil
}

func (i *IntegrationTest) theInfoHashShouldBe(expected string) error {
	if i.torrent.InfoHash.String() != expected {
		return fmt.Errorf("expected info hash %s, got %s", expected, i.torrent.InfoHash)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	i := &IntegrationTest{
		Decoder: decoder.NewDecoder(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	ctx.Step(`^the bencoded value "([^"]*)"$`, i.theBencodedValue)
	ctx.Step(`^I decode the value$`, i.iDecodeTheValue)
	ctx.Step(`^the JSON output should be '(.*)'$`, i.theJSONOutputShouldBe)
	ctx.Step(`^nothing should remain after the value$`, i.nothingShouldRemain)
	ctx.Step(`^"([^"]*)" should remain after the value$`, i.shouldRemain)
	ctx.Step(`^(?:decoding|reading) should fail with "([^"]*)"$`, i.shouldFailWith)
	ctx.Step(`^I have a torrent file "([^"]*)"$`, i.iHaveATorrentFile)
	ctx.Step(`^a torrent whose info dictionary is "([^"]*)"$`, i.aTorrentWhoseInfoDictionaryIs)
	ctx.Step(`^I read the torrent$`, i.iReadTheTorrent)
	ctx.Step(`^the tracker URL should be "([^"]*)"$`, i.theTrackerURLShouldBe)
	ctx.Step(`^the name should be "([^"]*)"$`, i.theNameShouldBe)
	ctx.Step(`^the layout should be a single file of (\d+) bytes$`, i.theLayoutShouldBeASingleFile)
	ctx.Step(`^the layout should be (\d+) files totalling (\d+) bytes$`, i.theLayoutShouldBeFiles)
	ctx.Step(`^the torrent should have (\d+) piece hashes$`, i.theTorrentShouldHavePieceHashes)
	ctx.Step(`^the info hash should be "([^"]*)"$`, i.theInfoHashShouldBe)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t, // Testing instance that will run subtests.
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
