package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/WendelHime/gotorrent/internal/bencode"
	"github.com/WendelHime/gotorrent/internal/decoder"
	"github.com/WendelHime/gotorrent/internal/shared/models"
	"github.com/schollz/progressbar/v3"
)

var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code: 2 for usage
// errors, 1 for any other failure.
func run(argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gotorrent", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var logLevel string
	var logFile string
	var maxDepth int
	fs.StringVar(&logLevel, "log-level", "error", "Specify the log level (debug, info, warn, error)")
	fs.StringVar(&logFile, "log-file", "", "Specify a file to write logs to instead of stderr")
	fs.IntVar(&maxDepth, "max-depth", bencode.DefaultMaxDepth, "Specify how deeply lists and dictionaries may nest")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n\tgotorrent [flags] decode <bencoded value>\n\tgotorrent [flags] info [-progress] <file.torrent>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logOut := stderr
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		return 2
	}

	opts := []bencode.Option{bencode.WithMaxDepth(maxDepth)}
	var err error
	switch args[0] {
	case "decode":
		err = runDecode(stdout, bencode.NewDecoder(opts...), args[1:])
	case "info":
		err = runInfo(stdout, decoder.NewDecoder(logger, opts...), args[1:])
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	if err != nil {
		logger.Error("command failed", slog.String("command", args[0]), slog.Any("error", err))
		fmt.Fprintln(stderr, "error:", err)
		if errors.Is(err, errUsage) {
			fs.Usage()
			return 2
		}
		return 1
	}
	return 0
}

// runDecode prints a bencoded value given on the command line as JSON.
func runDecode(w io.Writer, d *bencode.Decoder, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: decode takes exactly one value", errUsage)
	}

	v, _, err := d.Decode([]byte(args[0]))
	if err != nil {
		return err
	}
	out, err := bencode.RenderJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func runInfo(w io.Writer, d decoder.MetafileDecoder, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	progress := fs.Bool("progress", false, "Show a progress bar while reading the torrent file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: info takes exactly one torrent file", errUsage)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if *progress {
		stat, err := f.Stat()
		if err != nil {
			return err
		}
		bar := progressbar.DefaultBytes(stat.Size(), "reading "+filepath.Base(f.Name()))
		defer bar.Finish()
		r = io.TeeReader(f, bar)
	}

	torrent, err := d.DecodeReader(r)
	if err != nil {
		return err
	}
	return printInfo(w, torrent)
}

func printInfo(w io.Writer, torrent models.Torrent) error {
	fmt.Fprintf(w, "Tracker URL: %s\n", torrent.Announce)
	switch layout := torrent.Info.Layout.(type) {
	case models.SingleFile:
		fmt.Fprintf(w, "Length: %d\n", layout.Length)
	case models.MultiFile:
		fmt.Fprintf(w, "Length: %d\n", layout.TotalLength())
		for _, f := range layout.Files {
			fmt.Fprintf(w, "File: %s (%d)\n", filepath.Join(f.Path...), f.Length)
		}
	}
	fmt.Fprintf(w, "Info Hash: %s\n", torrent.InfoHash)
	fmt.Fprintf(w, "Piece Length: %d\n", torrent.Info.PieceLength)
	fmt.Fprintln(w, "Piece Hashes:")
	for _, h := range torrent.Info.Pieces {
		if _, err := fmt.Fprintln(w, h); err != nil {
			return err
		}
	}
	return nil
}
