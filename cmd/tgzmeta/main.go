package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/tgzmeta/pkg/tgz"
)

const appVersion = "0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tgzmeta",
		Usage: "build npm registry metadata from package tarballs",
		Before: func(c *cli.Context) error {
			configureLogging(c.App.ErrWriter, c.Bool("verbose"))
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "encoding",
				Value:   "base64",
				EnvVars: []string{"TGZMETA_ENCODING"},
				Usage:   "transport encoding of input files (base64 or raw)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose output",
			},
		},
		Commands: []*cli.Command{
			metaCmd(),
			manifestCmd(),
			saveCmd(),
			unpackCmd(),
			packCmd(),
			{
				Name:  "version",
				Usage: "print version",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, appVersion)
					return nil
				},
			},
		},
	}
}

func configureLogging(w io.Writer, verbose bool) {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		}),
	))
}

// readArchive loads the archive named by path ("-" is stdin) according to
// the global --encoding flag. With raw encoding the file is a plain .tgz.
func readArchive(c *cli.Context, path string) (*tgz.Archive, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(c.App.Reader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	enc, err := tgz.ParseEncoding(c.String("encoding"))
	if err != nil {
		return nil, err
	}
	slog.Debug("read archive",
		"path", path,
		"encoding", enc,
		"size", len(data),
	)
	if enc == tgz.Base64 {
		return tgz.NewBase64(strings.Join(strings.Fields(string(data)), "")), nil
	}
	return tgz.FromBytes(data), nil
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf(
			"%.1f MB", float64(n)/(1<<20),
		)
	case n >= 1<<10:
		return fmt.Sprintf(
			"%.1f KB", float64(n)/(1<<10),
		)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
