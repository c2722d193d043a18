package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log/slog"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/tgzmeta/pkg/pack"
	"github.com/tqbf/tgzmeta/pkg/paths"
	"github.com/tqbf/tgzmeta/pkg/tgz"
)

func packCmd() *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "build a publishable package tarball from a directory",
		ArgsUsage: "<dir> <out>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "prefix",
				Value: pack.DefaultPrefix,
				Usage: "root folder for archive members",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "exclude pattern (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "base64",
				Usage: "write base64 text instead of a binary .tgz",
			},
		},
		Action: packAction,
	}
}

func packAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: tgzmeta pack <dir> <out>")
	}
	dir := c.Args().Get(0)
	out := c.Args().Get(1)

	files, err := pack.ListFiles(
		dir, paths.WithDefaults(c.StringSlice("exclude")...),
	)
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}
	names := pack.FilePaths(files)
	if !slices.Contains(names, tgz.ManifestName) {
		return fmt.Errorf("no %s in %s", tgz.ManifestName, dir)
	}
	slog.Debug("packing",
		"dir", dir,
		"files", len(files),
		"size", pack.TotalSize(files),
	)

	var buf bytes.Buffer
	if _, err := pack.PackTar(dir, c.String("prefix"), names, &buf); err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	data := buf.Bytes()

	// Check the result the same way the registry will read it.
	archive := tgz.FromBytes(data)
	m, err := archive.Manifest()
	if err != nil {
		return err
	}
	if m.Name == nil {
		return fmt.Errorf("%s has no name", tgz.ManifestName)
	}

	if c.Bool("base64") {
		archive = tgz.FromBytes(
			[]byte(base64.StdEncoding.EncodeToString(data)),
		)
	}
	if err := archive.SaveToFile(out); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	shasum, integrity := pack.Digests(data)
	w := c.App.Writer
	fmt.Fprintf(w, "package:   %s\n", *m.Name)
	fmt.Fprintf(w, "files:     %d (%s)\n", len(files), humanBytes(pack.TotalSize(files)))
	fmt.Fprintf(w, "tarball:   %s (%s)\n", out, humanBytes(int64(len(data))))
	fmt.Fprintf(w, "shasum:    %s\n", shasum)
	fmt.Fprintf(w, "integrity: %s\n", integrity)
	return nil
}
