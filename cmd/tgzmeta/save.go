package main

import (
	"bytes"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/tgzmeta/pkg/pack"
)

func saveCmd() *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "decode a package tarball and write it as a .tgz file",
		ArgsUsage: "<file> <dest>",
		Action:    saveAction,
	}
}

func saveAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: tgzmeta save <file> <dest>")
	}
	archive, err := readArchive(c, c.Args().Get(0))
	if err != nil {
		return err
	}
	dest := c.Args().Get(1)
	if err := archive.SaveToFile(dest); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Saved %s\n", dest)
	return nil
}

func unpackCmd() *cli.Command {
	return &cli.Command{
		Name:      "unpack",
		Usage:     "extract a package tarball into a directory",
		ArgsUsage: "<file> <dir>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strip",
				Value: true,
				Usage: "drop the archive's root folder (package/)",
			},
		},
		Action: unpackAction,
	}
}

func unpackAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: tgzmeta unpack <file> <dir>")
	}
	archive, err := readArchive(c, c.Args().Get(0))
	if err != nil {
		return err
	}
	data, err := archive.Bytes()
	if err != nil {
		return err
	}

	dir := c.Args().Get(1)
	n, err := pack.UnpackTar(
		bytes.NewReader(data), dir, c.Bool("strip"),
	)
	if err != nil {
		return fmt.Errorf("unpack: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Extracted %d files to %s\n", n, dir)
	return nil
}
