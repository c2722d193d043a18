package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/tqbf/tgzmeta/pkg/clock"
	"github.com/tqbf/tgzmeta/pkg/meta"
	"github.com/tqbf/tgzmeta/pkg/tgz"
)

func metaCmd() *cli.Command {
	return &cli.Command{
		Name:      "meta",
		Usage:     "print the initial registry metadata for a package tarball",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "json",
				Usage: "output format (json or yaml)",
			},
			&cli.IntFlag{
				Name:  "indent",
				Value: 2,
				Usage: "indent width, 0 for compact json",
			},
		},
		Action: metaAction,
	}
}

func metaAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: tgzmeta meta <file>")
	}
	archive, err := readArchive(c, c.Args().Get(0))
	if err != nil {
		return err
	}

	doc, err := archive.Meta(clock.New())
	if err != nil {
		return err
	}
	return writeDocument(
		c.App.Writer, doc, c.String("format"), c.Int("indent"),
	)
}

func writeDocument(
	w io.Writer, doc *meta.Document, format string, indent int,
) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if indent > 0 {
			enc.SetIndent("", fmt.Sprintf("%*s", indent, ""))
		}
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if indent > 0 {
			enc.SetIndent(indent)
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}

func manifestCmd() *cli.Command {
	return &cli.Command{
		Name:      "manifest",
		Usage:     "print the package.json found in a package tarball",
		ArgsUsage: "<file>",
		Action:    manifestAction,
	}
}

func manifestAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: tgzmeta manifest <file>")
	}
	archive, err := readArchive(c, c.Args().Get(0))
	if err != nil {
		return err
	}

	text, err := archive.File(tgz.ManifestName)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, text)
	return nil
}
