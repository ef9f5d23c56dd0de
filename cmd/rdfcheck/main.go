// Command rdfcheck validates bioimage.io resource description files.
//
//	rdfcheck validate rdf.yaml
//	rdfcheck validate --json --type model --format-version 0.4.2 rdf.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/load"
	"github.com/Tomaz-Vieira/spec-bioimage-io/registry"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cmd := &cli.Command{
		Name:  "rdfcheck",
		Usage: "Validate bioimage.io resource description files",
		Commands: []*cli.Command{
			validateCmd(logger),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error().Err(err).Msg("rdfcheck failed")
		os.Exit(1)
	}
}

func validateCmd(logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate a resource description file against its schema",
		ArgsUsage: "<file.yaml|file.json|->",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "Override the resource type instead of reading it from the document",
			},
			&cli.StringFlag{
				Name:  "format-version",
				Usage: "Override the format version instead of reading it from the document",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit the validation report as JSON on stdout",
			},
			&cli.BoolFlag{
				Name:  "fail-fast",
				Usage: "Stop at the first issue instead of collecting all of them",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New("missing input file (use - for stdin)")
			}
			doc, err := readDocument(path)
			if err != nil {
				return reportError(cmd, err)
			}

			reg := registry.NewDefault()
			var sv *registry.SchemaVersion
			if typ, fv := cmd.String("type"), cmd.String("format-version"); typ != "" || fv != "" {
				if typ == "" || fv == "" {
					return errors.New("--type and --format-version must be given together")
				}
				sv, err = reg.Resolve(typ, fv)
			} else {
				sv, err = reg.ResolveDocument(doc)
			}
			if err != nil {
				return reportError(cmd, err)
			}

			if cmd.Bool("fail-fast") {
				ctx = rdf.WithFailFast(ctx, true)
			}
			outcome := sv.Validate(ctx, doc)
			if outcome.Valid() {
				logger.Info().
					Str("type", sv.Type).
					Str("format_version", sv.FormatVersion).
					Msg("document is valid")
				if cmd.Bool("json") {
					return writeReport(os.Stdout, nil)
				}
				return nil
			}
			if cmd.Bool("json") {
				if err := writeReport(os.Stdout, outcome.Issues); err != nil {
					return err
				}
				return cli.Exit("", 1)
			}
			for _, iss := range outcome.Issues {
				logger.Error().
					Str("path", iss.Path).
					Str("code", iss.Code).
					Msg(iss.Message)
			}
			return cli.Exit(fmt.Sprintf("%d issue(s) found", len(outcome.Issues)), 1)
		},
	}
}

func readDocument(path string) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".json") {
		return load.JSON(data)
	}
	return load.YAML(data)
}

// reportError renders resolution and parse failures through the same JSON
// report as validation issues when --json is set.
func reportError(cmd *cli.Command, err error) error {
	if !cmd.Bool("json") {
		return err
	}
	var unknown *registry.UnknownSchemaError
	if errors.As(err, &unknown) {
		if werr := writeReport(os.Stdout, unknown.Issues()); werr != nil {
			return werr
		}
		return cli.Exit("", 1)
	}
	var iss rdf.Issues
	if errors.As(err, &iss) {
		if werr := writeReport(os.Stdout, iss); werr != nil {
			return werr
		}
		return cli.Exit("", 1)
	}
	return err
}

type report struct {
	Valid  bool       `json:"valid"`
	Issues rdf.Issues `json:"issues,omitempty"`
}

func writeReport(w io.Writer, issues rdf.Issues) error {
	enc := j.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report{Valid: len(issues) == 0, Issues: issues})
}
