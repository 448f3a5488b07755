package main

import (
	"io"
	"log"
	"os"

	"github.com/nvnieuwk/samsieve/samsieve_api"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New(os.Stderr, "", 0).Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "samsieve",
		Usage:           "Filter name-grouped read pairs of alignment files and report assembly statistics",
		HideHelpCommand: true,
		Version:         "0.1.0dev",
		Commands: []*cli.Command{
			filterCommand(),
			statsCommand(),
		},
	}
}

func filterCommand() *cli.Command {
	return &cli.Command{
		Name:      "filter",
		Usage:     "Keep read pairs passing the MAPQ, edit distance and duplicate filters",
		ArgsUsage: "[input]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "The input SAM (.sam, .gz) or BAM (.bam) file, sorted by read name or unsorted. Do NOT sort it by coordinate. Defaults to stdin",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "The location to the output SAM file, defaults to stdout",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Configuration file (YAML) holding the filter settings, flags on the command line take precedence",
				Category: "Optional",
			},
			&cli.IntFlag{
				Name:     "mapq",
				Aliases:  []string{"q"},
				Usage:    "MAPQ cutoff, read pairs with both MAPQ >= this value will be kept. Required unless set in the config file",
				Category: "Required",
				Action: func(c *cli.Context, value int) error {
					if value < 0 || value > 255 {
						return cli.Exit("Invalid MAPQ cutoff, must be in 0-255", 1)
					}
					return nil
				},
			},
			&cli.BoolFlag{
				Name:     "single-end-mapq-filtering",
				Aliases:  []string{"s"},
				Usage:    "Keep a read pair when either end has a MAPQ >= the cutoff",
				Category: "Filtering",
			},
			&cli.IntFlag{
				Name:     "nm",
				Usage:    "Edit distance cutoff, read pairs with a single-end NM >= this value will be removed",
				Category: "Filtering",
				Action: func(c *cli.Context, value int) error {
					if value < 0 {
						return cli.Exit("Invalid NM cutoff, must not be negative", 1)
					}
					return nil
				},
			},
			&cli.BoolFlag{
				Name:     "remove-dup",
				Aliases:  []string{"d"},
				Usage:    "Remove PCR duplicates. The duplicates should have been marked in the input (flag 1024)",
				Category: "Filtering",
			},
			&cli.BoolFlag{
				Name:     "remove-singletons",
				Aliases:  []string{"r"},
				Usage:    "Remove singletons instead of aborting when a read has no mate",
				Category: "Filtering",
			},
			&cli.IntFlag{
				Name:     "threads",
				Aliases:  []string{"t"},
				Usage:    "Threads for decompressing BAM and bgzipped input",
				Value:    8,
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "progress",
				Usage:    "Show the progress of reading the input file on stderr",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "summary",
				Usage:    "Log the number of kept and dropped pairs when done",
				Category: "Optional",
			},
		},
		Action: func(Cctx *cli.Context) error {
			config, err := samsieve_api.ReadFilterConfig(Cctx)
			if err != nil {
				return err
			}

			source, closeInput, err := samsieve_api.OpenAlignments(inputPath(Cctx), config, Cctx.Bool("progress"))
			if err != nil {
				return err
			}
			defer closeInput()

			output, closeOutput, err := openOutput(Cctx)
			if err != nil {
				return err
			}
			defer closeOutput()

			summary, err := samsieve_api.RunFilter(config, source, output)
			if Cctx.Bool("summary") {
				summary.Log()
			}
			return err
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Report base composition and contig/scaffold Nx statistics of a FASTA file",
		ArgsUsage: "[fasta]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "The input FASTA file (optionally gzipped), defaults to stdin",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "The location to the output report, defaults to stdout",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "progress",
				Usage:    "Show the progress of reading the input file on stderr",
				Category: "Optional",
			},
		},
		Action: func(Cctx *cli.Context) error {
			result, err := samsieve_api.FastaStatsFromPath(inputPath(Cctx), Cctx.Bool("progress"))
			if err != nil {
				return err
			}

			output, closeOutput, err := openOutput(Cctx)
			if err != nil {
				return err
			}
			defer closeOutput()

			return samsieve_api.WriteStatsReport(output, result)
		},
	}
}

// The input given with --input, or else as the first positional argument
func inputPath(Cctx *cli.Context) string {
	if input := Cctx.String("input"); input != "" {
		return input
	}
	return Cctx.Args().First()
}

// The file given with --output, or else the app's writer
func openOutput(Cctx *cli.Context) (io.Writer, func() error, error) {
	path := Cctx.String("output")
	if path == "" {
		return Cctx.App.Writer, func() error { return nil }, nil
	}
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, nil, cli.Exit("Failed to create the output file: "+err.Error(), 1)
	}
	return outputFile, outputFile.Close, nil
}
