// cmd_convert.go - Convert Command
// Hauptfunktionen: ConvertHandler, newConvertCmd
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/dominomaker/dominomaker/api"
	"github.com/dominomaker/dominomaker/domino"
	"github.com/dominomaker/dominomaker/envconfig"
)

// outputSuffix wird an den Dateinamen ohne Endung gehaengt
const outputSuffix = ".domino.jpg"

// conversion ist das Ergebnis fuer eine Eingabedatei
type conversion struct {
	path   string
	output string
	image  []byte
	rows   [][]string
	counts api.Counts
}

// converter wandelt Bytes lokal oder ueber den Server um
type converter func(ctx context.Context, data []byte, size domino.BoardSize) (*api.ConvertResponse, error)

// localConverter nutzt domino.Convert im eigenen Prozess
func localConverter(_ context.Context, data []byte, size domino.BoardSize) (*api.ConvertResponse, error) {
	result, err := domino.Convert(data, size)
	if err != nil {
		return nil, err
	}

	return &api.ConvertResponse{
		Image:  result.Image,
		Map:    result.Map,
		Counts: api.Counts{White: result.WhiteCount, Black: result.BlackCount},
	}, nil
}

// workers gibt die Anzahl paralleler Umwandlungen zurueck
func workers() int {
	if n := envconfig.Workers(); n > 0 {
		return int(n)
	}
	return runtime.NumCPU()
}

// ConvertHandler - Wandelt alle Dateien um und gibt die Stueckliste aus
func ConvertHandler(cmd *cobra.Command, args []string) error {
	width, err := cmd.Flags().GetUint32("width")
	if err != nil {
		return err
	}
	height, err := cmd.Flags().GetUint32("height")
	if err != nil {
		return err
	}

	size := domino.BoardSize{Columns: width, Rows: height}
	if err := size.Validate(); err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output")
	toStdout := outDir == "-"
	if toStdout {
		if len(args) != 1 {
			return errors.New("--output - requires exactly one input file")
		}
		if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errors.New("refusing to write JPEG data to a terminal, use --output DIR or redirect stdout")
		}
	}

	var outputs []string
	if !toStdout {
		if outputs, err = outputPaths(outDir, args); err != nil {
			return err
		}
	}

	convert := converter(localConverter)
	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return err
		}
		convert = client.Convert
	}

	results := make([]conversion, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers())
	for i, path := range args {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			resp, err := convert(ctx, data, size)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = conversion{
				path:   path,
				image:  resp.Image,
				rows:   resp.Map,
				counts: resp.Counts,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Mit "-" geht das Bild nach stdout, alles andere nach stderr
	report := cmd.OutOrStdout()
	if toStdout {
		report = cmd.ErrOrStderr()
		if _, err := cmd.OutOrStdout().Write(results[0].image); err != nil {
			return err
		}
	} else {
		for i := range results {
			if err := writeImage(outputs[i], results[i]); err != nil {
				return err
			}
			results[i].output = outputs[i]
		}
	}

	if showMap, _ := cmd.Flags().GetBool("map"); showMap {
		printMaps(report, results)
	}
	printParts(report, size, results)
	return nil
}

// outputPath gibt den Zielpfad neben der Eingabe oder in dir zurueck
func outputPath(dir, path string) string {
	if dir == "" {
		dir = filepath.Dir(path)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(dir, base+outputSuffix)
}

// outputPaths bestimmt alle Zielpfade und lehnt doppelte ab
func outputPaths(dir string, paths []string) ([]string, error) {
	outputs := make([]string, len(paths))
	seen := make(map[string]string, len(paths))
	for i, path := range paths {
		output := outputPath(dir, path)
		if prev, ok := seen[output]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, path, output)
		}
		seen[output] = path
		outputs[i] = output
	}
	return outputs, nil
}

// writeImage schreibt das JPEG nach output
func writeImage(output string, c conversion) error {
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}
	return os.WriteFile(output, c.image, 0o644)
}

// printParts gibt die Stueckliste als Tabelle aus
func printParts(w io.Writer, size domino.BoardSize, results []conversion) {
	var data [][]string
	var total api.Counts
	for _, r := range results {
		output := r.output
		if output == "" {
			output = "-"
		}
		data = append(data, []string{
			r.path,
			size.String(),
			strconv.FormatUint(uint64(r.counts.White), 10),
			strconv.FormatUint(uint64(r.counts.Black), 10),
			output,
		})
		total.White += r.counts.White
		total.Black += r.counts.Black
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"FILE", "BOARD", "WHITE", "BLACK", "OUTPUT"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	if len(results) > 1 {
		fmt.Fprintf(w, "\ntotal: %d white, %d black\n", total.White, total.Black)
	}
}

// printMaps gibt die Reihen jeder Datei aus, eine Zeile pro Reihe
func printMaps(w io.Writer, results []conversion) {
	for _, r := range results {
		fmt.Fprintf(w, "%s:\n", r.path)
		for i, row := range r.rows {
			fmt.Fprintf(w, "%4d  %s\n", i+1, strings.Join(row, " "))
		}
		fmt.Fprintln(w)
	}
}

// newConvertCmd - Erstellt den convert Command
func newConvertCmd() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert images into domino mosaics",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if remote, _ := cmd.Flags().GetBool("remote"); remote {
				return checkServerHeartbeat(cmd, args)
			}
			return nil
		},
		RunE: ConvertHandler,
	}

	convertCmd.Flags().Uint32P("width", "W", 0, "Board width in dominoes")
	convertCmd.Flags().Uint32P("height", "H", 0, "Board height in dominoes")
	convertCmd.Flags().StringP("output", "o", "", "Output directory, or - to write a single JPEG to stdout")
	convertCmd.Flags().Bool("remote", false, "Convert through a running dominomaker server")
	convertCmd.Flags().Bool("map", false, "Print the row map of each mosaic")
	convertCmd.MarkFlagRequired("width")  //nolint:errcheck
	convertCmd.MarkFlagRequired("height") //nolint:errcheck

	return convertCmd
}
