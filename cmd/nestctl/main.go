// Package main implements nestctl, a command-line front end for the query extractor.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/config"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/model"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/service"
)

var version = "dev"

// exitMissingAnchor is returned when the message names no place to commute to
const exitMissingAnchor = 2

func main() {
	err := newRootCmd().Execute()
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingAnchor):
		os.Exit(exitMissingAnchor)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nestctl",
		Short: "Turn apartment-search messages into search specs",
		Long: `nestctl runs the Nestfinder query extractor locally.

Extraction defaults are read from the environment (and .env) the same way the
server reads them, so both produce identical specs for the same message.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(), newCatalogCmd())
	return root
}

func newExtractCmd() *cobra.Command {
	var pinned bool

	cmd := &cobra.Command{
		Use:   "extract [--pinned] <message...>",
		Short: "Extract a search spec from a message",
		Long: `Extract a search spec from a free-form apartment-search message.

The spec is printed as JSON. When the message has no work or study location and
--pinned is not set, a prompt is printed instead and the command exits with code 2.

Examples:
  nestctl extract "1 bed under \$2100 near downtown, quiet area"
  nestctl extract --pinned cheap place with a short bike ride`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			extractor := service.NewExtractor(cfg.Extraction)
			return runExtract(cmd.OutOrStdout(), extractor, strings.Join(args, " "), pinned)
		},
	}
	cmd.Flags().BoolVar(&pinned, "pinned", false, "treat the message as having a pinned map location")
	return cmd
}

func runExtract(out io.Writer, extractor *service.Extractor, message string, pinned bool) error {
	spec, err := extractor.Extract(message, pinned)
	if errors.Is(err, service.ErrMissingAnchor) {
		fmt.Fprintln(out, service.MissingAnchorPrompt)
		return err
	}
	if err != nil {
		return err
	}
	return writeJSON(out, spec)
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the recognised priorities and transport modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), map[string][]model.CatalogEntry{
				"priorities":      model.Priorities,
				"transport_modes": model.TransportModes,
			})
		},
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
