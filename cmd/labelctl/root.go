package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ghuser/bomlabel/pkg/config"
	"github.com/ghuser/bomlabel/pkg/logger"
	appsvcs "github.com/ghuser/bomlabel/services/label/application/services"
	"github.com/ghuser/bomlabel/services/label/infrastructure/memory"
	"github.com/ghuser/bomlabel/services/label/infrastructure/sap"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type options struct {
	catalog  string
	format   string
	logLevel string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "labelctl",
		Short: "Compute nutrition, allergen and ingredient labels from product trees.",
		Long: `Compute nutrition, allergen and ingredient labels from product trees.

Items are read from the SAP Business One Service Layer configured through the
SAP_* environment variables, or from a YAML catalog with --catalog.

Examples:
  # Print the flattened bill of materials of an item
  labelctl explode 1000 --catalog catalog.yaml

  # Print the label of an item as YAML, reading from SAP
  labelctl label 1000 --format yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatJSON && opts.format != formatYAML {
				return fmt.Errorf("unsupported format %q, want %s or %s", opts.format, formatJSON, formatYAML)
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.catalog, "catalog", "", "read items and trees from this YAML catalog instead of SAP")
	flags.StringVarP(&opts.format, "format", "f", formatJSON, "output format: json or yaml")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(newExplodeCmd(opts), newLabelCmd(opts))
	return root
}

// labelService builds a LabelService over the catalog or SAP. Nothing is persisted.
func (o *options) labelService(stderr io.Writer) (*appsvcs.LabelService, error) {
	log := logger.NewWithWriter(stderr, o.logLevel)

	if o.catalog != "" {
		catalog, err := memory.LoadCatalogYAML(o.catalog)
		if err != nil {
			return nil, err
		}
		return appsvcs.NewFromLookups(catalog, catalog, 0, nil, nil, log), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if missing := cfg.MissingSAPSettings(); len(missing) > 0 {
		return nil, fmt.Errorf("no --catalog given and SAP is not configured: missing %v", missing)
	}
	client, err := sap.NewClient(sap.ConfigFromApp(cfg), log)
	if err != nil {
		return nil, err
	}
	return appsvcs.NewFromLookups(client, client, cfg.SAPFetchTimeout, nil, nil, log), nil
}

func (o *options) write(w io.Writer, v any) error {
	if o.format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
