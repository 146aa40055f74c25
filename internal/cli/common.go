package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rshade/meatmonitor/internal/config"
	"github.com/rshade/meatmonitor/internal/footprint"
	"github.com/rshade/meatmonitor/internal/logging"
)

// Output formats.
const (
	outputFormatTable  = config.FormatTable
	outputFormatJSON   = config.FormatJSON
	outputFormatNDJSON = config.FormatNDJSON
)

// validateOutputFormat rejects formats other than table, json and ndjson.
func validateOutputFormat(format string) error {
	switch format {
	case outputFormatTable, outputFormatJSON, outputFormatNDJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use table, json or ndjson)", format)
	}
}

// resolveDatasetPath prefers the flag value over the configured path.
func resolveDatasetPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return config.GetDatasetPath()
}

// loadRegistry loads reference data from path, or the embedded dataset when
// path is empty, and builds the country registry.
func loadRegistry(ctx context.Context, path string) (*footprint.ReferenceData, *footprint.Registry, error) {
	log := logging.FromContext(ctx)

	var (
		ref *footprint.ReferenceData
		err error
	)
	if path == "" {
		ref, err = footprint.LoadDefault()
	} else {
		ref, err = footprint.LoadFile(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading dataset: %w", err)
	}

	registry, err := footprint.BuildAll(ref)
	if err != nil {
		return nil, nil, fmt.Errorf("building countries: %w", err)
	}

	log.Debug().Ctx(ctx).
		Str("dataset", path).
		Int("countries", registry.Len()).
		Msg("reference data loaded")
	return ref, registry, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeNDJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
