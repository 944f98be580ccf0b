package cli

// manifest.go loads the optional YAML run manifest. A manifest makes a
// validation run repeatable: the input, header layout, and output paths are
// checked into the repo next to the data instead of living in shell history.
// Flags given on the command line override manifest values.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes one validation run.
type Manifest struct {
	// Input is the path to the .xlsx or .csv file to validate.
	Input string `yaml:"input"`

	// HeaderRows is the number of leading rows to skip.
	HeaderRows *int `yaml:"header_rows,omitempty"`

	Output struct {
		// Workbook is the annotated .xlsx output path.
		Workbook string `yaml:"workbook,omitempty"`

		// FailedRows is the failed-rows .csv output path.
		FailedRows string `yaml:"failed_rows,omitempty"`

		// Summary is the JSON summary output path.
		Summary string `yaml:"summary,omitempty"`
	} `yaml:"output"`
}

// loadManifest reads and parses a run manifest.
func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest %s is not valid yaml: %w", path, err)
	}
	return &m, nil
}
