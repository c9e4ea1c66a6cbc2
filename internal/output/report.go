package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leasecalc/lease-economics/internal/domain"
	"gopkg.in/yaml.v3"
)

// allFormats is what the "all" pseudo-format writes
var allFormats = []string{"console", "csv", "detailed-csv", "termination-csv", "html", "json"}

// GenerateReport writes results in the named format (or "all") into dir and
// returns the paths written.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, name := range allFormats {
			p, err := WriteFormatted(GetFormatterByName(name), results, dir, FileExtension(name))
			if err != nil {
				return paths, fmt.Errorf("write %s report: %w", name, err)
			}
			paths = append(paths, p)
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	p, err := WriteFormatted(f, results, dir, FileExtension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{p}, nil
}

// SaveConfiguration writes a configuration as JSON when the filename ends in
// .json and as YAML otherwise.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	var (
		b   []byte
		err error
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		b, err = json.MarshalIndent(config, "", "  ")
	} else {
		b, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}
