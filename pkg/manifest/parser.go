// Package manifest parses donor record files for batch screening.
//
// A donor file holds one or more YAML documents (separated by ---), each
// describing a single donor:
//
//	name: donor-001
//	age: 30
//	gender: Female
//	weight: 65
//	weightUnit: kg
//	height: 165
//	heightUnit: cm
//	hemoglobin: 13.0
//	lastDonation: "2026-06-01"
//
// Parsing is purely structural; field-level validation (units, gender,
// dates) happens when a record is handed to donor.New.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dhaller/donorscreen/pkg/donor"
)

// ParseFile reads a YAML file at the given path and parses it into donor
// records.
func ParseFile(path string) ([]donor.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading donor file %s: %w", path, err)
	}
	records, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing donor file %s: %w", path, err)
	}
	return records, nil
}

// ParseBytes parses raw YAML bytes into donor records. Empty documents are
// skipped.
func ParseBytes(data []byte) ([]donor.Input, error) {
	var records []donor.Input

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node yaml.Node
		if err := decoder.Decode(&node); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("decoding yaml document: %w", err)
		}

		// Skip empty documents (e.g. a trailing ---).
		if node.Kind == 0 {
			continue
		}

		var rec donor.Input
		if err := node.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decoding donor record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}

	return records, nil
}
