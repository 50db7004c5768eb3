// Package report handles the run's file surfaces: the prospects CSV
// input and the research/pitch/manifest outputs.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lifelegallysingle/prswarm/internal/schema"
)

// ReadProspectsCSV reads the input file. Required columns are "name"
// and "publication"; "keywords" is optional and semicolon-separated.
// Rows without a name are skipped. Extra columns are ignored.
func ReadProspectsCSV(r io.Reader) ([]schema.Prospect, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"name", "publication"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	get := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var prospects []schema.Prospect
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return prospects, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		p := schema.NewProspect(get(rec, "name"), get(rec, "publication"), get(rec, "keywords"))
		if p.Name == "" {
			continue
		}
		prospects = append(prospects, p)
	}
}
