package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SendReadiness tallies human review labels from a pitch summary.
type SendReadiness struct {
	Labeled   int
	SendReady int
}

// Ratio is the send-ready share of labeled pitches.
func (s SendReadiness) Ratio() float64 {
	if s.Labeled == 0 {
		return 0
	}
	return float64(s.SendReady) / float64(s.Labeled)
}

// EvaluateSendReadiness reads a pitch summary CSV and counts the
// manual_label column: 1 means send-ready, 0 means needs work, blank
// rows have not been reviewed and are ignored. Any other value is an
// error so a typo never skews the metric silently.
func EvaluateSendReadiness(r io.Reader) (SendReadiness, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return SendReadiness{}, fmt.Errorf("read header: %w", err)
	}
	labelIdx := -1
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) == "manual_label" {
			labelIdx = i
			break
		}
	}
	if labelIdx < 0 {
		return SendReadiness{}, fmt.Errorf("missing required column %q", "manual_label")
	}

	var s SendReadiness
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return SendReadiness{}, fmt.Errorf("read row: %w", err)
		}
		if labelIdx >= len(rec) {
			continue
		}
		raw := strings.TrimSpace(rec[labelIdx])
		if raw == "" {
			continue
		}
		label, err := strconv.Atoi(raw)
		if err != nil || (label != 0 && label != 1) {
			return SendReadiness{}, fmt.Errorf("row %d: manual_label must be 0 or 1, got %q", row, raw)
		}
		s.Labeled++
		if label == 1 {
			s.SendReady++
		}
	}
}
