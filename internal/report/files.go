package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lifelegallysingle/prswarm/internal/batch"
	"github.com/lifelegallysingle/prswarm/internal/schema"
)

// WritePitchMarkdown writes one accepted draft into dir as <slug>.md.
func WritePitchMarkdown(dir string, draft schema.PitchDraft) (string, error) {
	path := filepath.Join(dir, draft.Slug+".md")
	content := fmt.Sprintf("# %s\n\n%s\n", draft.SubjectLine, draft.Body)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write pitch %s: %w", path, err)
	}
	return path, nil
}

// WriteManifestJSON serializes the sealed manifest to path.
func WriteManifestJSON(path string, manifest *batch.RunManifest) error {
	data, err := json.MarshalIndent(manifest.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
