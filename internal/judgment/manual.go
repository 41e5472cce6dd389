package judgment

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"gopkg.in/yaml.v3"
)

// Template builds an annotation template with every document of the
// dataset left ungraded, one entry per query group.
func Template(ds *domain.Dataset) *JudgmentFile {
	jf := &JudgmentFile{Strategy: "manual"}

	for i, r := range ds.Rows {
		if i == 0 || r.QueryID != ds.Rows[i-1].QueryID {
			jf.Queries = append(jf.Queries, JudgmentEntry{QueryID: r.QueryID})
		}
		entry := &jf.Queries[len(jf.Queries)-1]
		entry.Docs = append(entry.Docs, GradedDoc{
			DocID: r.DocID,
			Title: r.Title,
			URL:   r.URL,
			Grade: Ungraded,
		})
	}
	return jf
}

func ExportForAnnotation(ds *domain.Dataset, outputPath string) error {
	data, err := yaml.Marshal(Template(ds))
	if err != nil {
		return fmt.Errorf("marshal judgment template: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write judgment template: %w", err)
	}
	return nil
}

func ImportAnnotations(path string) (*JudgmentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read judgment file: %w", err)
	}
	var jf JudgmentFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parse judgment file: %w", err)
	}
	return &jf, nil
}
