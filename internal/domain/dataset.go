package domain

import (
	"fmt"
)

// FeatureMatrix is the model input for a batch of rows.
type FeatureMatrix struct {
	Names  []string
	Values [][]float64
}

func (m FeatureMatrix) Len() int {
	return len(m.Values)
}

// Dataset is a flat batch of rows, contiguous per query, with the
// ground-truth judgments kept in a parallel column.
type Dataset struct {
	FeatureNames []string
	Rows         []Row
	Judgments    []float64
}

func (d *Dataset) Len() int {
	return len(d.Rows)
}

func (d *Dataset) Validate() error {
	if len(d.Rows) == 0 {
		return fmt.Errorf("dataset has no rows")
	}
	if len(d.Judgments) != len(d.Rows) {
		return fmt.Errorf("dataset has %d rows but %d judgments", len(d.Rows), len(d.Judgments))
	}
	for i, r := range d.Rows {
		if len(r.Features) != len(d.FeatureNames) {
			return fmt.Errorf("row %d has %d features, expected %d", i, len(r.Features), len(d.FeatureNames))
		}
	}
	return nil
}

func (d *Dataset) QueryIDs() []string {
	ids := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		ids[i] = r.QueryID
	}
	return ids
}

func (d *Dataset) GroupCounts() []int {
	return GroupCounts(d.QueryIDs())
}


func (d *Dataset) Matrix() FeatureMatrix {
	values := make([][]float64, len(d.Rows))
	for i, r := range d.Rows {
		values[i] = r.Features
	}
	return FeatureMatrix{Names: d.FeatureNames, Values: values}
}

// SelectGroups returns the rows of the given query groups, in the order the
// groups are listed. Rows are shared with the receiver, not copied.
func (d *Dataset) SelectGroups(groups []int) (*Dataset, error) {
	counts := d.GroupCounts()
	offsets := make([]int, len(counts)+1)
	for i, c := range counts {
		offsets[i+1] = offsets[i] + c
	}

	out := &Dataset{FeatureNames: d.FeatureNames}
	for _, g := range groups {
		if g < 0 || g >= len(counts) {
			return nil, fmt.Errorf("group %d out of range [0, %d)", g, len(counts))
		}
		start, end := offsets[g], offsets[g+1]
		out.Rows = append(out.Rows, d.Rows[start:end]...)
		out.Judgments = append(out.Judgments, d.Judgments[start:end]...)
	}
	return out, nil
}
