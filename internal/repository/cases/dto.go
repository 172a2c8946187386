package cases

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tracknorth/casematch/internal/domain"
)

// recordFromRow maps a flat hash row to a case record.
//
// Schema convention: feature-vector columns are named <vectorPrefix><n> with
// 1-based integer suffixes (topic_1, topic_2, ...) and are assembled in
// numeric suffix order. Metadata columns default to empty strings when
// absent. A row whose vector columns fail to parse yields a vectorless
// record; the ranker skips those instead of failing the whole pool.
func recordFromRow(number string, fields map[string]string, vectorPrefix string) domain.CaseRecord {
	if n, ok := fields["case_number"]; ok && n != "" {
		number = n
	}

	meta := domain.Metadata{
		Title:           fields["title"],
		Resolution:      fields["resolution"],
		AssignmentGroup: fields["assignment_group"],
		CaseType:        fields["case_type"],
		Status:          fields["status"],
	}
	if meta.Title == "" {
		meta.Title = fields["description"]
	}

	return domain.NewCaseRecord(number, meta, vectorFromRow(fields, vectorPrefix))
}

// vectorFromRow extracts and orders the feature-vector columns.
// Returns nil when no vector columns exist or any of them is malformed.
func vectorFromRow(fields map[string]string, vectorPrefix string) domain.FeatureVector {
	type component struct {
		index int
		value float64
	}

	var components []component
	for k, v := range fields {
		suffix, ok := strings.CutPrefix(k, vectorPrefix)
		if !ok {
			continue
		}
		index, err := strconv.Atoi(suffix)
		if err != nil || index < 1 {
			continue
		}
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		components = append(components, component{index: index, value: value})
	}

	if len(components) == 0 {
		return nil
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i].index < components[j].index
	})

	vec := make(domain.FeatureVector, len(components))
	for i, c := range components {
		vec[i] = c.value
	}
	return vec
}
