package match

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum similarity for a suggestion.
const DefaultThreshold = 0.75

// Suggest returns up to limit names from candidates whose simple name is
// similar to the simple name of target. Only candidates in the same package
// as target are considered. Results are ordered by descending similarity,
// then by name.
func Suggest(target string, candidates []string, limit int, threshold float64) []string {
	if limit <= 0 {
		return nil
	}

	pkg, simple := splitName(target)

	type scored struct {
		name  string
		score float64
	}

	var hits []scored

	for _, c := range candidates {
		if c == target {
			continue
		}

		cpkg, csimple := splitName(c)
		if cpkg != pkg {
			continue
		}

		score := LevenshteinNormalized(strings.ToLower(simple), strings.ToLower(csimple))
		if score >= threshold {
			hits = append(hits, scored{name: c, score: score})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}

		return hits[i].name < hits[j].name
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}

	return out
}

// PackageOf returns the package part of a dotted class name.
func PackageOf(name string) string {
	pkg, _ := splitName(name)
	return pkg
}

func splitName(name string) (string, string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", name
	}

	return name[:i], name[i+1:]
}
