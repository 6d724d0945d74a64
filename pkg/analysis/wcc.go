package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dd0wney/campus-contagion/pkg/graph"
)

// Student is one roster entry supplied by the data-loading layer,
// used to profile infection clusters.
type Student struct {
	ID             string `json:"id"`
	Cohort         string `json:"cohort"`
	EnrollmentYear int    `json:"enrollment_year"`
}

// SuperSpreader is a component member ranked by the number of direct
// infections attributed to it.
type SuperSpreader struct {
	ID         string `json:"id"`
	Infections int    `json:"infections"`
	Cohort     string `json:"cohort"`
}

// CohortCount is one cohort's share of a component.
type CohortCount struct {
	Cohort string `json:"cohort"`
	Count  int    `json:"count"`
}

// YearCount is one enrollment year's share of a component.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// ComponentProfile describes one infection cluster.
type ComponentProfile struct {
	Size           int             `json:"size"`
	Members        []string        `json:"members"`
	TopCohorts     []CohortCount   `json:"top_cohorts,omitempty"`
	TopYears       []YearCount     `json:"top_years,omitempty"`
	SuperSpreaders []SuperSpreader `json:"super_spreaders"`
}

// WCCResult is the weakly-connected-component decomposition of a
// propagation tree.
type WCCResult struct {
	Components    int                `json:"components"`
	Sizes         []int              `json:"sizes"`
	GiantSize     int                `json:"giant_size"`
	Fragmentation float64            `json:"fragmentation"`
	Profiles      []ComponentProfile `json:"profiles"`
}

// WCCAnalyzer partitions a propagation tree into weakly connected
// components, ignoring edge direction. When constructed with a roster
// each component is additionally profiled with cohort breakdowns and
// its top super-spreaders.
type WCCAnalyzer struct {
	roster map[string]Student
}

// NewWCCAnalyzer creates an analyzer. students may be nil, in which
// case components are sized but not profiled against the roster.
func NewWCCAnalyzer(students []Student) *WCCAnalyzer {
	var roster map[string]Student
	if students != nil {
		roster = make(map[string]Student, len(students))
		for _, s := range students {
			roster[s.ID] = s
		}
	}
	return &WCCAnalyzer{roster: roster}
}

// Name implements Analyzer.
func (a *WCCAnalyzer) Name() string {
	return "wcc"
}

// Analyze decomposes the tree into components sorted descending by
// size. An empty graph yields a zero-valued result.
func (a *WCCAnalyzer) Analyze(g *graph.Graph) (Result, error) {
	if g.NodeCount() == 0 {
		return &WCCResult{}, nil
	}

	components := graph.ConnectedComponents(g)
	sort.SliceStable(components, func(i, j int) bool {
		return len(components[i]) > len(components[j])
	})

	result := &WCCResult{
		Components: len(components),
		Sizes:      make([]int, 0, len(components)),
	}
	total := 0
	for _, c := range components {
		result.Sizes = append(result.Sizes, len(c))
		total += len(c)
		if len(c) > result.GiantSize {
			result.GiantSize = len(c)
		}
	}
	if total > 0 {
		result.Fragmentation = 1.0 - float64(result.GiantSize)/float64(total)
	}

	for _, c := range components {
		result.Profiles = append(result.Profiles, a.profileComponent(c, g))
	}

	return result, nil
}

// profileComponent summarises one component: sorted member ids, cohort
// and enrollment-year breakdowns when a roster is available, and the
// top-3 super-spreaders by out-degree within the induced subgraph.
// Members with zero attributed infections are never super-spreaders.
func (a *WCCAnalyzer) profileComponent(members []string, g *graph.Graph) ComponentProfile {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)

	profile := ComponentProfile{
		Size:    len(members),
		Members: sorted,
	}

	if a.roster != nil {
		cohorts := make(map[string]int)
		years := make(map[int]int)
		for _, id := range sorted {
			if s, ok := a.roster[id]; ok {
				cohorts[s.Cohort]++
				years[s.EnrollmentYear]++
			}
		}
		profile.TopCohorts = topCohorts(cohorts, 3)
		profile.TopYears = topYears(years, 3)
	}

	sub := g.Subgraph(sorted)
	type ranked struct {
		id     string
		degree int
	}
	spreaders := make([]ranked, 0, len(sorted))
	for _, id := range sorted {
		if d := sub.OutDegree(id); d > 0 {
			spreaders = append(spreaders, ranked{id: id, degree: d})
		}
	}
	sort.SliceStable(spreaders, func(i, j int) bool {
		return spreaders[i].degree > spreaders[j].degree
	})
	if len(spreaders) > 3 {
		spreaders = spreaders[:3]
	}
	profile.SuperSpreaders = make([]SuperSpreader, 0, len(spreaders))
	for _, s := range spreaders {
		cohort := ""
		if a.roster != nil {
			cohort = a.roster[s.id].Cohort
		}
		profile.SuperSpreaders = append(profile.SuperSpreaders, SuperSpreader{
			ID:         s.id,
			Infections: s.degree,
			Cohort:     cohort,
		})
	}

	return profile
}

func topCohorts(counts map[string]int, limit int) []CohortCount {
	out := make([]CohortCount, 0, len(counts))
	for cohort, count := range counts {
		out = append(out, CohortCount{Cohort: cohort, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Cohort < out[j].Cohort
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func topYears(counts map[int]int, limit int) []YearCount {
	out := make([]YearCount, 0, len(counts))
	for year, count := range counts {
		out = append(out, YearCount{Year: year, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Year < out[j].Year
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Metrics implements Result.
func (r *WCCResult) Metrics() map[string]any {
	topSizes := r.Sizes
	if len(topSizes) > 3 {
		topSizes = topSizes[:3]
	}

	// Top super-spreaders: up to two from each of the three largest
	// components, five overall.
	var spreaders []SuperSpreader
	for i, p := range r.Profiles {
		if i >= 3 {
			break
		}
		take := p.SuperSpreaders
		if len(take) > 2 {
			take = take[:2]
		}
		spreaders = append(spreaders, take...)
	}
	if len(spreaders) > 5 {
		spreaders = spreaders[:5]
	}

	return map[string]any{
		"num_components":       r.Components,
		"giant_component_size": r.GiantSize,
		"top_3_sizes":          topSizes,
		"fragmentation_index":  round4(r.Fragmentation),
		"super_spreaders":      spreaders,
	}
}

// Report implements Result.
func (r *WCCResult) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weakly connected component analysis\n")
	fmt.Fprintf(&b, "  Components: %d\n", r.Components)
	fmt.Fprintf(&b, "  Giant component: %d nodes\n", r.GiantSize)
	fmt.Fprintf(&b, "  Fragmentation index: %.3f\n", r.Fragmentation)
	for i, p := range r.Profiles {
		fmt.Fprintf(&b, "  Component %d (%d members)\n", i+1, p.Size)
		for _, s := range p.SuperSpreaders {
			fmt.Fprintf(&b, "    %s: %d infections (%s)\n", s.ID, s.Infections, s.Cohort)
		}
	}
	return b.String()
}
