// Package reports computes the dashboard aggregates over a filtered
// project view. Everything here is a pure function of its input slice so
// the contract can be tested without a database.
package reports

import (
	"sort"
	"strings"
	"time"

	"portfolio/models"
)

const (
	StateCompleted = "Completed"
	StateOngoing   = "Ongoing"

	// UnspecifiedPillar relabels a blank pillar for display only; the
	// stored value stays blank.
	UnspecifiedPillar = "(Unspecified)"
)

const isoDate = "2006-01-02"

// CompletionState collapses a free-text status to the binary completion
// state. "done", "complete" and "completed" (any case, padded or not)
// count as Completed; everything else, including blank, is Ongoing.
func CompletionState(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "done", "complete", "completed":
		return StateCompleted
	}
	return StateOngoing
}

// KPI carries the dashboard counter values.
type KPI struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	Ongoing         int `json:"ongoing"`
	DistinctPillars int `json:"distinct_pillars"`
}

func KPICounts(view []models.Project) KPI {
	kpi := KPI{Total: len(view)}
	pillars := map[string]bool{}

	for _, p := range view {
		if CompletionState(p.Status) == StateCompleted {
			kpi.Completed++
		} else {
			kpi.Ongoing++
		}
		if pillar := strings.TrimSpace(p.Pillar); pillar != "" {
			pillars[pillar] = true
		}
	}

	kpi.DistinctPillars = len(pillars)
	return kpi
}

// PillarStatusCount is one bar of the pillar/status breakdown chart.
type PillarStatusCount struct {
	Pillar string `json:"pillar"`
	State  string `json:"state"`
	Count  int    `json:"count"`
}

// PillarStatusBreakdown counts projects by (pillar, completion state).
// Output is ordered by pillar then state for stable rendering.
func PillarStatusBreakdown(view []models.Project) []PillarStatusCount {
	counts := map[[2]string]int{}
	for _, p := range view {
		key := [2]string{displayPillar(p.Pillar), CompletionState(p.Status)}
		counts[key]++
	}

	result := make([]PillarStatusCount, 0, len(counts))
	for key, count := range counts {
		result = append(result, PillarStatusCount{Pillar: key[0], State: key[1], Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Pillar != result[j].Pillar {
			return result[i].Pillar < result[j].Pillar
		}
		return result[i].State < result[j].State
	})
	return result
}

// TopNPerPillar returns, within each pillar group, the n most urgent
// projects: ascending by priority, ties broken by name. Groups appear in
// pillar order; blank pillars are relabeled for display.
func TopNPerPillar(view []models.Project, n int) []models.Project {
	if n <= 0 {
		return []models.Project{}
	}

	groups := map[string][]models.Project{}
	for _, p := range view {
		p.Pillar = displayPillar(p.Pillar)
		groups[p.Pillar] = append(groups[p.Pillar], p)
	}

	pillars := make([]string, 0, len(groups))
	for pillar := range groups {
		pillars = append(pillars, pillar)
	}
	sort.Strings(pillars)

	result := []models.Project{}
	for _, pillar := range pillars {
		group := groups[pillar]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Priority != group[j].Priority {
				return group[i].Priority < group[j].Priority
			}
			return group[i].Name < group[j].Name
		})
		if len(group) > n {
			group = group[:n]
		}
		result = append(result, group...)
	}
	return result
}

// RoadmapRow is one bar of the timeline view.
type RoadmapRow struct {
	Label    string    `json:"label"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Category string    `json:"category"`
}

// RoadmapRows keeps the projects where both dates parse and orders them by
// name for stable rendering.
func RoadmapRows(view []models.Project) []RoadmapRow {
	rows := []RoadmapRow{}
	for _, p := range view {
		start, err := time.Parse(isoDate, p.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(isoDate, p.DueDate)
		if err != nil {
			continue
		}
		rows = append(rows, RoadmapRow{
			Label:    p.Name,
			Start:    start,
			End:      end,
			Category: p.Pillar,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}

// YearOptions returns the sorted distinct calendar years in the view, on
// the chosen date basis ("start" or "due"). Unparseable dates contribute
// nothing.
func YearOptions(view []models.Project, basis string) []int {
	due := strings.EqualFold(strings.TrimSpace(basis), "due")

	set := map[int]bool{}
	for _, p := range view {
		value := p.StartDate
		if due {
			value = p.DueDate
		}
		if d, err := time.Parse(isoDate, value); err == nil {
			set[d.Year()] = true
		}
	}

	years := make([]int, 0, len(set))
	for year := range set {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func displayPillar(pillar string) string {
	if strings.TrimSpace(pillar) == "" {
		return UnspecifiedPillar
	}
	return pillar
}
