package application

import (
	"math"
	"sort"
	"strings"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
)

// NoMajor is reported as the most common major when there are no registrations.
const NoMajor = "N/A"

// Stats are the dashboard aggregates over every registration.
type Stats struct {
	Total              int    `json:"total"`
	MostCommonMajor    string `json:"most_common_major"`
	BeginnerPercentage int    `json:"beginner_percentage"`
	FrontendGoals      int    `json:"frontend_goals"`
}

// ComputeStats derives Stats from regs. It does not modify regs.
func ComputeStats(regs []entity.Registration) Stats {
	st := Stats{Total: len(regs), MostCommonMajor: NoMajor}
	if len(regs) == 0 {
		return st
	}

	counts := make(map[string]int)
	var order []string
	beginners := 0
	for _, r := range regs {
		if _, seen := counts[r.Major]; !seen {
			order = append(order, r.Major)
		}
		counts[r.Major]++

		if containsAny(strings.ToLower(r.ProgrammingKnowledge), beginnerMarkers...) {
			beginners++
		}
		if containsAny(strings.ToLower(r.ProgrammingGoals), "front", "web design") {
			st.FrontendGoals++
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	st.MostCommonMajor = order[0]
	st.BeginnerPercentage = int(math.Floor(float64(beginners)*100/float64(len(regs)) + 0.5))
	return st
}
