package application

import "strings"

// Rule identifies which recommendation rule matched a registration.
type Rule string

const (
	RuleHTMLWithoutCSS Rule = "html_without_css"
	RuleHTMLAndCSS     Rule = "html_and_css"
	RuleBeginner       Rule = "beginner"
	RuleFrontendGoal   Rule = "frontend_goal"
	RuleBackendGoal    Rule = "backend_goal"
	RuleFullStackGoal  Rule = "fullstack_goal"
	RuleDefault        Rule = "default"
)

// RecommendationLabel is how the recommendation is presented to students.
const RecommendationLabel = "AI Assistant Recommendation"

var recommendations = map[Rule]string{
	RuleHTMLWithoutCSS: "Great! You know HTML. We recommend focusing on CSS next to style your web pages beautifully.",
	RuleHTMLAndCSS:     "Excellent foundation! Consider learning JavaScript next to add interactivity to your websites.",
	RuleBeginner:       "Perfect! This bootcamp is designed for beginners. Start with HTML basics and build from there.",
	RuleFrontendGoal:   "Front-end development is exciting! Focus on mastering HTML, CSS, and modern frameworks.",
	RuleBackendGoal:    "Back-end goals noted! While this bootcamp covers front-end, the fundamentals will help you everywhere.",
	RuleFullStackGoal:  "Full-stack ambitions! This bootcamp is the perfect first step on your comprehensive journey.",
	RuleDefault:        "Welcome to your coding journey! This bootcamp will give you a solid foundation in web development.",
}

var beginnerMarkers = []string{"beginner", "nothing", "zero"}

// MatchRule returns the first rule, in priority order, that applies.
// Matching is case-insensitive substring search.
func MatchRule(knowledge, goals string) Rule {
	k := strings.ToLower(knowledge)
	g := strings.ToLower(goals)

	hasHTML := strings.Contains(k, "html")
	hasCSS := strings.Contains(k, "css")
	switch {
	case hasHTML && !hasCSS:
		return RuleHTMLWithoutCSS
	case hasHTML && hasCSS:
		return RuleHTMLAndCSS
	case containsAny(k, beginnerMarkers...):
		return RuleBeginner
	case containsAny(g, "front", "frontend"):
		return RuleFrontendGoal
	case containsAny(g, "backend", "back-end"):
		return RuleBackendGoal
	case containsAny(g, "full stack", "fullstack"):
		return RuleFullStackGoal
	default:
		return RuleDefault
	}
}

// Recommend returns the canned recommendation for a student's knowledge and goals.
func Recommend(knowledge, goals string) string {
	return recommendations[MatchRule(knowledge, goals)]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
