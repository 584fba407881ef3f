package domain

// Tier classifies an overall readiness percentage.
type Tier string

const (
	TierWellDeveloped    Tier = "well_developed"
	TierNeedsImprovement Tier = "needs_improvement"
	TierSignificantGaps  Tier = "significant_gaps"
)

// Message returns the user-facing summary for the tier.
func (t Tier) Message() string {
	switch t {
	case TierWellDeveloped:
		return "Your CX strategy is well-developed! Minor refinements needed."
	case TierNeedsImprovement:
		return "Some key areas need improvement."
	case TierSignificantGaps:
		return "Significant CX gaps exist. Address high-priority items first."
	default:
		return ""
	}
}

// Label returns a short human-readable tier name.
func (t Tier) Label() string {
	switch t {
	case TierWellDeveloped:
		return "well-developed"
	case TierNeedsImprovement:
		return "needs improvement in some areas"
	case TierSignificantGaps:
		return "significant gaps"
	default:
		return string(t)
	}
}
