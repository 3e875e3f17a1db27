// internal/catalog/failures.go
package catalog

import "blindspot-workers/internal/models"

// failureCatalog is the curated post-mortem set used for pattern
// matching in catalog mode.
func failureCatalog() []models.FailedStartup {
	return []models.FailedStartup{
		{
			Name:           "Quibi",
			Year:           2020,
			Raised:         "$1.75B",
			FailureReasons: []string{"Wrong timing (pandemic)", "Misread user behavior", "Too expensive content"},
			PatternTags:    []string{"timing_mismatch", "high_cac", "product_market_fit"},
		},
		{
			Name:           "MoviePass",
			Year:           2019,
			Raised:         "$68M",
			FailureReasons: []string{"Unsustainable unit economics", "Burned through cash", "No path to profitability"},
			PatternTags:    []string{"unit_economics", "cash_burn", "pricing_failure"},
		},
		{
			Name:           "Theranos",
			Year:           2018,
			Raised:         "$700M",
			FailureReasons: []string{"Technology didnt work", "Fraudulent claims", "No real product"},
			PatternTags:    []string{"technical_failure", "over_promise", "vaporware"},
		},
		{
			Name:           "WeWork",
			Year:           2019,
			Raised:         "$12B",
			FailureReasons: []string{"Overvaluation", "Governance issues", "Unsustainable growth model"},
			PatternTags:    []string{"unit_economics", "governance", "overexpansion"},
		},
		{
			Name:           "Homejoy",
			Year:           2015,
			Raised:         "$40M",
			FailureReasons: []string{"High CAC, low retention", "Worker classification issues", "Leakage to direct booking"},
			PatternTags:    []string{"high_cac", "low_retention", "marketplace_leakage"},
		},
		{
			Name:           "Fab.com",
			Year:           2015,
			Raised:         "$336M",
			FailureReasons: []string{"Pivoted too many times", "Lost product focus", "High burn rate"},
			PatternTags:    []string{"pivot_fatigue", "cash_burn", "product_market_fit"},
		},
		{
			Name:           "Jawbone",
			Year:           2017,
			Raised:         "$930M",
			FailureReasons: []string{"Hardware manufacturing issues", "Fierce competition from Fitbit/Apple", "Quality problems"},
			PatternTags:    []string{"technical_failure", "competition", "hardware_complexity"},
		},
		{
			Name:           "Yik Yak",
			Year:           2017,
			Raised:         "$73M",
			FailureReasons: []string{"Cyberbullying problems", "Lost college demographic", "Failed to grow beyond niche"},
			PatternTags:    []string{"distribution", "content_moderation", "niche_trap"},
		},
		{
			Name:           "Rdio",
			Year:           2015,
			Raised:         "$126M",
			FailureReasons: []string{"Lost to Spotify", "Couldnt match funding", "Slower feature development"},
			PatternTags:    []string{"competition", "funding_gap", "execution_speed"},
		},
		{
			Name:           "Secret",
			Year:           2015,
			Raised:         "$35M",
			FailureReasons: []string{"Anonymous social didnt scale", "Toxicity issues", "No retention"},
			PatternTags:    []string{"low_retention", "content_moderation", "social_dynamics"},
		},
		{
			Name:           "Beepi",
			Year:           2017,
			Raised:         "$149M",
			FailureReasons: []string{"High operational costs", "Complex logistics", "Thin margins"},
			PatternTags:    []string{"unit_economics", "operational_complexity", "thin_margins"},
		},
		{
			Name:           "ScaleFactor",
			Year:           2020,
			Raised:         "$100M",
			FailureReasons: []string{"Over-promised AI capabilities", "Required too much human labor", "Customer churn"},
			PatternTags:    []string{"over_promise", "ai_washing", "churn"},
		},
	}
}

func patternLabels() map[string]string {
	return map[string]string{
		"high_cac":               "High Customer Acquisition Cost",
		"low_retention":          "Low User Retention",
		"timing_mismatch":        "Timing Mismatch",
		"unit_economics":         "Broken Unit Economics",
		"cash_burn":              "Unsustainable Cash Burn",
		"product_market_fit":     "Poor Product-Market Fit",
		"technical_failure":      "Technical Failure",
		"over_promise":           "Over-promised Capabilities",
		"competition":            "Crushed by Competition",
		"marketplace_leakage":    "Marketplace Leakage",
		"operational_complexity": "Operational Complexity",
		"distribution":           "Weak Distribution",
		"governance":             "Governance Issues",
		"overexpansion":          "Over-expansion",
	}
}

func fallbackFailures() map[string][]models.FailedStartup {
	return map[string][]models.FailedStartup{
		"fintech": {
			{Name: "Digit", Year: 2023, Raised: "$118M", Reason: "Struggled with customer acquisition costs in competitive market", FailureReasons: []string{"High CAC", "Market competition"}, PatternTags: []string{"Fintech", "Consumer", "Savings"}, Lesson: "Unit economics must work before scaling acquisition", Similarity: 65, Source: "TechCrunch"},
			{Name: "Simple Bank", Year: 2021, Raised: "$27M", Reason: "Acquired by BBVA then shut down due to integration challenges", FailureReasons: []string{"Acquisition integration", "Strategic misalignment"}, PatternTags: []string{"Fintech", "Neobank", "B2C"}, Lesson: "Acquisition is not always the win it seems - maintain independence if possible", Similarity: 55, Source: "The Verge"},
			{Name: "Moven", Year: 2020, Raised: "$44M", Reason: "Pioneer in mobile banking but ran out of runway", FailureReasons: []string{"Ran out of funding", "Early to market"}, PatternTags: []string{"Fintech", "Mobile Banking", "Pioneer"}, Lesson: "Being first to market means educating customers - expensive and slow", Similarity: 50, Source: "Finextra"},
		},
		"healthtech": {
			{Name: "Theranos", Year: 2018, Raised: "$700M", Reason: "Technology never worked as claimed, fraudulent claims", FailureReasons: []string{"Technology failure", "Fraud"}, PatternTags: []string{"Healthtech", "Diagnostics", "Hardware"}, Lesson: "Validate core technology rigorously before making claims", Similarity: 40, Source: "WSJ"},
			{Name: "Pear Therapeutics", Year: 2023, Raised: "$134M", Reason: "Regulatory approval achieved but reimbursement challenges", FailureReasons: []string{"Reimbursement issues", "Sales challenges"}, PatternTags: []string{"Healthtech", "Digital Therapeutics", "FDA"}, Lesson: "Healthcare sales cycles and reimbursement are extremely complex", Similarity: 70, Source: "STAT News"},
		},
		"saas": {
			{Name: "Quibi", Year: 2020, Raised: "$1.75B", Reason: "Misread market demand for short-form premium content", FailureReasons: []string{"Product-market fit", "Timing"}, PatternTags: []string{"Media", "Streaming", "Mobile"}, Lesson: "Validate demand before massive investment - even with star founders", Similarity: 45, Source: "Variety"},
			{Name: "Katerra", Year: 2021, Raised: "$2B", Reason: "Construction tech startup failed to achieve promised efficiencies", FailureReasons: []string{"Operational challenges", "Overexpansion"}, PatternTags: []string{"Proptech", "Construction", "Vertically Integrated"}, Lesson: "Vertical integration is capital-intensive - validate before scaling", Similarity: 40, Source: "Bloomberg"},
		},
		"edtech": {
			{Name: "Udacity", Year: 2023, Raised: "$160M", Reason: "Struggled to compete after tech layoffs reduced demand", FailureReasons: []string{"Market timing", "Demand shift"}, PatternTags: []string{"Edtech", "Tech Skills", "Nanodegrees"}, Lesson: "B2B education is cyclical - diversify customer base", Similarity: 60, Source: "Business Insider"},
		},
		"ecommerce": {
			{Name: "Fab", Year: 2015, Raised: "$336M", Reason: "Scaled too fast, pivoted too often, burned cash", FailureReasons: []string{"Overexpansion", "Multiple pivots", "Burn rate"}, PatternTags: []string{"Ecommerce", "Flash Sales", "Design"}, Lesson: "Focus and discipline matter more than growth at all costs", Similarity: 50, Source: "Fast Company"},
		},
		"ai": {
			{Name: "Anki", Year: 2019, Raised: "$200M", Reason: "Consumer robotics company failed to reach profitability", FailureReasons: []string{"Consumer hardware margins", "Funding gap"}, PatternTags: []string{"AI", "Robotics", "Consumer"}, Lesson: "Consumer hardware is brutal - software margins are much better", Similarity: 55, Source: "The Verge"},
		},
	}
}
