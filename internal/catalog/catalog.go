// internal/catalog/catalog.go
package catalog

import (
	"fmt"
	"strings"

	"blindspot-workers/internal/models"
)

// Catalog bundles every static table the rule engines consult. Workers
// take a *Catalog so tests can substitute trimmed tables.
type Catalog struct {
	// Catalog-mode competitor tables, keyed by platform and industry.
	PlatformCompetitors map[string][]models.Competitor
	IndustryCompetitors map[string][]models.Competitor
	HiddenCompetitors   []models.Competitor

	// Historical failure catalog plus the human labels for its tags.
	Failures      []models.FailedStartup
	PatternLabels map[string]string

	// Live-mode fallbacks used when an external lookup degrades.
	FallbackCompetitors map[string][]models.Competitor
	FallbackFailures    map[string][]models.FailedStartup

	// Static per-platform risk signals appended to dependency checks.
	PlatformSignals map[string][]models.RiskSignal
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		PlatformCompetitors: platformCompetitors(),
		IndustryCompetitors: industryCompetitors(),
		HiddenCompetitors:   hiddenCompetitors(),
		Failures:            failureCatalog(),
		PatternLabels:       patternLabels(),
		FallbackCompetitors: fallbackCompetitors(),
		FallbackFailures:    fallbackFailures(),
		PlatformSignals:     platformSignals(),
	}
}

func normalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// FallbackCompetitorsFor returns the per-industry fallback list, or the
// four generic archetypes when the industry is unknown.
func (c *Catalog) FallbackCompetitorsFor(industry string) []models.Competitor {
	if comps, ok := c.FallbackCompetitors[normalizeKey(industry)]; ok {
		return cloneCompetitors(comps)
	}
	return genericCompetitors(industry)
}

// FallbackFailuresFor returns the per-industry fallback list, or the
// generic failures when the industry is unknown.
func (c *Catalog) FallbackFailuresFor(industry string) []models.FailedStartup {
	if fails, ok := c.FallbackFailures[normalizeKey(industry)]; ok {
		return cloneFailures(fails)
	}
	return genericFailures()
}

// SignalsForPlatform returns the static risk signals for a platform,
// defaulting to web for unknown values.
func (c *Catalog) SignalsForPlatform(platform string) []models.RiskSignal {
	if signals, ok := c.PlatformSignals[strings.ToLower(platform)]; ok {
		return append([]models.RiskSignal(nil), signals...)
	}
	return append([]models.RiskSignal(nil), c.PlatformSignals[models.PlatformWeb]...)
}

func cloneCompetitors(in []models.Competitor) []models.Competitor {
	return append([]models.Competitor(nil), in...)
}

func cloneFailures(in []models.FailedStartup) []models.FailedStartup {
	out := make([]models.FailedStartup, len(in))
	for i, f := range in {
		out[i] = f
		out[i].FailureReasons = append([]string(nil), f.FailureReasons...)
		out[i].PatternTags = append([]string(nil), f.PatternTags...)
	}
	return out
}

func genericCompetitors(industry string) []models.Competitor {
	return []models.Competitor{
		{
			Name:              "Established Incumbent",
			URL:               "#",
			Description:       fmt.Sprintf("Major player in the %s space with significant market share", industry),
			Type:              "direct",
			Threat:            "high",
			ThreatDescription: "Market presence and resources pose significant threat",
		},
		{
			Name:              "Venture-backed Startup",
			URL:               "#",
			Description:       "Well-funded startup pursuing similar opportunity",
			Type:              "direct",
			Threat:            "medium",
			ThreatDescription: "Aggressive growth strategy with strong funding",
		},
		{
			Name:              "Tech Giant Initiative",
			URL:               "#",
			Description:       "Big tech company exploring this space",
			Type:              "indirect",
			Threat:            "medium",
			ThreatDescription: "Unlimited resources if they decide to prioritize",
		},
		{
			Name:              "International Player",
			URL:               "#",
			Description:       "Successful company from another market expanding globally",
			Type:              "indirect",
			Threat:            "low",
			ThreatDescription: "May enter your market with proven playbook",
		},
	}
}

func genericFailures() []models.FailedStartup {
	return []models.FailedStartup{
		{
			Name:           "Generic Startup A",
			Year:           2022,
			Raised:         "$5M",
			Reason:         "Failed to achieve product-market fit before running out of runway",
			FailureReasons: []string{"No PMF", "Ran out of funding"},
			PatternTags:    []string{"Startup", "Seed Stage"},
			Lesson:         "Talk to users early and often - validate before building",
			Similarity:     50,
			Source:         "CB Insights",
		},
		{
			Name:           "Generic Startup B",
			Year:           2021,
			Reason:         "Ran out of runway before generating meaningful revenue",
			FailureReasons: []string{"Burn rate", "Slow revenue growth"},
			PatternTags:    []string{"Startup", "Series A"},
			Lesson:         "Monitor burn rate carefully - default alive > default dead",
			Similarity:     45,
			Source:         "Startup Graveyard",
		},
		{
			Name:           "Generic Startup C",
			Year:           2023,
			Reason:         "Competition from well-funded incumbents",
			FailureReasons: []string{"Competition", "Distribution disadvantage"},
			PatternTags:    []string{"Startup", "Competitive Market"},
			Lesson:         "Find an unfair advantage or niche before going broad",
			Similarity:     40,
			Source:         "TechCrunch",
		},
	}
}
