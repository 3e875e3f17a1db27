// internal/catalog/signals.go
package catalog

import "blindspot-workers/internal/models"

func platformSignals() map[string][]models.RiskSignal {
	return map[string][]models.RiskSignal{
		models.PlatformApp: {
			{Type: "technical", Source: "Platform Analysis", Description: "App Store approval process can delay launches by 1-2 weeks", Impact: "negative"},
			{Type: "technical", Source: "Platform Analysis", Description: "Mobile-first approach aligns with current user behavior trends", Impact: "positive"},
			{Type: "execution", Source: "Platform Analysis", Description: "Requires development for both iOS and Android platforms", Impact: "negative"},
		},
		models.PlatformWeb: {
			{Type: "technical", Source: "Platform Analysis", Description: "Lower distribution barriers compared to app stores", Impact: "positive"},
			{Type: "technical", Source: "Platform Analysis", Description: "Browser compatibility requires ongoing maintenance", Impact: "neutral"},
			{Type: "market", Source: "Platform Analysis", Description: "SEO can provide organic acquisition channel", Impact: "positive"},
		},
		models.PlatformSaaS: {
			{Type: "market", Source: "Platform Analysis", Description: "Recurring revenue model provides predictable income", Impact: "positive"},
			{Type: "execution", Source: "Platform Analysis", Description: "Enterprise sales cycles can be 6-12 months", Impact: "negative"},
			{Type: "technical", Source: "Platform Analysis", Description: "Multi-tenancy architecture requires careful planning", Impact: "neutral"},
		},
		models.PlatformAPI: {
			{Type: "market", Source: "Platform Analysis", Description: "Developer-focused products benefit from word-of-mouth", Impact: "positive"},
			{Type: "technical", Source: "Platform Analysis", Description: "API stability and versioning expectations are high", Impact: "neutral"},
			{Type: "execution", Source: "Platform Analysis", Description: "Documentation and developer experience are critical", Impact: "neutral"},
		},
	}
}
