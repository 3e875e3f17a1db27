// internal/catalog/competitors.go
package catalog

import "blindspot-workers/internal/models"

func platformCompetitors() map[string][]models.Competitor {
	return map[string][]models.Competitor{
		models.PlatformSaaS: {
			{Name: "Notion", Description: "All-in-one workspace for notes, docs, and collaboration", Threat: "high"},
			{Name: "Airtable", Description: "Flexible database and project management", Threat: "high"},
			{Name: "Monday.com", Description: "Work OS for team collaboration", Threat: "medium"},
			{Name: "Slack", Description: "Business communication platform", Threat: "medium"},
		},
		models.PlatformApp: {
			{Name: "Existing Mobile Apps", Description: "Established apps with loyal user bases", Threat: "high"},
			{Name: "Super Apps", Description: "WeChat, Grab, Gojek that bundle services", Threat: "high"},
			{Name: "Progressive Web Apps", Description: "Web apps that work like native", Threat: "medium"},
		},
		models.PlatformWeb: {
			{Name: "Google Suite", Description: "Docs, Sheets, Slides - free and integrated", Threat: "high"},
			{Name: "Microsoft 365", Description: "Enterprise productivity suite", Threat: "high"},
			{Name: "Canva", Description: "Design and content creation platform", Threat: "medium"},
		},
		models.PlatformAPI: {
			{Name: "Twilio", Description: "Communication APIs", Threat: "high"},
			{Name: "Stripe", Description: "Payment processing APIs", Threat: "high"},
			{Name: "OpenAI API", Description: "AI and ML APIs", Threat: "high"},
			{Name: "AWS Services", Description: "Amazon Web Services APIs", Threat: "medium"},
		},
	}
}

func industryCompetitors() map[string][]models.Competitor {
	return map[string][]models.Competitor{
		"fintech": {
			{Name: "Stripe", Description: "Payment infrastructure", Threat: "high"},
			{Name: "PayPal", Description: "Digital payments", Threat: "high"},
			{Name: "Square", Description: "Financial services platform", Threat: "high"},
			{Name: "Plaid", Description: "Financial data APIs", Threat: "medium"},
			{Name: "Traditional Banks", Description: "Launching digital products", Threat: "medium"},
		},
		"healthtech": {
			{Name: "Epic Systems", Description: "Healthcare software", Threat: "high"},
			{Name: "Teladoc", Description: "Telehealth platform", Threat: "high"},
			{Name: "MyFitnessPal", Description: "Health tracking app", Threat: "medium"},
			{Name: "Hospital Systems", Description: "In-house digital solutions", Threat: "medium"},
		},
		"edtech": {
			{Name: "Coursera", Description: "Online learning platform", Threat: "high"},
			{Name: "Udemy", Description: "Course marketplace", Threat: "high"},
			{Name: "Khan Academy", Description: "Free educational content", Threat: "high"},
			{Name: "Duolingo", Description: "Language learning app", Threat: "medium"},
		},
		"ecommerce": {
			{Name: "Amazon", Description: "Everything store", Threat: "high"},
			{Name: "Shopify", Description: "E-commerce platform", Threat: "high"},
			{Name: "Alibaba", Description: "B2B and B2C marketplace", Threat: "high"},
			{Name: "Local Retailers", Description: "Going digital rapidly", Threat: "medium"},
		},
		"marketplace": {
			{Name: "Uber", Description: "Ride-hailing and delivery", Threat: "high"},
			{Name: "Airbnb", Description: "Accommodation marketplace", Threat: "high"},
			{Name: "Facebook Marketplace", Description: "Social commerce", Threat: "high"},
			{Name: "Craigslist", Description: "Classifieds platform", Threat: "medium"},
		},
		"social": {
			{Name: "Instagram", Description: "Photo and video sharing", Threat: "high"},
			{Name: "TikTok", Description: "Short-form video", Threat: "high"},
			{Name: "Twitter/X", Description: "Microblogging and news", Threat: "high"},
			{Name: "Discord", Description: "Community platform", Threat: "medium"},
			{Name: "LinkedIn", Description: "Professional networking", Threat: "medium"},
		},
		"productivity": {
			{Name: "Notion", Description: "All-in-one workspace", Threat: "high"},
			{Name: "Trello", Description: "Visual project management", Threat: "high"},
			{Name: "Asana", Description: "Work management platform", Threat: "high"},
			{Name: "Todoist", Description: "Task management", Threat: "medium"},
		},
		"ai": {
			{Name: "OpenAI/ChatGPT", Description: "AI assistants and APIs", Threat: "high"},
			{Name: "Google AI", Description: "Bard and ML tools", Threat: "high"},
			{Name: "Microsoft Copilot", Description: "AI integration across products", Threat: "high"},
			{Name: "Anthropic", Description: "Claude AI assistant", Threat: "medium"},
		},
	}
}

// The competitors founders forget about: spreadsheets and inertia.
func hiddenCompetitors() []models.Competitor {
	return []models.Competitor{
		{Name: "Excel/Google Sheets", Description: "The most dangerous competitor - people just use spreadsheets", Threat: "high"},
		{Name: "Email + Manual Process", Description: "Companies often stick with what works", Threat: "medium"},
		{Name: "WhatsApp Groups", Description: "Informal but effective coordination", Threat: "medium"},
		{Name: "Doing Nothing", Description: "Status quo is always a competitor", Threat: "high"},
	}
}

func fallbackCompetitors() map[string][]models.Competitor {
	return map[string][]models.Competitor{
		"fintech": {
			{Name: "Stripe", URL: "https://stripe.com", Description: "Payment processing infrastructure for the internet", Type: "indirect", Threat: "high", ThreatDescription: "Dominant payment infrastructure provider", Funding: "$2.2B", Founded: "2010"},
			{Name: "Square", URL: "https://squareup.com", Description: "Financial services and digital payments company", Type: "indirect", Threat: "high", ThreatDescription: "Expanding into multiple financial verticals", Funding: "Public", Founded: "2009"},
			{Name: "Plaid", URL: "https://plaid.com", Description: "Financial data connectivity platform", Type: "substitute", Threat: "medium", ThreatDescription: "Critical infrastructure for fintech apps", Funding: "$734M", Founded: "2013"},
			{Name: "Robinhood", URL: "https://robinhood.com", Description: "Commission-free investing platform", Type: "indirect", Threat: "medium", ThreatDescription: "Strong brand with retail investors", Funding: "Public", Founded: "2013"},
		},
		"healthtech": {
			{Name: "Teladoc", URL: "https://teladoc.com", Description: "Virtual healthcare services platform", Type: "direct", Threat: "high", ThreatDescription: "Market leader in telehealth", Funding: "Public", Founded: "2002"},
			{Name: "Headspace", URL: "https://headspace.com", Description: "Mental health and meditation app", Type: "indirect", Threat: "medium", ThreatDescription: "Strong brand in wellness space", Funding: "$215M", Founded: "2010"},
			{Name: "Ro", URL: "https://ro.co", Description: "Direct-to-patient healthcare company", Type: "direct", Threat: "high", ThreatDescription: "Fast-growing telehealth platform", Funding: "$876M", Founded: "2017"},
		},
		"saas": {
			{Name: "Notion", URL: "https://notion.so", Description: "All-in-one workspace for notes and docs", Type: "indirect", Threat: "medium", ThreatDescription: "Rapidly expanding feature set", Funding: "$343M", Founded: "2016"},
			{Name: "Airtable", URL: "https://airtable.com", Description: "Flexible database and spreadsheet hybrid", Type: "substitute", Threat: "medium", ThreatDescription: "Low-code tool adoption growing", Funding: "$1.4B", Founded: "2012"},
			{Name: "Monday.com", URL: "https://monday.com", Description: "Work operating system and project management", Type: "direct", Threat: "high", ThreatDescription: "Strong marketing and sales motion", Funding: "Public", Founded: "2012"},
		},
		"edtech": {
			{Name: "Coursera", URL: "https://coursera.org", Description: "Online learning platform with university courses", Type: "direct", Threat: "high", ThreatDescription: "Established partnerships with top universities", Funding: "Public", Founded: "2012"},
			{Name: "Duolingo", URL: "https://duolingo.com", Description: "Gamified language learning app", Type: "indirect", Threat: "medium", ThreatDescription: "Best-in-class gamification expertise", Funding: "Public", Founded: "2011"},
			{Name: "Udemy", URL: "https://udemy.com", Description: "Marketplace for online courses", Type: "direct", Threat: "high", ThreatDescription: "Massive course library and instructor base", Funding: "Public", Founded: "2010"},
		},
		"ecommerce": {
			{Name: "Shopify", URL: "https://shopify.com", Description: "E-commerce platform for online stores", Type: "direct", Threat: "high", ThreatDescription: "Dominant SMB e-commerce platform", Funding: "Public", Founded: "2006"},
			{Name: "BigCommerce", URL: "https://bigcommerce.com", Description: "Enterprise e-commerce platform", Type: "direct", Threat: "medium", ThreatDescription: "Strong enterprise features", Funding: "Public", Founded: "2009"},
		},
		"ai": {
			{Name: "OpenAI", URL: "https://openai.com", Description: "AI research and deployment company", Type: "indirect", Threat: "high", ThreatDescription: "Leading AI research with GPT models", Funding: "$11B+", Founded: "2015"},
			{Name: "Anthropic", URL: "https://anthropic.com", Description: "AI safety company building reliable AI", Type: "indirect", Threat: "high", ThreatDescription: "Strong focus on AI safety", Funding: "$1.5B+", Founded: "2021"},
			{Name: "Hugging Face", URL: "https://huggingface.co", Description: "Platform for ML models and datasets", Type: "substitute", Threat: "medium", ThreatDescription: "Open-source ML community leader", Funding: "$235M", Founded: "2016"},
		},
	}
}
