// internal/models/analysis.go
package models

// AnalysisMode selects which ruleset the pipeline runs.
type AnalysisMode string

const (
	ModeCatalog AnalysisMode = "catalog" // static rule tables only
	ModeLive    AnalysisMode = "live"    // external lookups feed the scoring
)

// Decision is the final verdict of an analysis.
type Decision string

const (
	DecisionBlock              Decision = "BLOCK"
	DecisionProceedWithCaution Decision = "PROCEED_WITH_CAUTION"
	DecisionConditionalGo      Decision = "CONDITIONAL_GO"
	DecisionGo                 Decision = "GO"
)

// Closed vocabularies of StartupInput. Unrecognized values fall back to
// the safe default branch of each rule table.
const (
	PlatformWeb  = "web"
	PlatformApp  = "app"
	PlatformSaaS = "saas"
	PlatformAPI  = "api"

	RevenueFree         = "free"
	RevenueFreemium     = "freemium"
	RevenueSubscription = "subscription"
	RevenueCommission   = "commission"
	RevenueOneTime      = "one_time"

	StageIdea       = "idea"
	StageMVP        = "mvp"
	StageEarlyUsers = "early_users"

	DependencyNone       = "none"
	DependencyAPI        = "api"
	DependencyPlatform   = "platform"
	DependencyRegulation = "regulation"
)

// StartupInput is the startup idea under evaluation.
type StartupInput struct {
	StartupName        string `json:"startupName"`
	Idea               string `json:"idea"`
	Industry           string `json:"industry"`
	Platform           string `json:"platform"`
	RevenueModel       string `json:"revenueModel"`
	Stage              string `json:"stage"`
	CriticalDependency string `json:"criticalDependency"`
	TargetUsers        string `json:"targetUsers"`
}

// Assumption is an unvalidated belief the idea depends on.
type Assumption struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Category   string `json:"category"`  // technical | market | execution
	Severity   string `json:"severity"`  // high | medium | low
	RiskLevel  string `json:"riskLevel"` // mirrors Severity in live mode
	Source     string `json:"source,omitempty"`
	Validated  bool   `json:"validated"`
	Confidence string `json:"confidence,omitempty"`
}

// RiskSignal is a single observation from an external source.
type RiskSignal struct {
	Type        string `json:"type"` // technical | market | execution
	Source      string `json:"source"`
	Description string `json:"description"`
	Impact      string `json:"impact"` // positive | negative | neutral
}

// RiskScore holds the three axis scores and their aggregate, all 0-100.
type RiskScore struct {
	Technical int          `json:"technical"`
	Market    int          `json:"market"`
	Execution int          `json:"execution"`
	Total     int          `json:"total"`
	Level     string       `json:"level"` // Low | Medium | High | Critical
	Signals   []RiskSignal `json:"signals,omitempty"`
}

// Competitor describes an existing player overlapping the idea.
type Competitor struct {
	Name              string `json:"name"`
	URL               string `json:"url,omitempty"`
	Description       string `json:"description,omitempty"`
	Type              string `json:"type,omitempty"` // direct | indirect | substitute | hidden
	Threat            string `json:"threat"`         // high | medium | low
	ThreatDescription string `json:"threatDescription,omitempty"`
	Funding           string `json:"funding,omitempty"`
	Founded           string `json:"founded,omitempty"`
}

// FailedStartup is a historical failure relevant to the idea.
type FailedStartup struct {
	Name           string   `json:"name"`
	Year           int      `json:"year"`
	Raised         string   `json:"raised,omitempty"`
	Reason         string   `json:"reason,omitempty"`
	FailureReasons []string `json:"failureReasons"`
	PatternTags    []string `json:"patternTags"`
	Lesson         string   `json:"lesson,omitempty"`
	Similarity     int      `json:"similarity,omitempty"` // 0-100
	Source         string   `json:"source,omitempty"`
}

// FailurePattern is a named pattern shared between the input and the
// failure catalog.
type FailurePattern struct {
	Tag     string `json:"tag"`
	Label   string `json:"label"`
	Matches int    `json:"matches"`
}

// MarketTrend summarizes search interest for one keyword.
type MarketTrend struct {
	Keyword        string   `json:"keyword"`
	Interest       int      `json:"interest"` // 0-100
	Trend          string   `json:"trend"`    // rising | stable | declining
	RelatedQueries []string `json:"relatedQueries,omitempty"`
}

// DecisionResult pairs the verdict with its explanation.
type DecisionResult struct {
	Decision   Decision `json:"decision"`
	Reason     string   `json:"reason"`
	Conditions []string `json:"conditions,omitempty"`
}

// ActionItem is a concrete validation step recommended to the founder.
type ActionItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Priority  string `json:"priority"` // high | medium | low
	Category  string `json:"category"` // validate | avoid | test | measure
	Timeframe string `json:"timeframe,omitempty"`
	Completed bool   `json:"completed"`
}

// AnalysisResult is the full report produced by the pipeline.
type AnalysisResult struct {
	Input           StartupInput    `json:"input"`
	Mode            AnalysisMode    `json:"mode"`
	Assumptions     []Assumption    `json:"assumptions"`
	RiskScore       RiskScore       `json:"riskScore"`
	Competitors     []Competitor    `json:"competitors"`
	FailedStartups  []FailedStartup `json:"failedStartups"`
	Trends          []MarketTrend   `json:"trends,omitempty"`
	Decision        DecisionResult  `json:"decision"`
	ActionItems     []ActionItem    `json:"actionItems"`
	DataSourcesUsed []string        `json:"dataSourcesUsed,omitempty"`
	AnalyzedAt      string          `json:"analyzedAt,omitempty"`
}

// RiskLevelFor maps a total score to its label.
func RiskLevelFor(total int) string {
	switch {
	case total < 25:
		return "Low"
	case total < 50:
		return "Medium"
	case total < 75:
		return "High"
	default:
		return "Critical"
	}
}
