// Package model defines the records the scoring engine reads and writes:
// trackers, deals, buyers, call intelligence, and score shapes. Every input
// field that can be absent upstream is a pointer or slice; scorers degrade
// to neutral scores with low confidence instead of erroring on nil.
package model

import "time"

// Confidence expresses how much data backed a category score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Completeness buckets the data-completeness checklist result.
type Completeness string

const (
	CompletenessHigh   Completeness = "High"
	CompletenessMedium Completeness = "Medium"
	CompletenessLow    Completeness = "Low"
)

// Tracker is an industry-scoped container owning a buyer universe and its
// scoring weights. Weights are integer percentages divided by 100 at
// aggregation time; they are caller-configured sensitivities and need not
// sum to 100.
type Tracker struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Industry         string `json:"industry"`
	GeographyWeight  *int   `json:"geography_weight,omitempty"`
	SizeWeight       *int   `json:"size_weight,omitempty"`
	ServiceMixWeight *int   `json:"service_mix_weight,omitempty"`
	OwnerGoalsWeight *int   `json:"owner_goals_weight,omitempty"`
}

// Deal is an acquisition target under evaluation. Immutable during a
// scoring pass. Revenue and EBITDA amounts are in millions.
type Deal struct {
	ID               string   `json:"id"`
	TrackerID        string   `json:"tracker_id"`
	Name             string   `json:"name"`
	Revenue          *float64 `json:"revenue,omitempty"`
	EBITDAAmount     *float64 `json:"ebitda_amount,omitempty"`
	EBITDAPercentage *float64 `json:"ebitda_percentage,omitempty"`
	LocationCount    *int     `json:"location_count,omitempty"`
	Geography        []string `json:"geography,omitempty"`
	Headquarters     string   `json:"headquarters,omitempty"`
	ServiceMix       string   `json:"service_mix,omitempty"`
	BusinessModel    string   `json:"business_model,omitempty"`
	OwnerGoals       string   `json:"owner_goals,omitempty"`
	IndustryType     string   `json:"industry_type,omitempty"`
}

// Locations returns the location count, defaulting to 1 when unknown.
// A single-location business is a materially different risk profile than
// a 3+ location platform, so the default is the conservative one.
func (d *Deal) Locations() int {
	if d.LocationCount == nil || *d.LocationCount < 1 {
		return 1
	}
	return *d.LocationCount
}

// EBITDA returns the EBITDA amount in millions. The stated amount wins;
// otherwise it is derived from revenue and ebitda_percentage. Nil when
// neither path is available.
func (d *Deal) EBITDA() *float64 {
	if d.EBITDAAmount != nil {
		return d.EBITDAAmount
	}
	if d.EBITDAPercentage != nil && d.Revenue != nil {
		v := *d.Revenue * *d.EBITDAPercentage / 100
		return &v
	}
	return nil
}

// EBITDAMargin returns the margin percentage, preferring the stated
// percentage over one derived from amount/revenue.
func (d *Deal) EBITDAMargin() *float64 {
	if d.EBITDAPercentage != nil {
		return d.EBITDAPercentage
	}
	if d.EBITDAAmount != nil && d.Revenue != nil && *d.Revenue > 0 {
		v := *d.EBITDAAmount / *d.Revenue * 100
		return &v
	}
	return nil
}

// Buyer is one potential acquirer: a PE firm plus an optional operating
// platform company. All criteria fields are independently nullable.
type Buyer struct {
	ID        string `json:"id"`
	TrackerID string `json:"tracker_id"`

	PEFirmName          string  `json:"pe_firm_name"`
	PlatformCompanyName *string `json:"platform_company_name,omitempty"`

	HQState              *string  `json:"hq_state,omitempty"`
	HQCity               *string  `json:"hq_city,omitempty"`
	TargetGeographies    []string `json:"target_geographies,omitempty"`
	GeographicFootprint  []string `json:"geographic_footprint,omitempty"`
	ServiceRegions       []string `json:"service_regions,omitempty"`
	GeographicExclusions []string `json:"geographic_exclusions,omitempty"`

	MinRevenue       *float64 `json:"min_revenue,omitempty"`
	MaxRevenue       *float64 `json:"max_revenue,omitempty"`
	RevenueSweetSpot *float64 `json:"revenue_sweet_spot,omitempty"`
	MinEBITDA        *float64 `json:"min_ebitda,omitempty"`
	MaxEBITDA        *float64 `json:"max_ebitda,omitempty"`
	EBITDASweetSpot  *float64 `json:"ebitda_sweet_spot,omitempty"`

	ServicesOffered    *string  `json:"services_offered,omitempty"`
	TargetServices     []string `json:"target_services,omitempty"`
	ServiceMixPrefs    *string  `json:"service_mix_prefs,omitempty"`
	IndustryExclusions []string `json:"industry_exclusions,omitempty"`

	OwnerTransitionGoals    *string  `json:"owner_transition_goals,omitempty"`
	OwnerRollRequirement    *string  `json:"owner_roll_requirement,omitempty"`
	ThesisSummary           *string  `json:"thesis_summary,omitempty"`
	KeyQuotes               []string `json:"key_quotes,omitempty"`
	BusinessModelPrefs      *string  `json:"business_model_prefs,omitempty"`
	BusinessModelExclusions *string  `json:"business_model_exclusions,omitempty"`

	AcquisitionAppetite  *string    `json:"acquisition_appetite,omitempty"`
	AcquisitionFrequency *string    `json:"acquisition_frequency,omitempty"`
	TotalAcquisitions    *int       `json:"total_acquisitions,omitempty"`
	LastAcquisitionDate  *time.Time `json:"last_acquisition_date,omitempty"`
	DealBreakers         []string   `json:"deal_breakers,omitempty"`
}

// DisplayName returns the platform company name when set, else the PE firm.
func (b *Buyer) DisplayName() string {
	if name := TextOf(b.PlatformCompanyName); name != "" {
		return name
	}
	return b.PEFirmName
}

// CallIntelligence is one processed call record tied to a deal and,
// when attributable, a specific buyer.
type CallIntelligence struct {
	ID            string         `json:"id"`
	DealID        string         `json:"deal_id"`
	BuyerID       *string        `json:"buyer_id,omitempty"`
	CallSummary   string         `json:"call_summary,omitempty"`
	KeyTakeaways  []string       `json:"key_takeaways,omitempty"`
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
}

// CategoryScore is the uniform result contract of each category scorer.
type CategoryScore struct {
	Score                  int        `json:"score"`
	Reasoning              string     `json:"reasoning"`
	IsDisqualified         bool       `json:"isDisqualified"`
	DisqualificationReason string     `json:"disqualificationReason,omitempty"`
	Confidence             Confidence `json:"confidence"`
}

// GatingFactor is the size scorer's second return channel: a [0, 1.05]
// multiplier that caps the achievable composite score independent of
// category weights. Kept outside CategoryScore so the aggregator's
// contract stays uniform.
type GatingFactor struct {
	Multiplier float64 `json:"multiplier"`
}

// EngagementSignals summarizes qualitative buyer-interest indicators
// mined from call intelligence for one buyer on one deal.
type EngagementSignals struct {
	HasCalls            bool     `json:"hasCalls"`
	SiteVisitRequested  bool     `json:"siteVisitRequested"`
	FinancialsRequested bool     `json:"financialsRequested"`
	CEOInvolved         bool     `json:"ceoInvolved"`
	PersonalConnection  bool     `json:"personalConnection"`
	ExpressedInterest   bool     `json:"expressedInterest"`
	EngagementScore     int      `json:"engagementScore"`
	Signals             []string `json:"signals,omitempty"`
}

// BuyerScore is the full per-buyer scoring result returned to callers.
type BuyerScore struct {
	BuyerID                 string            `json:"buyerId"`
	BuyerName               string            `json:"buyerName"`
	CompositeScore          int               `json:"compositeScore"`
	Size                    CategoryScore     `json:"size"`
	Geography               CategoryScore     `json:"geography"`
	Services                CategoryScore     `json:"services"`
	OwnerGoals              CategoryScore     `json:"ownerGoals"`
	SizeMultiplier          float64           `json:"sizeMultiplier"`
	ThesisBonus             int               `json:"thesisBonus"`
	EngagementBonus         float64           `json:"engagementBonus"`
	OverallReasoning        string            `json:"overallReasoning"`
	IsDisqualified          bool              `json:"isDisqualified"`
	DisqualificationReasons []string          `json:"disqualificationReasons,omitempty"`
	DataCompleteness        Completeness      `json:"dataCompleteness"`
	DealAttractiveness      int               `json:"dealAttractiveness"`
	EngagementSignals       EngagementSignals `json:"engagementSignals"`
}

// BuyerDealScore is the persisted row, upserted on (buyer_id, deal_id).
// Only these scoring-derived columns are ever written by the engine; the
// human-decision columns on the table (approved, passed, hidden,
// override_score) belong to the outreach workflow and are never touched.
type BuyerDealScore struct {
	BuyerID          string       `json:"buyer_id"`
	DealID           string       `json:"deal_id"`
	CompositeScore   int          `json:"composite_score"`
	GeographyScore   int          `json:"geography_score"`
	ServiceScore     int          `json:"service_score"`
	AcquisitionScore int          `json:"acquisition_score"`
	PortfolioScore   int          `json:"portfolio_score"`
	ThesisBonus      int          `json:"thesis_bonus"`
	FitReasoning     string       `json:"fit_reasoning"`
	DataCompleteness Completeness `json:"data_completeness"`
	ScoredAt         time.Time    `json:"scored_at"`
}
