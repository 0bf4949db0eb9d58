package insight

// PrevalenceRow reports what share of a cohort reports one symptom.
type PrevalenceRow struct {
	SymptomID   int64   `json:"symptom_id"`
	SymptomName string  `json:"symptom_name"`
	ReportCount int     `json:"report_count"`
	Percentage  float64 `json:"percentage"`
}

// CooccurringRow is a symptom the user did not select but which commonly
// appears alongside the selected set. MatchedWithCount says how many of the
// user's symptoms it pairs with in the cache.
type CooccurringRow struct {
	SymptomID        int64   `json:"symptom_id"`
	SymptomName      string  `json:"symptom_name"`
	AvgPercentage    float64 `json:"avg_co_pct"`
	MatchedWithCount int     `json:"matched_with_count"`
}

// SeverityRow is the severity split among respondents who rated a symptom.
// Only nonzero-severity reports count toward Total and the percentages.
type SeverityRow struct {
	SymptomID   int64   `json:"symptom_id"`
	SymptomName string  `json:"symptom_name"`
	Total       int     `json:"total"`
	PctMild     float64 `json:"pct_mild"`
	PctModerate float64 `json:"pct_moderate"`
	PctSevere   float64 `json:"pct_severe"`
}

// SpecialistMatch is one ranked specialist recommendation. Ranks are dense:
// tied scores share a rank and the next distinct score continues at rank+1.
// MatchedSymptomNames follows the underlying join order; callers must not
// rely on any particular ordering.
type SpecialistMatch struct {
	SpecialistID        int64    `json:"specialist_id"`
	Type                string   `json:"specialist_type"`
	Description         string   `json:"description"`
	WhatToExpect        string   `json:"what_to_expect"`
	Icon                string   `json:"icon"`
	MatchingSymptoms    int      `json:"matching_symptoms"`
	TotalScore          float64  `json:"total_score"`
	MatchedSymptomNames []string `json:"matched_symptom_names"`
	Rank                int      `json:"rank"`
	Explanation         string   `json:"explanation,omitempty"`
}

// ResultsBundle is the complete payload the presentation layer renders.
// Field names are a contract; do not rename casually.
type ResultsBundle struct {
	SymptomNames  []string          `json:"symptom_names"`
	LifeStage     string            `json:"life_stage"`
	Prevalence    []PrevalenceRow   `json:"prevalence"`
	Cooccurrences []CooccurringRow  `json:"cooccurrences"`
	Narrative     string            `json:"narrative"`
	Specialists   []SpecialistMatch `json:"specialists"`
	Severity      []SeverityRow     `json:"severity"`
}

// StageTopSymptom is one entry of the per-life-stage top symptom list.
type StageTopSymptom struct {
	StageName   string `json:"stage_name"`
	SymptomName string `json:"symptom_name"`
	ReportCount int    `json:"report_count"`
	Rank        int    `json:"rank"`
}
