package survey

import (
	"time"

	"github.com/google/uuid"
)

// Symptom is immutable taxonomy, seeded once.
type Symptom struct {
	ID          int64  `json:"symptom_id"`
	Name        string `json:"symptom_name"`
	CategoryID  int64  `json:"category_id"`
	Description string `json:"description"`
}

// Category groups symptoms for quiz display only; it carries no
// analytical meaning.
type Category struct {
	ID           int64     `json:"category_id"`
	Name         string    `json:"category_name"`
	DisplayOrder int       `json:"display_order"`
	Icon         string    `json:"icon"`
	Symptoms     []Symptom `json:"symptoms"`
}

// LifeStage is the optional cohort dimension. Ranges are non-overlapping
// and ordered by DisplayOrder.
type LifeStage struct {
	ID            int64  `json:"stage_id"`
	Name          string `json:"stage_name"`
	AgeRangeStart int    `json:"age_range_start"`
	AgeRangeEnd   int    `json:"age_range_end"`
	DisplayOrder  int    `json:"-"`
}

// SymptomReport is one reported symptom within a response. Severity 0
// means "reported, no severity given".
type SymptomReport struct {
	SymptomID int64 `json:"symptom_id"`
	Severity  int   `json:"severity"`
}

// Response is one anonymous quiz submission, immutable after creation.
type Response struct {
	ID          uuid.UUID       `json:"response_id"`
	LifeStageID *int64          `json:"life_stage_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Symptoms    []SymptomReport `json:"symptoms"`
}

// Specialist is immutable reference data describing a care category.
type Specialist struct {
	ID           int64  `json:"specialist_id"`
	Type         string `json:"specialist_type"`
	Description  string `json:"description"`
	WhatToExpect string `json:"what_to_expect"`
	Icon         string `json:"icon"`
}

// Counts summarizes table sizes, used by the seeding endpoint.
type Counts struct {
	Categories     int `json:"symptom_categories"`
	Symptoms       int `json:"symptoms"`
	LifeStages     int `json:"life_stages"`
	Specialists    int `json:"specialists"`
	Responses      int `json:"responses"`
	SymptomReports int `json:"symptom_reports"`
	Cooccurrences  int `json:"cooccurrence_pairs"`
}
