package insight

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"amiokay/internal/cooccur"
	"amiokay/internal/survey"
)

// Exercises the full pipeline on the real taxonomy: seeded reference data,
// recorded submissions, a co-occurrence rebuild and one assembled bundle.
func TestResultsFlow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := survey.NewSeeder(db, zerolog.Nop(), 1).SeedTaxonomy(ctx); err != nil {
		t.Fatalf("SeedTaxonomy() error = %v", err)
	}

	sid := func(name string) int64 {
		var id int64
		if err := db.Conn().QueryRow(
			`SELECT symptom_id FROM symptoms WHERE symptom_name = ?`, name).Scan(&id); err != nil {
			t.Fatalf("symptom %q not found: %v", name, err)
		}
		return id
	}
	var adultStage int64
	if err := db.Conn().QueryRow(
		`SELECT stage_id FROM life_stages WHERE stage_name = 'Adult (25-34)'`).Scan(&adultStage); err != nil {
		t.Fatal(err)
	}

	heavy := sid("Heavy periods")
	cramps := sid("Painful cramps")
	fatigue := sid("Chronic fatigue")
	acne := sid("Hormonal acne")
	anxiety := sid("Anxiety")
	bloating := sid("Bloating around period")
	insomnia := sid("Insomnia")

	surveyRepo := survey.NewRepository(db)
	submit := func(n int, symptomIDs ...int64) {
		for i := 0; i < n; i++ {
			reports := make([]survey.SymptomReport, len(symptomIDs))
			for j, id := range symptomIDs {
				reports[j] = survey.SymptomReport{SymptomID: id, Severity: 2}
			}
			if _, err := surveyRepo.CreateResponse(ctx, &adultStage, reports); err != nil {
				t.Fatalf("CreateResponse() error = %v", err)
			}
		}
	}

	// three respondent profiles, all above the default co-occurrence support
	submit(12, heavy, cramps, bloating)
	submit(10, fatigue, anxiety, insomnia)
	submit(8, acne)

	rec := cooccur.NewRecomputer(db, zerolog.Nop(), cooccur.DefaultConfig())
	if err := rec.Recompute(ctx); err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}

	svc := NewService(NewRepository(db), &fakeGenerator{text: "generated"}, zerolog.Nop())
	selected := []int64{heavy, cramps, fatigue, acne, anxiety}

	bundle, err := svc.Assemble(ctx, selected, &adultStage, "Adult (25-34)")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(bundle.Prevalence) != 5 {
		t.Fatalf("got %d prevalence rows, want 5: %+v", len(bundle.Prevalence), bundle.Prevalence)
	}
	wantPct := map[int64]float64{heavy: 40.0, cramps: 40.0, fatigue: 33.3, anxiety: 33.3, acne: 26.7}
	for _, row := range bundle.Prevalence {
		if row.Percentage != wantPct[row.SymptomID] {
			t.Errorf("%s prevalence = %.1f, want %.1f", row.SymptomName, row.Percentage, wantPct[row.SymptomID])
		}
	}
	for i := 1; i < len(bundle.Prevalence); i++ {
		if bundle.Prevalence[i].ReportCount > bundle.Prevalence[i-1].ReportCount {
			t.Errorf("prevalence rows out of order at %d", i)
		}
	}

	// the unselected cluster companions surface, the selected set never does
	coBySymptom := map[int64]CooccurringRow{}
	for _, row := range bundle.Cooccurrences {
		coBySymptom[row.SymptomID] = row
		for _, id := range selected {
			if row.SymptomID == id {
				t.Errorf("selected symptom %s surfaced as co-occurring", row.SymptomName)
			}
		}
	}
	for _, id := range []int64{bloating, insomnia} {
		row, ok := coBySymptom[id]
		if !ok {
			t.Errorf("expected symptom %d among co-occurrences: %+v", id, bundle.Cooccurrences)
			continue
		}
		if row.MatchedWithCount != 2 || row.AvgPercentage != 100.0 {
			t.Errorf("co-occurrence row = %+v, want matched 2 at 100.0", row)
		}
	}

	// OB-GYN and Endocrinologist both match two symptoms and share rank 1
	rankByType := map[string]int{}
	for _, m := range bundle.Specialists {
		rankByType[m.Type] = m.Rank
	}
	if rankByType["OB-GYN (Gynecologist)"] != 1 || rankByType["Endocrinologist"] != 1 {
		t.Errorf("expected OB-GYN and Endocrinologist at rank 1, got %v", rankByType)
	}
	if rankByType["Dermatologist"] != 2 {
		t.Errorf("expected Dermatologist at rank 2, got %v", rankByType)
	}
	if _, ok := rankByType["Gastroenterologist"]; ok {
		t.Error("Gastroenterologist matched nothing and must not appear")
	}

	for i, m := range bundle.Specialists {
		if i < 3 && m.Explanation == "" {
			t.Errorf("top specialist %s missing explanation", m.Type)
		}
	}

	// every report carried severity 2
	if len(bundle.Severity) != 5 {
		t.Fatalf("got %d severity rows, want 5: %+v", len(bundle.Severity), bundle.Severity)
	}
	for _, row := range bundle.Severity {
		if row.PctModerate != 100.0 {
			t.Errorf("%s moderate share = %.1f, want 100.0", row.SymptomName, row.PctModerate)
		}
	}

	if bundle.Narrative != "generated" {
		t.Errorf("Narrative = %q", bundle.Narrative)
	}
}
