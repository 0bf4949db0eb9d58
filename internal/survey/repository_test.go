package survey

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"amiokay/internal/storage"
)

func newTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newSeededDB(t *testing.T) *storage.DB {
	t.Helper()
	db := newTestDB(t)
	if err := NewSeeder(db, zerolog.Nop(), 1).SeedTaxonomy(context.Background()); err != nil {
		t.Fatalf("SeedTaxonomy() error = %v", err)
	}
	return db
}

func symptomID(t *testing.T, db *storage.DB, name string) int64 {
	t.Helper()
	var id int64
	err := db.Conn().QueryRow(`SELECT symptom_id FROM symptoms WHERE symptom_name = ?`, name).Scan(&id)
	if err != nil {
		t.Fatalf("symptom %q not found: %v", name, err)
	}
	return id
}

func TestQuizStructure(t *testing.T) {
	db := newSeededDB(t)
	repo := NewRepository(db)

	cats, err := repo.QuizStructure(context.Background())
	if err != nil {
		t.Fatalf("QuizStructure() error = %v", err)
	}
	if len(cats) != 7 {
		t.Fatalf("got %d categories, want 7", len(cats))
	}

	for i := 1; i < len(cats); i++ {
		if cats[i].DisplayOrder < cats[i-1].DisplayOrder {
			t.Errorf("categories out of display order at %d: %d after %d",
				i, cats[i].DisplayOrder, cats[i-1].DisplayOrder)
		}
	}

	total := 0
	for _, cat := range cats {
		if len(cat.Symptoms) == 0 {
			t.Errorf("category %q has no symptoms", cat.Name)
		}
		for _, sym := range cat.Symptoms {
			if sym.CategoryID != cat.ID {
				t.Errorf("symptom %q grouped under wrong category", sym.Name)
			}
		}
		total += len(cat.Symptoms)
	}
	if total != 37 {
		t.Errorf("got %d symptoms, want 37", total)
	}

	if cats[0].Name != "Menstrual & Cycle" {
		t.Errorf("first category = %q, want %q", cats[0].Name, "Menstrual & Cycle")
	}
}

func TestLifeStages(t *testing.T) {
	db := newSeededDB(t)
	repo := NewRepository(db)

	stages, err := repo.LifeStages(context.Background())
	if err != nil {
		t.Fatalf("LifeStages() error = %v", err)
	}
	if len(stages) != 6 {
		t.Fatalf("got %d life stages, want 6", len(stages))
	}
	if stages[0].Name != "Teens (13-17)" {
		t.Errorf("first stage = %q, want %q", stages[0].Name, "Teens (13-17)")
	}
	if stages[5].AgeRangeEnd != 99 {
		t.Errorf("last stage age range end = %d, want 99", stages[5].AgeRangeEnd)
	}
}

func TestLifeStageByID(t *testing.T) {
	db := newSeededDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	stages, err := repo.LifeStages(ctx)
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.LifeStageByID(ctx, stages[2].ID)
	if err != nil {
		t.Fatalf("LifeStageByID() error = %v", err)
	}
	if got.Name != stages[2].Name {
		t.Errorf("got stage %q, want %q", got.Name, stages[2].Name)
	}

	if _, err := repo.LifeStageByID(ctx, 9999); err == nil {
		t.Error("expected error for unknown life stage id")
	}
}

func TestCreateResponse(t *testing.T) {
	db := newSeededDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	heavy := symptomID(t, db, "Heavy periods")
	fatigue := symptomID(t, db, "Chronic fatigue")

	stageID := int64(3)
	resp, err := repo.CreateResponse(ctx, &stageID, []SymptomReport{
		{SymptomID: heavy, Severity: 3},
		{SymptomID: fatigue, Severity: 0},
	})
	if err != nil {
		t.Fatalf("CreateResponse() error = %v", err)
	}
	if resp.ID.String() == "" {
		t.Error("response got no id")
	}

	var reports int
	if err := db.Conn().QueryRow(
		`SELECT COUNT(*) FROM response_symptoms WHERE response_id = ?`, resp.ID.String()).Scan(&reports); err != nil {
		t.Fatal(err)
	}
	if reports != 2 {
		t.Errorf("got %d stored reports, want 2", reports)
	}
}

func TestCreateResponseDuplicateSymptom(t *testing.T) {
	db := newSeededDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	heavy := symptomID(t, db, "Heavy periods")

	_, err := repo.CreateResponse(ctx, nil, []SymptomReport{
		{SymptomID: heavy, Severity: 1},
		{SymptomID: heavy, Severity: 2},
	})
	if err == nil {
		t.Fatal("expected error for duplicate symptom in one response")
	}

	// the whole submission rolls back, nothing partial remains
	var responses int
	if err := db.Conn().QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&responses); err != nil {
		t.Fatal(err)
	}
	if responses != 0 {
		t.Errorf("got %d responses after failed submission, want 0", responses)
	}
}

func TestCreateResponseUnknownSymptom(t *testing.T) {
	db := newSeededDB(t)
	repo := NewRepository(db)

	_, err := repo.CreateResponse(context.Background(), nil, []SymptomReport{
		{SymptomID: 99999, Severity: 1},
	})
	if err == nil {
		t.Fatal("expected foreign key error for unknown symptom id")
	}
}

func TestCounts(t *testing.T) {
	db := newSeededDB(t)
	repo := NewRepository(db)

	c, err := repo.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if c.Categories != 7 || c.Symptoms != 37 || c.LifeStages != 6 || c.Specialists != 7 {
		t.Errorf("taxonomy counts = %+v, want 7/37/6/7", c)
	}
	if c.Responses != 0 || c.Cooccurrences != 0 {
		t.Errorf("expected empty response and cache tables, got %+v", c)
	}
}
