package survey

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestSeedTaxonomyIdempotent(t *testing.T) {
	db := newTestDB(t)
	seeder := NewSeeder(db, zerolog.Nop(), 1)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := seeder.SeedTaxonomy(ctx); err != nil {
		t.Fatalf("first SeedTaxonomy() error = %v", err)
	}
	first, err := repo.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if err := seeder.SeedTaxonomy(ctx); err != nil {
		t.Fatalf("second SeedTaxonomy() error = %v", err)
	}
	second, err := repo.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if *first != *second {
		t.Errorf("repeated taxonomy seeding changed counts: %+v -> %+v", first, second)
	}

	var mappings int
	if err := db.Conn().QueryRow(`SELECT COUNT(*) FROM symptom_specialist_map`).Scan(&mappings); err != nil {
		t.Fatal(err)
	}
	if mappings == 0 {
		t.Error("no specialist mappings seeded")
	}
}

func TestSeedResponses(t *testing.T) {
	db := newSeededDB(t)
	seeder := NewSeeder(db, zerolog.Nop(), 42)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := seeder.SeedResponses(ctx, 100); err != nil {
		t.Fatalf("SeedResponses() error = %v", err)
	}

	counts, err := repo.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Responses != 100 {
		t.Errorf("got %d responses, want 100", counts.Responses)
	}

	// every response belongs to a known life stage
	var orphans int
	if err := db.Conn().QueryRow(
		`SELECT COUNT(*) FROM responses WHERE life_stage_id IS NULL`).Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("%d synthetic responses have no life stage", orphans)
	}

	// severities stay within the recordable range
	var bad int
	if err := db.Conn().QueryRow(
		`SELECT COUNT(*) FROM response_symptoms WHERE severity < 0 OR severity > 3`).Scan(&bad); err != nil {
		t.Fatal(err)
	}
	if bad != 0 {
		t.Errorf("%d reports with out-of-range severity", bad)
	}
}

func TestSeedResponsesAppend(t *testing.T) {
	db := newSeededDB(t)
	seeder := NewSeeder(db, zerolog.Nop(), 7)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := seeder.SeedResponses(ctx, 20); err != nil {
		t.Fatal(err)
	}
	if err := seeder.SeedResponses(ctx, 30); err != nil {
		t.Fatal(err)
	}

	counts, err := repo.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Responses != 50 {
		t.Errorf("got %d responses after two rounds, want 50", counts.Responses)
	}
}
