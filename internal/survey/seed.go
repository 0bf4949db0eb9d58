package survey

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"amiokay/internal/storage"
)

// Seeder populates the taxonomy tables and, optionally, synthetic anonymous
// responses so the aggregators have a population to describe. Taxonomy
// seeding is idempotent; responses are append-only.
type Seeder struct {
	db     *storage.DB
	logger zerolog.Logger
	rng    *rand.Rand
}

func NewSeeder(db *storage.DB, logger zerolog.Logger, rngSeed int64) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
		rng:    rand.New(rand.NewSource(rngSeed)),
	}
}

// SeedTaxonomy inserts life stages, symptom categories with their symptoms,
// and specialists with their symptom weight maps. Safe to run repeatedly.
func (s *Seeder) SeedTaxonomy(ctx context.Context) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := seedLifeStages(ctx, tx); err != nil {
			return err
		}
		if err := seedSymptoms(ctx, tx); err != nil {
			return err
		}
		return seedSpecialists(ctx, tx)
	})
}

// SeedResponses generates n synthetic anonymous submissions driven by the
// symptom clusters below. The analytics engine itself assumes nothing about
// this structure; it only describes whatever ends up in the store.
func (s *Seeder) SeedResponses(ctx context.Context, n int) error {
	symptomIDs, err := s.symptomIDsByName(ctx)
	if err != nil {
		return err
	}
	stageIDs, err := s.stageIDs(ctx)
	if err != nil {
		return err
	}
	if len(stageIDs) != len(stageWeights) {
		return fmt.Errorf("expected %d life stages, found %d", len(stageWeights), len(stageIDs))
	}

	start := time.Now()
	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		respStmt, err := tx.PrepareContext(ctx,
			`INSERT INTO responses (response_id, life_stage_id, created_at) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer respStmt.Close()

		symStmt, err := tx.PrepareContext(ctx,
			`INSERT OR IGNORE INTO response_symptoms (response_id, symptom_id, severity) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer symStmt.Close()

		for i := 0; i < n; i++ {
			id := uuid.New().String()
			stageID := stageIDs[s.weightedIndex(stageWeights)]
			if _, err := respStmt.ExecContext(ctx, id, stageID, time.Now().UTC()); err != nil {
				return fmt.Errorf("insert synthetic response: %w", err)
			}

			for _, name := range s.pickSymptoms() {
				symID, ok := symptomIDs[name]
				if !ok {
					continue
				}
				severity := s.weightedIndex(severityWeights)
				if _, err := symStmt.ExecContext(ctx, id, symID, severity); err != nil {
					return fmt.Errorf("insert synthetic report: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int("responses", n).Dur("took", time.Since(start)).Msg("synthetic responses seeded")
	return nil
}

// pickSymptoms assembles one respondent's symptom set: each cluster fires
// with its prevalence probability, each symptom within a firing cluster is
// kept with 50-80% chance, plus up to two stray symptoms.
func (s *Seeder) pickSymptoms() []string {
	picked := map[string]bool{}
	for _, cl := range clusters {
		if s.rng.Float64() >= cl.prevalence {
			continue
		}
		for _, name := range cl.symptoms {
			if s.rng.Float64() < 0.5+0.3*s.rng.Float64() {
				picked[name] = true
			}
		}
	}
	for i := 0; i < s.rng.Intn(3); i++ {
		picked[allSymptomNames[s.rng.Intn(len(allSymptomNames))]] = true
	}

	names := make([]string, 0, len(picked))
	for name := range picked {
		names = append(names, name)
	}
	return names
}

func (s *Seeder) weightedIndex(weights []float64) int {
	r := s.rng.Float64()
	var acc float64
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

func (s *Seeder) symptomIDsByName(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `SELECT symptom_id, symptom_name FROM symptoms`)
	if err != nil {
		return nil, fmt.Errorf("load symptoms: %w", err)
	}
	defer rows.Close()

	ids := map[string]int64{}
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

func (s *Seeder) stageIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `SELECT stage_id FROM life_stages ORDER BY display_order`)
	if err != nil {
		return nil, fmt.Errorf("load life stages: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func seedLifeStages(ctx context.Context, tx *sql.Tx) error {
	stages := []struct {
		name       string
		start, end int
		order      int
	}{
		{"Teens (13-17)", 13, 17, 1},
		{"Young Adult (18-24)", 18, 24, 2},
		{"Adult (25-34)", 25, 34, 3},
		{"Adult (35-44)", 35, 44, 4},
		{"Perimenopause (45-54)", 45, 54, 5},
		{"Menopause & Beyond (55+)", 55, 99, 6},
	}
	for _, st := range stages {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO life_stages (stage_name, age_range_start, age_range_end, display_order) VALUES (?, ?, ?, ?)`,
			st.name, st.start, st.end, st.order); err != nil {
			return fmt.Errorf("seed life stage %q: %w", st.name, err)
		}
	}
	return nil
}

func seedSymptoms(ctx context.Context, tx *sql.Tx) error {
	for _, cat := range taxonomy {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO symptom_categories (category_name, display_order, icon) VALUES (?, ?, ?)`,
			cat.name, cat.order, cat.icon); err != nil {
			return fmt.Errorf("seed category %q: %w", cat.name, err)
		}

		var catID int64
		if err := tx.QueryRowContext(ctx,
			`SELECT category_id FROM symptom_categories WHERE category_name = ?`, cat.name).Scan(&catID); err != nil {
			return err
		}

		for _, sym := range cat.symptoms {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO symptoms (symptom_name, category_id, description) VALUES (?, ?, ?)`,
				sym.name, catID, sym.description); err != nil {
				return fmt.Errorf("seed symptom %q: %w", sym.name, err)
			}
		}
	}
	return nil
}

func seedSpecialists(ctx context.Context, tx *sql.Tx) error {
	for _, sp := range specialistSeed {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO specialists (specialist_type, description, what_to_expect, icon) VALUES (?, ?, ?, ?)`,
			sp.specialistType, sp.description, sp.whatToExpect, sp.icon); err != nil {
			return fmt.Errorf("seed specialist %q: %w", sp.specialistType, err)
		}

		var spID int64
		if err := tx.QueryRowContext(ctx,
			`SELECT specialist_id FROM specialists WHERE specialist_type = ?`, sp.specialistType).Scan(&spID); err != nil {
			return err
		}

		for _, symName := range sp.symptoms {
			var symID int64
			err := tx.QueryRowContext(ctx,
				`SELECT symptom_id FROM symptoms WHERE symptom_name = ?`, symName).Scan(&symID)
			if err == sql.ErrNoRows {
				continue
			}
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO symptom_specialist_map (symptom_id, specialist_id, relevance_weight) VALUES (?, ?, ?)`,
				symID, spID, 1.0); err != nil {
				return fmt.Errorf("map symptom %q to %q: %w", symName, sp.specialistType, err)
			}
		}
	}
	return nil
}
