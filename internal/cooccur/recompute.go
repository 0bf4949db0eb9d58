// Package cooccur owns the derived symptom co-occurrence cache: a batch
// job that rebuilds, for every ordered pair of distinct symptoms (A, B),
// how many respondents reporting A also report B and what share of A's
// respondents that is.
package cooccur

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"amiokay/internal/metrics"
	"amiokay/internal/storage"
)

// DefaultMinSupport is the minimum number of co-occurring responses a pair
// needs before it is cached. It bounds cache size and keeps statistically
// noisy pairs from small samples out of the results.
const DefaultMinSupport = 10

type Config struct {
	MinSupport int
}

func DefaultConfig() Config {
	return Config{MinSupport: DefaultMinSupport}
}

// Recomputer rebuilds the symptom_cooccurrences cache. It is the only
// writer of derived state; reads go through the insight repository.
type Recomputer struct {
	db     *storage.DB
	logger zerolog.Logger
	cfg    Config

	mu sync.Mutex // serializes rebuilds
}

func NewRecomputer(db *storage.DB, logger zerolog.Logger, cfg Config) *Recomputer {
	if cfg.MinSupport < 1 {
		cfg.MinSupport = DefaultMinSupport
	}
	return &Recomputer{db: db, logger: logger, cfg: cfg}
}

// Recompute clears the cache and rebuilds it from the current response set,
// inside a single transaction so a failure (or cancellation) leaves the
// previous cache intact. Running it twice on unchanged data produces an
// identical cache.
//
// Both directions of each pair are materialized: pct(A,B) is relative to
// the respondents reporting A, so (A,B) and (B,A) share a count but not a
// percentage.
func (r *Recomputer) Recompute(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	var pairs int64

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM symptom_cooccurrences`); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO symptom_cooccurrences (symptom_id_a, symptom_id_b, co_occurrence_count, co_occurrence_pct)
			SELECT
				rs1.symptom_id,
				rs2.symptom_id,
				COUNT(DISTINCT rs1.response_id),
				ROUND(
					COUNT(DISTINCT rs1.response_id) * 100.0 /
					(SELECT COUNT(DISTINCT response_id) FROM response_symptoms WHERE symptom_id = rs1.symptom_id),
					1
				)
			FROM response_symptoms rs1
			JOIN response_symptoms rs2
				ON rs1.response_id = rs2.response_id
				AND rs1.symptom_id <> rs2.symptom_id
			GROUP BY rs1.symptom_id, rs2.symptom_id
			HAVING COUNT(DISTINCT rs1.response_id) >= ?`,
			r.cfg.MinSupport)
		if err != nil {
			return fmt.Errorf("rebuild pairs: %w", err)
		}

		pairs, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		metrics.CooccurrenceRebuilds.WithLabelValues("failure").Inc()
		return fmt.Errorf("co-occurrence rebuild failed: %w", err)
	}

	metrics.CooccurrenceRebuilds.WithLabelValues("success").Inc()
	r.logger.Info().
		Int64("pairs", pairs).
		Int("min_support", r.cfg.MinSupport).
		Dur("took", time.Since(start)).
		Msg("co-occurrence cache rebuilt")
	return nil
}
