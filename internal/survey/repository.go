package survey

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"amiokay/internal/storage"
)

type Repository interface {
	QuizStructure(ctx context.Context) ([]Category, error)
	LifeStages(ctx context.Context) ([]LifeStage, error)
	LifeStageByID(ctx context.Context, id int64) (*LifeStage, error)
	CreateResponse(ctx context.Context, lifeStageID *int64, reports []SymptomReport) (*Response, error)
	Counts(ctx context.Context) (*Counts, error)
}

type sqliteRepo struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) Repository {
	return &sqliteRepo{db: db}
}

// QuizStructure returns all categories with their symptoms, ordered by
// category display order and symptom id, the order the quiz renders in.
func (r *sqliteRepo) QuizStructure(ctx context.Context) ([]Category, error) {
	query := `
		SELECT sc.category_id, sc.category_name, sc.display_order, sc.icon,
		       s.symptom_id, s.symptom_name, s.description
		FROM symptom_categories sc
		JOIN symptoms s ON sc.category_id = s.category_id
		ORDER BY sc.display_order, s.symptom_id`

	rows, err := r.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("quiz structure query failed: %w", err)
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		var (
			cat Category
			sym Symptom
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.DisplayOrder, &cat.Icon,
			&sym.ID, &sym.Name, &sym.Description); err != nil {
			return nil, err
		}
		sym.CategoryID = cat.ID

		if n := len(cats); n > 0 && cats[n-1].ID == cat.ID {
			cats[n-1].Symptoms = append(cats[n-1].Symptoms, sym)
			continue
		}
		cat.Symptoms = []Symptom{sym}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

func (r *sqliteRepo) LifeStages(ctx context.Context) ([]LifeStage, error) {
	query := `
		SELECT stage_id, stage_name, age_range_start, age_range_end, display_order
		FROM life_stages
		ORDER BY display_order`

	rows, err := r.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("life stages query failed: %w", err)
	}
	defer rows.Close()

	var stages []LifeStage
	for rows.Next() {
		var ls LifeStage
		if err := rows.Scan(&ls.ID, &ls.Name, &ls.AgeRangeStart, &ls.AgeRangeEnd, &ls.DisplayOrder); err != nil {
			return nil, err
		}
		stages = append(stages, ls)
	}
	return stages, rows.Err()
}

func (r *sqliteRepo) LifeStageByID(ctx context.Context, id int64) (*LifeStage, error) {
	query := `
		SELECT stage_id, stage_name, age_range_start, age_range_end, display_order
		FROM life_stages WHERE stage_id = ?`

	var ls LifeStage
	err := r.db.Conn().QueryRowContext(ctx, query, id).
		Scan(&ls.ID, &ls.Name, &ls.AgeRangeStart, &ls.AgeRangeEnd, &ls.DisplayOrder)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("life stage %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &ls, nil
}

// CreateResponse stores one anonymous submission and its symptom reports
// in a single transaction. A duplicate symptom within the same response
// violates the primary key and fails the whole submission.
func (r *sqliteRepo) CreateResponse(ctx context.Context, lifeStageID *int64, reports []SymptomReport) (*Response, error) {
	resp := &Response{
		ID:          uuid.New(),
		LifeStageID: lifeStageID,
		CreatedAt:   time.Now().UTC(),
		Symptoms:    reports,
	}

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO responses (response_id, life_stage_id, created_at) VALUES (?, ?, ?)`,
			resp.ID.String(), lifeStageID, resp.CreatedAt); err != nil {
			return fmt.Errorf("insert response: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO response_symptoms (response_id, symptom_id, severity) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, rep := range reports {
			if _, err := stmt.ExecContext(ctx, resp.ID.String(), rep.SymptomID, rep.Severity); err != nil {
				return fmt.Errorf("insert symptom report %d: %w", rep.SymptomID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *sqliteRepo) Counts(ctx context.Context) (*Counts, error) {
	var c Counts
	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"symptom_categories", &c.Categories},
		{"symptoms", &c.Symptoms},
		{"life_stages", &c.LifeStages},
		{"specialists", &c.Specialists},
		{"responses", &c.Responses},
		{"response_symptoms", &c.SymptomReports},
		{"symptom_cooccurrences", &c.Cooccurrences},
	} {
		if err := r.db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM "+q.table).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("count %s: %w", q.table, err)
		}
	}
	return &c, nil
}
