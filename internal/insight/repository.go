package insight

import (
	"context"
	"fmt"
	"math"
	"strings"

	"amiokay/internal/storage"
)

// Repository is the read-only query surface the aggregators run on.
// All methods tolerate symptom IDs missing from the taxonomy: those simply
// contribute no rows.
type Repository interface {
	Prevalence(ctx context.Context, symptomIDs []int64, lifeStageID *int64) ([]PrevalenceRow, error)
	Cooccurring(ctx context.Context, symptomIDs []int64, limit int) ([]CooccurringRow, error)
	SeverityDistribution(ctx context.Context, symptomIDs []int64) ([]SeverityRow, error)
	SpecialistScores(ctx context.Context, symptomIDs []int64) ([]SpecialistMatch, error)
	TopSymptomsByStage(ctx context.Context, perStage int) ([]StageTopSymptom, error)
}

type sqliteRepo struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) Repository {
	return &sqliteRepo{db: db}
}

// Prevalence reports, for each selected symptom, how many responses in the
// cohort report it and what share of the cohort that is. Rows come back
// sorted by percentage descending with symptom id as tie-break.
func (r *sqliteRepo) Prevalence(ctx context.Context, symptomIDs []int64, lifeStageID *int64) ([]PrevalenceRow, error) {
	if len(symptomIDs) == 0 {
		return nil, nil
	}

	var (
		total int
		err   error
	)
	if lifeStageID != nil {
		err = r.db.Conn().QueryRowContext(ctx,
			`SELECT COUNT(*) FROM responses WHERE life_stage_id = ?`, *lifeStageID).Scan(&total)
	} else {
		err = r.db.Conn().QueryRowContext(ctx,
			`SELECT COUNT(*) FROM responses`).Scan(&total)
	}
	if err != nil {
		return nil, fmt.Errorf("cohort size query failed: %w", err)
	}

	ph, args := placeholders(symptomIDs)
	join := `LEFT JOIN responses r ON rs.response_id = r.response_id`
	if lifeStageID != nil {
		// cohort filter lives in the join condition so zero-report symptoms
		// still produce a row; its arg binds before the IN list
		join += ` AND r.life_stage_id = ?`
		args = append([]any{*lifeStageID}, args...)
	}
	query := `
		SELECT s.symptom_id, s.symptom_name, COUNT(DISTINCT r.response_id) AS report_count
		FROM symptoms s
		LEFT JOIN response_symptoms rs ON s.symptom_id = rs.symptom_id
		` + join + `
		WHERE s.symptom_id IN (` + ph + `)
		GROUP BY s.symptom_id
		ORDER BY report_count DESC, s.symptom_id ASC`

	rows, err := r.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("prevalence query failed: %w", err)
	}
	defer rows.Close()

	var out []PrevalenceRow
	for rows.Next() {
		var row PrevalenceRow
		if err := rows.Scan(&row.SymptomID, &row.SymptomName, &row.ReportCount); err != nil {
			return nil, err
		}
		if total > 0 {
			row.Percentage = round1(float64(row.ReportCount) * 100.0 / float64(total))
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Cooccurring finds symptoms outside the selected set that the cache links
// to at least two of the selected symptoms, averaging the cached directional
// percentages. Read-only against the precomputed cache; never rebuilds.
func (r *sqliteRepo) Cooccurring(ctx context.Context, symptomIDs []int64, limit int) ([]CooccurringRow, error) {
	if len(symptomIDs) == 0 || limit <= 0 {
		return nil, nil
	}

	ph, idArgs := placeholders(symptomIDs)
	args := append(append(idArgs, idArgs...), limit)
	query := `
		SELECT s.symptom_id, s.symptom_name,
		       ROUND(AVG(sco.co_occurrence_pct), 1) AS avg_co_pct,
		       COUNT(*) AS matched_with_count
		FROM symptom_cooccurrences sco
		JOIN symptoms s ON sco.symptom_id_b = s.symptom_id
		WHERE sco.symptom_id_a IN (` + ph + `)
		  AND sco.symptom_id_b NOT IN (` + ph + `)
		GROUP BY sco.symptom_id_b
		HAVING COUNT(*) >= 2
		ORDER BY avg_co_pct DESC, s.symptom_id ASC
		LIMIT ?`

	rows, err := r.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("co-occurring query failed: %w", err)
	}
	defer rows.Close()

	var out []CooccurringRow
	for rows.Next() {
		var row CooccurringRow
		if err := rows.Scan(&row.SymptomID, &row.SymptomName, &row.AvgPercentage, &row.MatchedWithCount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SeverityDistribution splits rated reports per symptom into mild, moderate
// and severe shares. Symptoms nobody rated are absent from the result.
func (r *sqliteRepo) SeverityDistribution(ctx context.Context, symptomIDs []int64) ([]SeverityRow, error) {
	if len(symptomIDs) == 0 {
		return nil, nil
	}

	ph, args := placeholders(symptomIDs)
	query := `
		SELECT rs.symptom_id, s.symptom_name,
		       COUNT(*) AS total,
		       ROUND(SUM(CASE WHEN rs.severity = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 1) AS pct_mild,
		       ROUND(SUM(CASE WHEN rs.severity = 2 THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 1) AS pct_moderate,
		       ROUND(SUM(CASE WHEN rs.severity = 3 THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 1) AS pct_severe
		FROM response_symptoms rs
		JOIN symptoms s ON rs.symptom_id = s.symptom_id
		WHERE rs.symptom_id IN (` + ph + `)
		  AND rs.severity > 0
		GROUP BY rs.symptom_id
		ORDER BY rs.symptom_id`

	rows, err := r.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("severity query failed: %w", err)
	}
	defer rows.Close()

	var out []SeverityRow
	for rows.Next() {
		var row SeverityRow
		if err := rows.Scan(&row.SymptomID, &row.SymptomName, &row.Total,
			&row.PctMild, &row.PctModerate, &row.PctSevere); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SpecialistScores returns every specialist whose mapped symptoms intersect
// the selection, with match count, summed relevance weight and the matched
// symptom names in join order. Sorted by score descending (specialist id as
// tie-break); ranks are assigned by the service.
func (r *sqliteRepo) SpecialistScores(ctx context.Context, symptomIDs []int64) ([]SpecialistMatch, error) {
	if len(symptomIDs) == 0 {
		return nil, nil
	}

	ph, args := placeholders(symptomIDs)
	query := `
		SELECT sp.specialist_id, sp.specialist_type, sp.description, sp.what_to_expect, sp.icon,
		       COUNT(*) AS matching_symptoms,
		       SUM(ssm.relevance_weight) AS total_score,
		       GROUP_CONCAT(s.symptom_name, ', ') AS matched_symptom_names
		FROM symptom_specialist_map ssm
		JOIN specialists sp ON ssm.specialist_id = sp.specialist_id
		JOIN symptoms s ON ssm.symptom_id = s.symptom_id
		WHERE ssm.symptom_id IN (` + ph + `)
		GROUP BY sp.specialist_id
		ORDER BY total_score DESC, sp.specialist_id ASC`

	rows, err := r.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("specialist score query failed: %w", err)
	}
	defer rows.Close()

	var out []SpecialistMatch
	for rows.Next() {
		var (
			m       SpecialistMatch
			matched string
		)
		if err := rows.Scan(&m.SpecialistID, &m.Type, &m.Description, &m.WhatToExpect, &m.Icon,
			&m.MatchingSymptoms, &m.TotalScore, &matched); err != nil {
			return nil, err
		}
		if matched != "" {
			m.MatchedSymptomNames = strings.Split(matched, ", ")
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// TopSymptomsByStage lists the most reported symptoms per life stage.
func (r *sqliteRepo) TopSymptomsByStage(ctx context.Context, perStage int) ([]StageTopSymptom, error) {
	if perStage <= 0 {
		perStage = 5
	}

	query := `
		WITH ranked AS (
			SELECT ls.stage_name, ls.display_order, s.symptom_name,
			       COUNT(*) AS report_count,
			       ROW_NUMBER() OVER (
			           PARTITION BY ls.stage_id
			           ORDER BY COUNT(*) DESC, s.symptom_id ASC
			       ) AS rn
			FROM responses r
			JOIN life_stages ls ON r.life_stage_id = ls.stage_id
			JOIN response_symptoms rs ON r.response_id = rs.response_id
			JOIN symptoms s ON rs.symptom_id = s.symptom_id
			GROUP BY ls.stage_id, s.symptom_id
		)
		SELECT stage_name, symptom_name, report_count, rn
		FROM ranked
		WHERE rn <= ?
		ORDER BY display_order, rn`

	rows, err := r.db.Conn().QueryContext(ctx, query, perStage)
	if err != nil {
		return nil, fmt.Errorf("top symptoms query failed: %w", err)
	}
	defer rows.Close()

	var out []StageTopSymptom
	for rows.Next() {
		var row StageTopSymptom
		if err := rows.Scan(&row.StageName, &row.SymptomName, &row.ReportCount, &row.Rank); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// placeholders renders "?, ?, ..." for an IN clause plus the matching args.
func placeholders(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	marks := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id
		marks[i] = "?"
	}
	return strings.Join(marks, ", "), args
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
