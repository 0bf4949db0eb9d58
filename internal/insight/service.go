// Package insight computes the population statistics behind a quiz result:
// symptom prevalence, co-occurring symptoms, severity splits and ranked
// specialist recommendations, assembled into one bundle with generated
// explanation text.
package insight

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"amiokay/internal/metrics"
)

// ErrEmptySymptomSet is returned when a result bundle is requested without
// any selected symptoms.
var ErrEmptySymptomSet = errors.New("symptom set must not be empty")

// cooccurringLimit caps how many co-occurring symptoms a bundle carries.
const cooccurringLimit = 5

// topSpecialists is how many ranked specialists get generated explanations.
const topSpecialists = 3

// Generator is the external text-generation collaborator. Failures are
// always recovered locally with deterministic fallback text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Service interface {
	Prevalence(ctx context.Context, symptomIDs []int64, lifeStageID *int64) ([]PrevalenceRow, error)
	Cooccurring(ctx context.Context, symptomIDs []int64, limit int) ([]CooccurringRow, error)
	SeverityDistribution(ctx context.Context, symptomIDs []int64) ([]SeverityRow, error)
	RankSpecialists(ctx context.Context, symptomIDs []int64) ([]SpecialistMatch, error)
	Assemble(ctx context.Context, symptomIDs []int64, lifeStageID *int64, lifeStageName string) (*ResultsBundle, error)
	TopSymptomsByStage(ctx context.Context, perStage int) ([]StageTopSymptom, error)
	QuizIntro(ctx context.Context) string
}

type service struct {
	repo      Repository
	generator Generator
	logger    zerolog.Logger

	introOnce sync.Once
	intro     string
}

func NewService(repo Repository, generator Generator, logger zerolog.Logger) Service {
	return &service{repo: repo, generator: generator, logger: logger}
}

func (s *service) Prevalence(ctx context.Context, symptomIDs []int64, lifeStageID *int64) ([]PrevalenceRow, error) {
	return s.repo.Prevalence(ctx, symptomIDs, lifeStageID)
}

func (s *service) Cooccurring(ctx context.Context, symptomIDs []int64, limit int) ([]CooccurringRow, error) {
	return s.repo.Cooccurring(ctx, symptomIDs, limit)
}

func (s *service) SeverityDistribution(ctx context.Context, symptomIDs []int64) ([]SeverityRow, error) {
	return s.repo.SeverityDistribution(ctx, symptomIDs)
}

func (s *service) TopSymptomsByStage(ctx context.Context, perStage int) ([]StageTopSymptom, error) {
	return s.repo.TopSymptomsByStage(ctx, perStage)
}

// RankSpecialists scores every specialist intersecting the selection and
// assigns dense ranks: tied scores share a rank, the next distinct score
// continues at rank+1. Specialists with no matching symptom never appear.
func (s *service) RankSpecialists(ctx context.Context, symptomIDs []int64) ([]SpecialistMatch, error) {
	matches, err := s.repo.SpecialistScores(ctx, symptomIDs)
	if err != nil {
		return nil, err
	}
	denseRank(matches)
	return matches, nil
}

// denseRank expects matches sorted by score descending and stamps ranks
// in place.
func denseRank(matches []SpecialistMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].TotalScore > matches[j].TotalScore
	})
	rank := 0
	var prev float64
	for i := range matches {
		if i == 0 || matches[i].TotalScore != prev {
			rank++
			prev = matches[i].TotalScore
		}
		matches[i].Rank = rank
	}
}

// Assemble runs the four aggregators for one symptom selection and attaches
// generated explanation text. Aggregator failures fail the request;
// generation failures never do, they fall back to templated text.
func (s *service) Assemble(ctx context.Context, symptomIDs []int64, lifeStageID *int64, lifeStageName string) (*ResultsBundle, error) {
	if len(symptomIDs) == 0 {
		return nil, ErrEmptySymptomSet
	}

	var (
		prevalence  []PrevalenceRow
		cooccurring []CooccurringRow
		severity    []SeverityRow
		specialists []SpecialistMatch
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		prevalence, err = s.repo.Prevalence(gctx, symptomIDs, lifeStageID)
		return err
	})
	g.Go(func() (err error) {
		cooccurring, err = s.repo.Cooccurring(gctx, symptomIDs, cooccurringLimit)
		return err
	})
	g.Go(func() (err error) {
		severity, err = s.repo.SeverityDistribution(gctx, symptomIDs)
		return err
	})
	g.Go(func() (err error) {
		specialists, err = s.repo.SpecialistScores(gctx, symptomIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	denseRank(specialists)

	symptomNames := make([]string, 0, len(prevalence))
	for _, row := range prevalence {
		symptomNames = append(symptomNames, row.SymptomName)
	}

	top := specialists
	if len(top) > topSpecialists {
		top = top[:topSpecialists]
	}

	// Explanation calls are independent; run the narrative and the top
	// specialists concurrently. None of them may fail the bundle.
	var narrative string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		narrative = s.generate(ctx,
			narrativePrompt(symptomNames, lifeStageName, prevalence, cooccurring),
			narrativeFallback)
	}()
	for i := range top {
		wg.Add(1)
		go func(m *SpecialistMatch) {
			defer wg.Done()
			m.Explanation = s.generate(ctx,
				specialistPrompt(m.Type, m.Description, m.MatchedSymptomNames, m.WhatToExpect),
				specialistFallback(m.Type, m.WhatToExpect))
		}(&top[i])
	}
	wg.Wait()

	metrics.ResultsAssembled.Inc()
	return &ResultsBundle{
		SymptomNames:  symptomNames,
		LifeStage:     lifeStageName,
		Prevalence:    prevalence,
		Cooccurrences: cooccurring,
		Narrative:     narrative,
		Specialists:   specialists,
		Severity:      severity,
	}, nil
}

// QuizIntro returns the warm quiz intro line, generated once per process
// and cached; fallback text if generation is unavailable.
func (s *service) QuizIntro(ctx context.Context) string {
	s.introOnce.Do(func() {
		s.intro = s.generate(ctx, introPrompt(), introFallback)
	})
	return s.intro
}

// generate calls the collaborator and substitutes fallback text on any
// failure. Generation problems are logged, never propagated.
func (s *service) generate(ctx context.Context, prompt, fallback string) string {
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("text generation failed, using fallback")
		metrics.GenerationCalls.WithLabelValues("fallback").Inc()
		return fallback
	}
	metrics.GenerationCalls.WithLabelValues("success").Inc()
	return text
}
