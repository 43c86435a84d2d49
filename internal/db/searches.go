package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/exec-search/internal/types"
)

// CreateSearch inserts the run for state, or refreshes it when the id already exists
func (db *DB) CreateSearch(ctx context.Context, state *types.SearchState) error {
	id, err := parseSearchID(state.ID)
	if err != nil {
		return err
	}
	requirements, err := json.Marshal(state.ClientRequirements)
	if err != nil {
		return fmt.Errorf("failed to marshal requirements: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO searches (id, query, role_category, role_title, requirements, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET role_category = $3, role_title = $4, requirements = $5, status = $6`,
		id, state.Query, string(state.RoleCategory), state.RoleTitle, requirements, string(state.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to create search: %w", err)
	}
	return nil
}

// SaveCandidates replaces the vetted candidates of a search, keeping their order
func (db *DB) SaveCandidates(ctx context.Context, searchID string, vetted []types.Candidate) error {
	id, err := parseSearchID(searchID)
	if err != nil {
		return err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM vetted_candidates WHERE search_id = $1`, id)
	for i, c := range vetted {
		flags, err := json.Marshal(c.RedFlags)
		if err != nil {
			return fmt.Errorf("failed to marshal red flags: %w", err)
		}
		candidate, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal candidate: %w", err)
		}
		batch.Queue(
			`INSERT INTO vetted_candidates
			   (search_id, position, candidate_id, name, auditor_score, domain_score, matchmaker_score,
			    final_fit, red_flags, vetting_incomplete, candidate)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			id, i, c.ID, c.Name, c.AuditorScore, c.DomainScore, c.MatchmakerScore,
			string(c.FinalFit), flags, c.VettingIncomplete, candidate,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save candidates: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit candidates: %w", err)
	}
	return nil
}

// CompleteSearch stores the final status and report of a search
func (db *DB) CompleteSearch(ctx context.Context, state *types.SearchState) error {
	id, err := parseSearchID(state.ID)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`UPDATE searches SET status = $1, final_report = $2, completed_at = NOW() WHERE id = $3`,
		string(state.Status), state.FinalReport, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete search: %w", err)
	}
	return nil
}

// GetSearch retrieves a search by id. It returns nil when no search exists.
func (db *DB) GetSearch(ctx context.Context, searchID string) (*Search, error) {
	id, err := parseSearchID(searchID)
	if err != nil {
		return nil, err
	}

	var s Search
	var requirements []byte
	err = db.pool.QueryRow(ctx,
		`SELECT id, query, role_category, role_title, requirements, status, final_report, created_at, completed_at
		 FROM searches WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Query, &s.RoleCategory, &s.RoleTitle, &requirements, &s.Status, &s.FinalReport, &s.CreatedAt, &s.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get search: %w", err)
	}
	if err := json.Unmarshal(requirements, &s.Requirements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
	}
	return &s, nil
}

// ListCandidates returns the vetted candidates of a search in their saved order
func (db *DB) ListCandidates(ctx context.Context, searchID string) ([]types.Candidate, error) {
	id, err := parseSearchID(searchID)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT candidate FROM vetted_candidates WHERE search_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []types.Candidate{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		var c types.Candidate
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

func parseSearchID(searchID string) (uuid.UUID, error) {
	id, err := uuid.Parse(searchID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid search id %q: %w", searchID, err)
	}
	return id, nil
}
