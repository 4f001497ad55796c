package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/jackc/pgx/v5"
)

type JobBoardRepository struct {
	server *server.Server
}

func NewJobBoardRepository(s *server.Server) *JobBoardRepository {
	return &JobBoardRepository{server: s}
}

// ListApprovedJobs returns approved job posts, newest first, with the
// affiliation they were posted through when there is one.
func (r *JobBoardRepository) ListApprovedJobs(ctx context.Context) ([]model.JobPostListing, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT j.id, j.title, j.company_name, j.location, j.description, j.status,
		       j.affiliation_id, j.created, j.modified,
		       a.description AS affiliation_description,
		       a.url AS affiliation_url
		FROM job_posts j
		LEFT JOIN affiliations a ON a.id = j.affiliation_id
		WHERE j.status = @status
		ORDER BY j.created DESC, j.id DESC`,
		pgx.NamedArgs{"status": model.JobPostApproved})
	if err != nil {
		return nil, fmt.Errorf("failed to list job posts: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.JobPostListing])
}

func (r *JobBoardRepository) ListAffiliations(ctx context.Context) ([]model.Affiliation, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT id, description, url, created, modified
		FROM affiliations
		ORDER BY description, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list affiliations: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Affiliation])
}
