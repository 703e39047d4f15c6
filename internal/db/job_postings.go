package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateJobPosting creates a new job posting and returns its ID
func (db *DB) CreateJobPosting(ctx context.Context, input JobPostingCreateInput) (uuid.UUID, error) {
	var sourceURL *string
	if input.SourceURL != "" {
		sourceURL = &input.SourceURL
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (company_id, title_ko, title_en, description, location,
		                           employment_type, salary_min, salary_max, visa_sponsored, source_url, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)
		 RETURNING id`,
		input.CompanyID, input.TitleKo, input.TitleEn, input.Description, input.Location,
		input.EmploymentType, input.SalaryMin, input.SalaryMax, input.VisaSponsored, sourceURL,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job posting: %w", err)
	}
	return id, nil
}

const jobPostingColumns = `jp.id, jp.company_id, COALESCE(c.name_ko, ''), jp.title_ko, COALESCE(jp.title_en, ''),
	        COALESCE(jp.description, ''), COALESCE(jp.location, ''), COALESCE(jp.employment_type, ''),
	        jp.salary_min, jp.salary_max, jp.visa_sponsored, jp.active, jp.source_url,
	        jp.display_position, jp.display_priority, jp.created_at, jp.updated_at`

func scanJobPosting(row pgx.Row) (*JobPosting, error) {
	var p JobPosting
	err := row.Scan(&p.ID, &p.CompanyID, &p.CompanyName, &p.TitleKo, &p.TitleEn,
		&p.Description, &p.Location, &p.EmploymentType,
		&p.SalaryMin, &p.SalaryMax, &p.VisaSponsored, &p.Active, &p.SourceURL,
		&p.DisplayPosition, &p.DisplayPriority, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetJobPosting retrieves a posting by ID; returns nil when not found
func (db *DB) GetJobPosting(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings jp
		 LEFT JOIN companies c ON c.id = jp.company_id
		 WHERE jp.id = $1`,
		id,
	)
	p, err := scanJobPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return p, nil
}

// ListJobPostings retrieves postings matching the options, newest first,
// along with the total count before pagination
func (db *DB) ListJobPostings(ctx context.Context, opts ListJobPostingsOptions) ([]JobPosting, int, error) {
	var conditions []string
	var args []interface{}

	if opts.CompanyID != nil {
		args = append(args, *opts.CompanyID)
		conditions = append(conditions, fmt.Sprintf("jp.company_id = $%d", len(args)))
	}
	if opts.Tier != nil {
		args = append(args, *opts.Tier)
		conditions = append(conditions, fmt.Sprintf("jp.display_position = $%d", len(args)))
	}
	if opts.ActiveOnly {
		conditions = append(conditions, "jp.active")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_postings jp`+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count job postings: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	limitClause := fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, opts.Offset)
	offsetClause := fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings jp
		 LEFT JOIN companies c ON c.id = jp.company_id`+
			where+` ORDER BY jp.created_at DESC`+limitClause+offsetClause,
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		p, err := scanJobPosting(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate job postings: %w", err)
	}
	return postings, total, nil
}

// ListPlacedJobPostings retrieves all active postings currently assigned to a
// display slot, ordered by tier then priority
func (db *DB) ListPlacedJobPostings(ctx context.Context) ([]JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings jp
		 LEFT JOIN companies c ON c.id = jp.company_id
		 WHERE jp.display_position IS NOT NULL AND jp.display_priority IS NOT NULL AND jp.active
		 ORDER BY jp.display_position, jp.display_priority`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list placed job postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		p, err := scanJobPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan placed job posting: %w", err)
		}
		postings = append(postings, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate placed job postings: %w", err)
	}
	return postings, nil
}

// UpdateJobPosting applies the non-nil fields of input to a posting
func (db *DB) UpdateJobPosting(ctx context.Context, id uuid.UUID, input JobPostingUpdateInput) error {
	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.TitleKo != nil {
		add("title_ko", *input.TitleKo)
	}
	if input.TitleEn != nil {
		add("title_en", *input.TitleEn)
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.Location != nil {
		add("location", *input.Location)
	}
	if input.EmploymentType != nil {
		add("employment_type", *input.EmploymentType)
	}
	if input.SalaryMin != nil {
		add("salary_min", *input.SalaryMin)
	}
	if input.SalaryMax != nil {
		add("salary_max", *input.SalaryMax)
	}
	if input.VisaSponsored != nil {
		add("visa_sponsored", *input.VisaSponsored)
	}
	if input.Active != nil {
		add("active", *input.Active)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE job_postings SET %s, updated_at = NOW() WHERE id = $%d`,
		strings.Join(sets, ", "), len(args),
	)
	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Kind: "job posting", ID: id}
	}
	return nil
}

// DeleteJobPosting removes a posting
func (db *DB) DeleteJobPosting(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM job_postings WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Kind: "job posting", ID: id}
	}
	return nil
}

// AssignDisplaySlot places a posting into a display slot. The update is
// conditional: it succeeds only while no other active posting holds the same
// (position, priority) pair. The NOT EXISTS guard reads a snapshot, so two
// concurrent assignments of different postings to the same free slot can both
// pass it; the partial unique index on (display_position, display_priority)
// is the backstop, and its violation surfaces as the same SlotConflictError.
func (db *DB) AssignDisplaySlot(ctx context.Context, id uuid.UUID, position string, priority int) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_postings
		 SET display_position = $2, display_priority = $3, updated_at = NOW()
		 WHERE id = $1
		   AND NOT EXISTS (
		     SELECT 1 FROM job_postings
		     WHERE display_position = $2 AND display_priority = $3 AND active AND id <> $1
		   )`,
		id, position, priority,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &SlotConflictError{Position: position, Priority: priority}
		}
		return fmt.Errorf("failed to assign display slot: %w", err)
	}
	if result.RowsAffected() == 0 {
		// Zero rows means either the posting does not exist or the slot guard
		// refused the write; disambiguate before reporting.
		var exists bool
		err := db.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM job_postings WHERE id = $1)`, id,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check job posting existence: %w", err)
		}
		if !exists {
			return &NotFoundError{Kind: "job posting", ID: id}
		}
		return &SlotConflictError{Position: position, Priority: priority}
	}
	return nil
}

// ClearDisplaySlot removes a posting from its display slot
func (db *DB) ClearDisplaySlot(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_postings
		 SET display_position = NULL, display_priority = NULL, updated_at = NOW()
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to clear display slot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Kind: "job posting", ID: id}
	}
	return nil
}
