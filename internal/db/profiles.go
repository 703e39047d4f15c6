package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/minjae/jobbridge/internal/wizard"
)

// SaveProfile upserts the core job-seeker profile row from a wizard
// submission. Sub-resources are written separately.
func (db *DB) SaveProfile(ctx context.Context, userID uuid.UUID, p wizard.JobseekerPayload) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO jobseeker_profiles (user_id, full_name, nationality, visa_status, phone, bio, onboarding_completed, user_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
		   full_name = EXCLUDED.full_name,
		   nationality = EXCLUDED.nationality,
		   visa_status = EXCLUDED.visa_status,
		   phone = EXCLUDED.phone,
		   bio = EXCLUDED.bio,
		   onboarding_completed = EXCLUDED.onboarding_completed,
		   user_type = EXCLUDED.user_type,
		   updated_at = NOW()`,
		userID, p.FullName, p.Nationality, p.VisaStatus, p.Phone, p.Bio, p.OnboardingCompleted, p.UserType,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// replaceRows deletes a user's rows in a sub-resource table and re-inserts
// the given values, all within one transaction
func (db *DB) replaceRows(ctx context.Context, table, column string, userID uuid.UUID, values []string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, table), userID,
	); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	for i, v := range values {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (user_id, %s, sort_order) VALUES ($1, $2, $3)`, table, column),
			userID, v, i,
		); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return nil
}

// ReplaceSkills replaces the user's skill list
func (db *DB) ReplaceSkills(ctx context.Context, userID uuid.UUID, skills []string) error {
	return db.replaceRows(ctx, "jobseeker_skills", "skill", userID, skills)
}

// ReplaceDesiredPositions replaces the user's desired position list
func (db *DB) ReplaceDesiredPositions(ctx context.Context, userID uuid.UUID, positions []string) error {
	return db.replaceRows(ctx, "jobseeker_desired_positions", "position", userID, positions)
}

// ReplacePreferredLocations replaces the user's preferred location list
func (db *DB) ReplacePreferredLocations(ctx context.Context, userID uuid.UUID, locations []string) error {
	return db.replaceRows(ctx, "jobseeker_preferred_locations", "location", userID, locations)
}

// ReplaceLanguages replaces the user's spoken-language list
func (db *DB) ReplaceLanguages(ctx context.Context, userID uuid.UUID, languages []wizard.Language) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM jobseeker_languages WHERE user_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("failed to clear languages: %w", err)
	}
	for i, l := range languages {
		if _, err := tx.Exec(ctx,
			`INSERT INTO jobseeker_languages (user_id, name, level, sort_order) VALUES ($1, $2, $3, $4)`,
			userID, l.Name, l.Level, i,
		); err != nil {
			return fmt.Errorf("failed to insert language: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit languages: %w", err)
	}
	return nil
}

// SaveSalaryRange stores the user's desired salary band on the profile row
func (db *DB) SaveSalaryRange(ctx context.Context, userID uuid.UUID, r wizard.SalaryRange) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobseeker_profiles
		 SET desired_salary_min = $2, desired_salary_max = $3, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, r.Min, r.Max,
	)
	if err != nil {
		return fmt.Errorf("failed to save salary range: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Kind: "jobseeker profile", ID: userID}
	}
	return nil
}

// GetFullProfile retrieves a job-seeker profile with all sub-resources;
// returns nil when the user has no profile yet
func (db *DB) GetFullProfile(ctx context.Context, userID uuid.UUID) (*FullProfile, error) {
	var fp FullProfile
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, full_name, COALESCE(nationality, ''), COALESCE(visa_status, ''),
		        COALESCE(phone, ''), COALESCE(bio, ''), desired_salary_min, desired_salary_max,
		        onboarding_completed, user_type, created_at, updated_at
		 FROM jobseeker_profiles WHERE user_id = $1`,
		userID,
	).Scan(&fp.UserID, &fp.FullName, &fp.Nationality, &fp.VisaStatus,
		&fp.Phone, &fp.Bio, &fp.DesiredSalaryMin, &fp.DesiredSalaryMax,
		&fp.OnboardingCompleted, &fp.UserType, &fp.CreatedAt, &fp.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	fp.Skills, err = db.listStrings(ctx, "jobseeker_skills", "skill", userID)
	if err != nil {
		return nil, err
	}
	fp.DesiredPositions, err = db.listStrings(ctx, "jobseeker_desired_positions", "position", userID)
	if err != nil {
		return nil, err
	}
	fp.PreferredLocations, err = db.listStrings(ctx, "jobseeker_preferred_locations", "location", userID)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT name, level FROM jobseeker_languages WHERE user_id = $1 ORDER BY sort_order`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l ProfileLanguage
		if err := rows.Scan(&l.Name, &l.Level); err != nil {
			return nil, fmt.Errorf("failed to scan language: %w", err)
		}
		fp.Languages = append(fp.Languages, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate languages: %w", err)
	}
	return &fp, nil
}

func (db *DB) listStrings(ctx context.Context, table, column string, userID uuid.UUID) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY sort_order`, column, table),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return values, nil
}
