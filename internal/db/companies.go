package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/minjae/jobbridge/internal/wizard"
)

const companyColumns = `id, owner_id, name_ko, COALESCE(name_en, ''), COALESCE(registration_number, ''),
	        COALESCE(industry, ''), COALESCE(size, ''), COALESCE(website, ''), COALESCE(description, ''),
	        COALESCE(contact_name, ''), COALESCE(contact_phone, ''), created_at, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.OwnerID, &c.NameKo, &c.NameEn, &c.RegistrationNumber,
		&c.Industry, &c.Size, &c.Website, &c.Description,
		&c.ContactName, &c.ContactPhone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCompany retrieves a company by ID; returns nil when not found
func (db *DB) GetCompany(ctx context.Context, id uuid.UUID) (*Company, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id,
	)
	c, err := scanCompany(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// GetCompanyByOwner retrieves the company owned by a user account; returns
// nil when the account has no company yet
func (db *DB) GetCompanyByOwner(ctx context.Context, ownerID uuid.UUID) (*Company, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE owner_id = $1`, ownerID,
	)
	c, err := scanCompany(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company by owner: %w", err)
	}
	return c, nil
}

// SaveCompany upserts the company owned by a user account from a signup
// submission. One account owns at most one company.
func (db *DB) SaveCompany(ctx context.Context, ownerID uuid.UUID, p wizard.CompanyPayload) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO companies (owner_id, name_ko, name_en, registration_number, industry,
		                        size, website, description, contact_name, contact_phone)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (owner_id) DO UPDATE SET
		   name_ko = EXCLUDED.name_ko,
		   name_en = EXCLUDED.name_en,
		   registration_number = EXCLUDED.registration_number,
		   industry = EXCLUDED.industry,
		   size = EXCLUDED.size,
		   website = EXCLUDED.website,
		   description = EXCLUDED.description,
		   contact_name = EXCLUDED.contact_name,
		   contact_phone = EXCLUDED.contact_phone,
		   updated_at = NOW()`,
		ownerID, p.NameKo, p.NameEn, p.RegistrationNumber, p.Industry,
		p.Size, p.Website, p.Description, p.ContactName, p.ContactPhone,
	)
	if err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}
