package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fdonboard/backend/internal/model"
)

const defaultListLimit = 100

type BankRepository struct {
	db *sqlx.DB
}

func NewBankRepository(db *sqlx.DB) *BankRepository {
	return &BankRepository{db: db}
}

func (r *BankRepository) Create(ctx context.Context, bank *model.Bank) error {
	query := `
		INSERT INTO banks (id, name, code, description, contact_person, email, phone, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`

	bank.ID = uuid.New()
	err := r.db.QueryRowxContext(ctx, query,
		bank.ID, bank.Name, bank.Code, bank.Description, bank.ContactPerson,
		bank.Email, bank.Phone, bank.Address, bank.IsActive,
	).Scan(&bank.CreatedAt, &bank.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create bank: %w", mapBankError(err))
	}
	return nil
}

func (r *BankRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	var bank model.Bank
	query := `SELECT * FROM banks WHERE id = $1`
	err := r.db.GetContext(ctx, &bank, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBankNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bank: %w", err)
	}
	return &bank, nil
}

// List returns banks with their plan counts, ordered by name.
func (r *BankRepository) List(ctx context.Context, filter model.BankFilter) ([]model.BankWithPlanCount, error) {
	query := `
		SELECT b.*, COUNT(p.id) AS plan_count
		FROM banks b
		LEFT JOIN fd_plans p ON p.bank_id = b.id
		WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (b.name ILIKE $%d OR b.code ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+filter.Search+"%")
		argNum++
	}

	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND b.is_active = $%d", argNum)
		args = append(args, *filter.IsActive)
		argNum++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += fmt.Sprintf(" GROUP BY b.id ORDER BY b.name ASC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, limit, filter.Offset)

	banks := []model.BankWithPlanCount{}
	if err := r.db.SelectContext(ctx, &banks, query, args...); err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	return banks, nil
}

func (r *BankRepository) Update(ctx context.Context, bank *model.Bank) error {
	query := `
		UPDATE banks
		SET name = $2, code = $3, description = $4, contact_person = $5, email = $6,
		    phone = $7, address = $8, is_active = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		bank.ID, bank.Name, bank.Code, bank.Description, bank.ContactPerson,
		bank.Email, bank.Phone, bank.Address, bank.IsActive,
	).Scan(&bank.CreatedAt, &bank.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBankNotFound
	}
	if err != nil {
		return fmt.Errorf("update bank: %w", mapBankError(err))
	}
	return nil
}

// ToggleActive flips is_active and returns the updated bank.
func (r *BankRepository) ToggleActive(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	var bank model.Bank
	query := `UPDATE banks SET is_active = NOT is_active, updated_at = NOW() WHERE id = $1 RETURNING *`
	err := r.db.GetContext(ctx, &bank, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBankNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("toggle bank: %w", err)
	}
	return &bank, nil
}

// Delete removes a bank. Plans, conditions and uploads go with it.
func (r *BankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM banks WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete bank: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBankNotFound
	}
	return nil
}
