package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fdonboard/backend/internal/model"
)

type PlanRepository struct {
	db *sqlx.DB
}

func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// clock_timestamp advances within a transaction, so conditions saved together
// keep their insertion order in created_at.
const insertConditionQuery = `
	INSERT INTO interest_rate_conditions
		(id, fd_plan_id, condition_type, min_tenure_months, max_tenure_months,
		 interest_rate, penalty_rate, penalty_amount, description, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, clock_timestamp())
	RETURNING created_at`

// CreateWithConditions inserts a plan and all of its conditions in one transaction.
func (r *PlanRepository) CreateWithConditions(ctx context.Context, plan *model.FDPlan) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create plan: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO fd_plans
			(id, bank_id, plan_name, minimum_amount, maximum_amount, tenure_months,
			 base_interest_rate, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`

	plan.ID = uuid.New()
	err = tx.QueryRowxContext(ctx, query,
		plan.ID, plan.BankID, plan.PlanName, plan.MinimumAmount, plan.MaximumAmount,
		plan.TenureMonths, plan.BaseInterestRate, plan.Description, plan.IsActive,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create plan: %w", mapPlanError(err))
	}

	if err := insertConditions(ctx, tx, plan); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create plan: %w", err)
	}
	return nil
}

func insertConditions(ctx context.Context, tx *sqlx.Tx, plan *model.FDPlan) error {
	for i := range plan.Conditions {
		c := &plan.Conditions[i]
		c.ID = uuid.New()
		c.FDPlanID = plan.ID
		err := tx.QueryRowxContext(ctx, insertConditionQuery,
			c.ID, c.FDPlanID, c.ConditionType, c.MinTenureMonths, c.MaxTenureMonths,
			c.InterestRate, c.PenaltyRate, c.PenaltyAmount, c.Description,
		).Scan(&c.CreatedAt)
		if err != nil {
			return fmt.Errorf("create condition: %w", err)
		}
	}
	return nil
}

// GetByID returns a plan with its conditions.
func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FDPlan, error) {
	var plan model.FDPlan
	query := `SELECT * FROM fd_plans WHERE id = $1`
	err := r.db.GetContext(ctx, &plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	plans := []model.FDPlan{plan}
	if err := r.loadConditions(ctx, plans); err != nil {
		return nil, err
	}
	return &plans[0], nil
}

// List returns plans matching filter, each with its conditions.
func (r *PlanRepository) List(ctx context.Context, filter model.PlanFilter) ([]model.FDPlan, error) {
	query := `SELECT * FROM fd_plans WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.BankID != nil {
		query += fmt.Sprintf(" AND bank_id = $%d", argNum)
		args = append(args, *filter.BankID)
		argNum++
	}

	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argNum)
		args = append(args, *filter.IsActive)
		argNum++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (plan_name ILIKE $%d OR description ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+filter.Search+"%")
		argNum++
	}

	if filter.TenureMonths != nil {
		query += fmt.Sprintf(" AND tenure_months = $%d", argNum)
		args = append(args, *filter.TenureMonths)
		argNum++
	}

	if filter.Amount != nil {
		query += fmt.Sprintf(" AND minimum_amount <= $%d AND (maximum_amount IS NULL OR maximum_amount >= $%d)", argNum, argNum)
		args = append(args, *filter.Amount)
		argNum++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += fmt.Sprintf(" ORDER BY plan_name ASC, id ASC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, limit, filter.Offset)

	plans := []model.FDPlan{}
	if err := r.db.SelectContext(ctx, &plans, query, args...); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	if err := r.loadConditions(ctx, plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// loadConditions fills Conditions for every plan with a single query.
func (r *PlanRepository) loadConditions(ctx context.Context, plans []model.FDPlan) error {
	if len(plans) == 0 {
		return nil
	}

	ids := make([]string, len(plans))
	index := make(map[uuid.UUID]int, len(plans))
	for i := range plans {
		ids[i] = plans[i].ID.String()
		index[plans[i].ID] = i
		plans[i].Conditions = []model.InterestRateCondition{}
	}

	query := `
		SELECT * FROM interest_rate_conditions
		WHERE fd_plan_id = ANY($1::uuid[])
		ORDER BY condition_type DESC, min_tenure_months ASC NULLS LAST, created_at ASC`

	var conditions []model.InterestRateCondition
	if err := r.db.SelectContext(ctx, &conditions, query, pq.StringArray(ids)); err != nil {
		return fmt.Errorf("list conditions: %w", err)
	}

	for _, c := range conditions {
		if i, ok := index[c.FDPlanID]; ok {
			plans[i].Conditions = append(plans[i].Conditions, c)
		}
	}
	return nil
}

// Update saves plan fields. When replaceConditions is set the stored conditions are
// swapped for plan.Conditions in the same transaction.
func (r *PlanRepository) Update(ctx context.Context, plan *model.FDPlan, replaceConditions bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update plan: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		UPDATE fd_plans
		SET plan_name = $2, minimum_amount = $3, maximum_amount = $4, tenure_months = $5,
		    base_interest_rate = $6, description = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		plan.ID, plan.PlanName, plan.MinimumAmount, plan.MaximumAmount, plan.TenureMonths,
		plan.BaseInterestRate, plan.Description, plan.IsActive,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPlanNotFound
	}
	if err != nil {
		return fmt.Errorf("update plan: %w", mapPlanError(err))
	}

	if replaceConditions {
		if _, err := tx.ExecContext(ctx, `DELETE FROM interest_rate_conditions WHERE fd_plan_id = $1`, plan.ID); err != nil {
			return fmt.Errorf("clear conditions: %w", err)
		}
		if err := insertConditions(ctx, tx, plan); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM fd_plans WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// NameExists reports whether the bank already has a plan called name.
func (r *PlanRepository) NameExists(ctx context.Context, bankID uuid.UUID, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM fd_plans WHERE bank_id = $1 AND plan_name = $2)`
	if err := r.db.GetContext(ctx, &exists, query, bankID, name); err != nil {
		return false, fmt.Errorf("check plan name: %w", err)
	}
	return exists, nil
}

func (r *PlanRepository) AddCondition(ctx context.Context, c *model.InterestRateCondition) error {
	c.ID = uuid.New()
	err := r.db.QueryRowxContext(ctx, insertConditionQuery,
		c.ID, c.FDPlanID, c.ConditionType, c.MinTenureMonths, c.MaxTenureMonths,
		c.InterestRate, c.PenaltyRate, c.PenaltyAmount, c.Description,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("add condition: %w", err)
	}
	return nil
}

func (r *PlanRepository) DeleteCondition(ctx context.Context, planID, conditionID uuid.UUID) error {
	query := `DELETE FROM interest_rate_conditions WHERE id = $1 AND fd_plan_id = $2`
	result, err := r.db.ExecContext(ctx, query, conditionID, planID)
	if err != nil {
		return fmt.Errorf("delete condition: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrConditionNotFound
	}
	return nil
}
