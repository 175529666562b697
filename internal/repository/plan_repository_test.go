package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/model"
)

var (
	planColumns      = []string{"id", "bank_id", "plan_name", "minimum_amount", "maximum_amount", "tenure_months", "base_interest_rate", "description", "is_active", "created_at", "updated_at"}
	conditionColumns = []string{"id", "fd_plan_id", "condition_type", "min_tenure_months", "max_tenure_months", "interest_rate", "penalty_rate", "penalty_amount", "description", "created_at"}
)

func intp(v int) *int { return &v }

func testPlan() *model.FDPlan {
	maxAmount := decimal.NewFromInt(500000)
	return &model.FDPlan{
		BankID:           uuid.New(),
		PlanName:         "Gold",
		MinimumAmount:    decimal.NewFromInt(100000),
		MaximumAmount:    &maxAmount,
		TenureMonths:     12,
		BaseInterestRate: decimal.RequireFromString("0.07"),
		IsActive:         true,
		Conditions: []model.InterestRateCondition{
			{
				ConditionType:   model.ConditionTypePremature,
				MinTenureMonths: intp(0),
				MaxTenureMonths: intp(6),
				InterestRate:    decimal.RequireFromString("0.065"),
				PenaltyRate:     decimal.RequireFromString("0.001"),
				PenaltyAmount:   decimal.Zero,
			},
			{
				ConditionType: model.ConditionTypeMaturity,
				InterestRate:  decimal.RequireFromString("0.07"),
				PenaltyRate:   decimal.Zero,
				PenaltyAmount: decimal.Zero,
				Description:   "Maturity rate",
			},
		},
	}
}

func TestPlanRepository_CreateWithConditions(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	plan := testPlan()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO fd_plans`).
		WithArgs(sqlmock.AnyArg(), plan.BankID, "Gold", plan.MinimumAmount, plan.MaximumAmount, 12, plan.BaseInterestRate, "", true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(`INSERT INTO interest_rate_conditions`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), model.ConditionTypePremature, 0, 6, plan.Conditions[0].InterestRate, plan.Conditions[0].PenaltyRate, decimal.Zero, "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectQuery(`INSERT INTO interest_rate_conditions`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), model.ConditionTypeMaturity, nil, nil, plan.BaseInterestRate, decimal.Zero, decimal.Zero, "Maturity rate").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()

	err := repo.CreateWithConditions(context.Background(), plan)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, plan.ID)
	for _, c := range plan.Conditions {
		assert.NotEqual(t, uuid.Nil, c.ID)
		assert.Equal(t, plan.ID, c.FDPlanID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_CreateWithConditions_StampsEachCondition(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	plan := testPlan()
	first := time.Date(2024, 1, 15, 10, 0, 0, 1000, time.UTC)
	second := first.Add(time.Microsecond)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO fd_plans`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(first, first))
	mock.ExpectQuery(`(?s)INSERT INTO interest_rate_conditions.*clock_timestamp\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(first))
	mock.ExpectQuery(`(?s)INSERT INTO interest_rate_conditions.*clock_timestamp\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(second))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateWithConditions(context.Background(), plan))
	require.Len(t, plan.Conditions, 2)
	assert.True(t, plan.Conditions[0].CreatedAt.Equal(first))
	assert.True(t, plan.Conditions[1].CreatedAt.After(plan.Conditions[0].CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_CreateWithConditions_Duplicate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO fd_plans`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "fd_plans_bank_id_plan_name_key"})
	mock.ExpectRollback()

	err := repo.CreateWithConditions(context.Background(), testPlan())

	assert.ErrorIs(t, err, apperror.ErrDuplicatePlan)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_CreateWithConditions_ConditionFailureRollsBack(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO fd_plans`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(`INSERT INTO interest_rate_conditions`).
		WillReturnError(errors.New("check constraint violated"))
	mock.ExpectRollback()

	err := repo.CreateWithConditions(context.Background(), testPlan())

	assert.ErrorContains(t, err, "create condition")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_GetByID(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM fd_plans WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(planColumns).
			AddRow(id.String(), uuid.New().String(), "Gold", "100000", nil, 12, "0.07", "", true, now, now))
	mock.ExpectQuery(`SELECT \* FROM interest_rate_conditions WHERE fd_plan_id = ANY\(\$1::uuid\[\]\)`).
		WithArgs(pq.StringArray{id.String()}).
		WillReturnRows(sqlmock.NewRows(conditionColumns).
			AddRow(uuid.New().String(), id.String(), "premature", 0, 6, "0.065", "0.001", "0", "", now).
			AddRow(uuid.New().String(), id.String(), "maturity", nil, nil, "0.07", "0", "0", "Maturity rate", now))

	plan, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, plan.ID)
	assert.Nil(t, plan.MaximumAmount)
	require.Len(t, plan.Conditions, 2)
	assert.Equal(t, 6, *plan.Conditions[0].MaxTenureMonths)
	assert.Nil(t, plan.Conditions[1].MinTenureMonths)
	assert.True(t, plan.Conditions[1].InterestRate.Equal(plan.BaseInterestRate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	mock.ExpectQuery(`SELECT \* FROM fd_plans`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_List(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	bankID := uuid.New()
	active := true
	tenure := 12
	amount := decimal.NewFromInt(200000)
	a, b := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM fd_plans WHERE 1=1 AND bank_id = \$1 AND is_active = \$2 AND \(plan_name ILIKE \$3 OR description ILIKE \$3\) AND tenure_months = \$4 AND minimum_amount <= \$5 AND \(maximum_amount IS NULL OR maximum_amount >= \$5\) ORDER BY plan_name ASC, id ASC LIMIT \$6 OFFSET \$7`).
		WithArgs(bankID, true, "%gold%", 12, amount, 25, 0).
		WillReturnRows(sqlmock.NewRows(planColumns).
			AddRow(a.String(), bankID.String(), "Gold", "100000", nil, 12, "0.07", "", true, now, now).
			AddRow(b.String(), bankID.String(), "Gold Plus", "100000", "900000", 12, "0.075", "", true, now, now))
	mock.ExpectQuery(`FROM interest_rate_conditions`).
		WithArgs(pq.StringArray{a.String(), b.String()}).
		WillReturnRows(sqlmock.NewRows(conditionColumns).
			AddRow(uuid.New().String(), b.String(), "maturity", nil, nil, "0.075", "0", "0", "", now))

	plans, err := repo.List(context.Background(), model.PlanFilter{
		BankID:       &bankID,
		IsActive:     &active,
		Search:       "gold",
		TenureMonths: &tenure,
		Amount:       &amount,
		Limit:        25,
	})

	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Empty(t, plans[0].Conditions)
	assert.NotNil(t, plans[0].Conditions)
	assert.Len(t, plans[1].Conditions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_Update_ReplacesConditions(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	plan := testPlan()
	plan.ID = uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE fd_plans`).
		WithArgs(plan.ID, "Gold", plan.MinimumAmount, plan.MaximumAmount, 12, plan.BaseInterestRate, "", true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`DELETE FROM interest_rate_conditions WHERE fd_plan_id = \$1`).
		WithArgs(plan.ID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(`INSERT INTO interest_rate_conditions`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectQuery(`INSERT INTO interest_rate_conditions`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), plan, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_Update_FieldsOnly(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	plan := testPlan()
	plan.ID = uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE fd_plans`).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Update(context.Background(), plan, false)
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_NameExists(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	bankID := uuid.New()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM fd_plans WHERE bank_id = \$1 AND plan_name = \$2\)`).
		WithArgs(bankID, "Gold").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.NameExists(context.Background(), bankID, "Gold")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_AddCondition(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	c := testPlan().Conditions[0]
	c.FDPlanID = uuid.New()

	mock.ExpectQuery(`INSERT INTO interest_rate_conditions`).
		WithArgs(sqlmock.AnyArg(), c.FDPlanID, model.ConditionTypePremature, 0, 6, c.InterestRate, c.PenaltyRate, c.PenaltyAmount, "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	require.NoError(t, repo.AddCondition(context.Background(), &c))
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_DeleteCondition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		affected int64
		errType  error
	}{
		{name: "success", affected: 1},
		{name: "not found", affected: 0, errType: ErrConditionNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			defer func() { _ = db.Close() }()
			repo := NewPlanRepository(db)

			planID, condID := uuid.New(), uuid.New()
			mock.ExpectExec(`DELETE FROM interest_rate_conditions WHERE id = \$1 AND fd_plan_id = \$2`).
				WithArgs(condID, planID).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.DeleteCondition(context.Background(), planID, condID)
			if tt.errType != nil {
				assert.ErrorIs(t, err, tt.errType)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPlanRepository_Delete(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	defer func() { _ = db.Close() }()
	repo := NewPlanRepository(db)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM fd_plans WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrPlanNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
