package importer

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/model"
	"github.com/fdonboard/backend/internal/repository"
)

type fakeLedger struct {
	mu       sync.Mutex
	status   map[uuid.UUID]model.UploadStatus
	counters map[uuid.UUID]model.UploadCounters
	details  map[uuid.UUID]string
	errors   []model.UploadError
}

func newFakeLedger(ids ...uuid.UUID) *fakeLedger {
	l := &fakeLedger{
		status:   make(map[uuid.UUID]model.UploadStatus),
		counters: make(map[uuid.UUID]model.UploadCounters),
		details:  make(map[uuid.UUID]string),
	}
	for _, id := range ids {
		l.status[id] = model.UploadStatusPending
	}
	return l
}

func (l *fakeLedger) transition(id uuid.UUID, next model.UploadStatus) error {
	cur, ok := l.status[id]
	if !ok {
		return errors.New("upload not found")
	}
	if !cur.CanTransitionTo(next) {
		return errors.New("invalid transition " + string(cur) + " -> " + string(next))
	}
	l.status[id] = next
	return nil
}

func (l *fakeLedger) MarkProcessing(_ context.Context, id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transition(id, model.UploadStatusProcessing)
}

func (l *fakeLedger) Complete(_ context.Context, id uuid.UUID, c model.UploadCounters) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.transition(id, model.UploadStatusCompleted); err != nil {
		return err
	}
	l.counters[id] = c
	return nil
}

func (l *fakeLedger) Fail(_ context.Context, id uuid.UUID, details string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.transition(id, model.UploadStatusFailed); err != nil {
		return err
	}
	l.details[id] = details
	return nil
}

func (l *fakeLedger) AppendErrors(_ context.Context, errs []model.UploadError) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, errs...)
	return nil
}

func (l *fakeLedger) statusOf(id uuid.UUID) model.UploadStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status[id]
}

func (l *fakeLedger) errorsForRow(row int) []model.UploadError {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.UploadError
	for _, e := range l.errors {
		if e.RowNumber == row {
			out = append(out, e)
		}
	}
	return out
}

type fakePlans struct {
	mu      sync.Mutex
	names   map[string]bool
	created []*model.FDPlan
	failFor map[string]error
}

func newFakePlans(existing ...string) *fakePlans {
	p := &fakePlans{names: make(map[string]bool), failFor: make(map[string]error)}
	for _, n := range existing {
		p.names[n] = true
	}
	return p
}

func (p *fakePlans) NameExists(_ context.Context, _ uuid.UUID, name string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.names[name], nil
}

func (p *fakePlans) CreateWithConditions(_ context.Context, plan *model.FDPlan) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.failFor[plan.PlanName]; ok {
		return err
	}
	if p.names[plan.PlanName] {
		return apperror.DuplicatePlan(plan.PlanName)
	}
	plan.ID = uuid.New()
	p.names[plan.PlanName] = true
	p.created = append(p.created, plan)
	return nil
}

type fakeBanks struct {
	bank *model.Bank
	err  error
}

func (b *fakeBanks) GetByID(_ context.Context, id uuid.UUID) (*model.Bank, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.bank == nil || b.bank.ID != id {
		return nil, repository.ErrBankNotFound
	}
	return b.bank, nil
}

func activeBank() *model.Bank {
	return &model.Bank{ID: uuid.New(), Name: "State Bank", Code: "SBI", IsActive: true}
}

func newUpload(bankID uuid.UUID) *model.ExcelUpload {
	return &model.ExcelUpload{
		ID:           uuid.New(),
		BankID:       bankID,
		Filename:     "plans.csv",
		UploadStatus: model.UploadStatusPending,
	}
}
