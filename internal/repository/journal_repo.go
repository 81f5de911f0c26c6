package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kursadbilgin/fulfillment-bridge/internal/domain"
)

type ListParams struct {
	OrderID  *int64
	Outcome  *domain.Outcome
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// JournalRepository is the audit trail of pipeline invocations.
type JournalRepository interface {
	Record(ctx context.Context, rec *domain.FulfillmentRecord) error
	GetByID(ctx context.Context, id string) (*domain.FulfillmentRecord, error)
	List(ctx context.Context, params ListParams) ([]domain.FulfillmentRecord, int64, error)
}

type GormJournalRepo struct {
	db *gorm.DB
}

func NewGormJournalRepo(db *gorm.DB) *GormJournalRepo {
	return &GormJournalRepo{db: db}
}

func (r *GormJournalRepo) Record(ctx context.Context, rec *domain.FulfillmentRecord) error {
	model := recordModelFromDomain(rec)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if rec != nil {
		*rec = *recordModelToDomain(model)
	}
	return nil
}

func (r *GormJournalRepo) GetByID(ctx context.Context, id string) (*domain.FulfillmentRecord, error) {
	var model FulfillmentRecordModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return recordModelToDomain(&model), nil
}

func (r *GormJournalRepo) List(ctx context.Context, params ListParams) ([]domain.FulfillmentRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&FulfillmentRecordModel{})

	if params.OrderID != nil {
		query = query.Where("order_id = ?", *params.OrderID)
	}
	if params.Outcome != nil {
		query = query.Where("outcome = ?", *params.Outcome)
	}
	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("created_at <= ?", *params.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := max(params.Page, 1)
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	pageSize = min(pageSize, 100)

	var models []FulfillmentRecordModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	records := make([]domain.FulfillmentRecord, 0, len(models))
	for i := range models {
		records = append(records, *recordModelToDomain(&models[i]))
	}

	return records, total, nil
}
