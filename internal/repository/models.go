package repository

import (
	"time"

	"github.com/kursadbilgin/fulfillment-bridge/internal/domain"
)

// FulfillmentRecordModel is the persistence model for fulfillment_records.
type FulfillmentRecordModel struct {
	ID            string         `gorm:"type:uuid;primaryKey"`
	OrderID       int64          `gorm:"not null"`
	OrderName     string         `gorm:"type:varchar(64);not null"`
	CorrelationID string         `gorm:"type:varchar(36);not null"`
	Outcome       domain.Outcome `gorm:"type:varchar(20);not null"`
	TrackingID    *string        `gorm:"type:varchar(64)"`
	City          *string        `gorm:"type:varchar(128)"`
	SubDivision   *string        `gorm:"type:varchar(128)"`
	Detail        *string        `gorm:"type:text"`
	CreatedAt     time.Time
}

func (FulfillmentRecordModel) TableName() string {
	return "fulfillment_records"
}

func recordModelFromDomain(rec *domain.FulfillmentRecord) *FulfillmentRecordModel {
	if rec == nil {
		return nil
	}

	return &FulfillmentRecordModel{
		ID:            rec.ID,
		OrderID:       rec.OrderID,
		OrderName:     rec.OrderName,
		CorrelationID: rec.CorrelationID,
		Outcome:       rec.Outcome,
		TrackingID:    rec.TrackingID,
		City:          rec.City,
		SubDivision:   rec.SubDivision,
		Detail:        rec.Detail,
		CreatedAt:     rec.CreatedAt,
	}
}

func recordModelToDomain(m *FulfillmentRecordModel) *domain.FulfillmentRecord {
	if m == nil {
		return nil
	}

	return &domain.FulfillmentRecord{
		ID:            m.ID,
		OrderID:       m.OrderID,
		OrderName:     m.OrderName,
		CorrelationID: m.CorrelationID,
		Outcome:       m.Outcome,
		TrackingID:    m.TrackingID,
		City:          m.City,
		SubDivision:   m.SubDivision,
		Detail:        m.Detail,
		CreatedAt:     m.CreatedAt,
	}
}
