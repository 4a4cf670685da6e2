package billing

import (
	"context"
	"errors"
	"fmt"

	"costledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service looks up bill rates with a defined fallback hierarchy:
// person-specific rate, then job-title rate, then expenditure-type rate,
// then zero.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RateQuery identifies the rate being looked up. PersonID, JobTitle and
// ExpenditureTypeID are each optional; unset dimensions are skipped in
// the fallback chain.
type RateQuery struct {
	ScheduleID        uint
	PersonID          *uint
	JobTitle          string
	ExpenditureTypeID *uint
}

// LookupRate resolves the most specific rate defined for the query.
func (s *Service) LookupRate(ctx context.Context, q RateQuery) (decimal.Decimal, error) {
	var schedule models.BillRateSchedule
	if err := s.db.WithContext(ctx).First(&schedule, q.ScheduleID).Error; err != nil {
		return decimal.Zero, fmt.Errorf("loading bill-rate schedule %d: %w", q.ScheduleID, err)
	}

	jobTitle := q.JobTitle

	if q.PersonID != nil {
		rate, found, err := s.find(ctx, "schedule_id = ? AND person_id = ?", q.ScheduleID, *q.PersonID)
		if err != nil {
			return decimal.Zero, err
		}
		if found {
			return rate, nil
		}

		// Fall back to the person's job title when none was given.
		if jobTitle == "" {
			var person models.Person
			err := s.db.WithContext(ctx).First(&person, *q.PersonID).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return decimal.Zero, fmt.Errorf("loading person %d: %w", *q.PersonID, err)
			}
			jobTitle = person.JobTitle
		}
	}

	if jobTitle != "" {
		rate, found, err := s.find(ctx, "schedule_id = ? AND person_id IS NULL AND job_title = ?", q.ScheduleID, jobTitle)
		if err != nil {
			return decimal.Zero, err
		}
		if found {
			return rate, nil
		}
	}

	if q.ExpenditureTypeID != nil {
		rate, found, err := s.find(ctx,
			"schedule_id = ? AND person_id IS NULL AND job_title IS NULL AND expenditure_type_id = ?",
			q.ScheduleID, *q.ExpenditureTypeID)
		if err != nil {
			return decimal.Zero, err
		}
		if found {
			return rate, nil
		}
	}

	return decimal.Zero, nil
}

func (s *Service) find(ctx context.Context, query string, args ...any) (decimal.Decimal, bool, error) {
	var rate models.BillRate
	err := s.db.WithContext(ctx).Where(query, args...).First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("looking up bill rate: %w", err)
	}
	return rate.Rate, true, nil
}
