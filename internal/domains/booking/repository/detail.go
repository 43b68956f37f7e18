package repository

//go:generate go run go.uber.org/mock/mockgen -source=./detail.go -destination=../mocks/detail_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
)

type Detail interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingDetail, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	SoftDelete(ctx context.Context, modifiedBy string, filter gDto.FilterGroup) error
	SumPrices(ctx context.Context, bookingID string) (float64, error)
}

type detailRepositoryImpl struct {
	gRepo.Repository[model.BookingDetail]
	db   *postgres.Connection
	otel otel.Otel
}

func NewDetail(db *postgres.Connection, otel otel.Otel) Detail {
	return &detailRepositoryImpl{
		Repository: gRepo.NewRepository[model.BookingDetail](model.DetailEntityName, model.DetailTableName, model.DetailFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const sumPricesQuery = `SELECT COALESCE(SUM(room_price), 0) FROM booking_details WHERE booking_id = $1 AND deleted = false`

// SumPrices totals the live line items of a booking for the header/detail
// consistency check.
func (repo *detailRepositoryImpl) SumPrices(ctx context.Context, bookingID string) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking_detail.SumPrices")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, sumPricesQuery)

	var total float64

	err := repo.db.Read.GetContext(ctx, &total, sumPricesQuery, bookingID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum booking detail prices: %w", err)
	}

	return total, nil
}
