package services

import (
	"context"
	"fmt"
	"strings"
	"svd_ambalaj_server/database"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"
	"svd_ambalaj_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const sampleStatusRequested = "requested"

type SampleService struct {
	logger   *gecho.Logger
	db       *database.DB
	notifier Notifier
	now      func() time.Time
}

func NewSampleService(logger *gecho.Logger, db *database.DB, notifier Notifier) *SampleService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &SampleService{
		logger:   logger,
		db:       db,
		notifier: notifier,
		now:      lib.Now,
	}
}

// CreateSampleRequest stores a storefront sample request. Every field is optional.
func (ss *SampleService) CreateSampleRequest(ctx context.Context, payload structs.SamplePayload) (*structs.SampleRequest, error) {
	now := ss.now()
	row := &tables.SampleRequest{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(payload.Name),
		Company:   strings.TrimSpace(payload.Company),
		Email:     strings.TrimSpace(payload.Email),
		Phone:     strings.TrimSpace(payload.Phone),
		Product:   strings.TrimSpace(payload.Product),
		Quantity:  lib.ToText(payload.Quantity),
		Notes:     strings.TrimSpace(payload.Notes),
		Status:    sampleStatusRequested,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := ss.db.Execute(ctx, func(ctx context.Context, q bun.IDB) error {
		_, err := q.NewInsert().Model(row).Exec(ctx)
		return lib.MapDBError(err)
	})
	if err != nil {
		ss.logger.Error("Failed to store sample request", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to create sample request: %w", err)
	}

	sample := mapSampleRequest(row)
	ss.logger.Info("Sample request created", gecho.Field("id", sample.ID), gecho.Field("product", sample.Product))
	ss.notifier.SampleRequested(sample)

	return &sample, nil
}
