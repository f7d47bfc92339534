package db

import (
	"context"
	"time"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db/model"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SetActionQueued(ctx context.Context, txHashHex string, queued bool) error {
	return d.run("SetActionQueued", func() error {
		return d.db.SetActionQueued(ctx, txHashHex, queued)
	})
}

func (d *DbWithMetrics) GetActionQueued(ctx context.Context, txHashHex string) (result bool, err error) {
	//nolint:errcheck
	d.run("GetActionQueued", func() error {
		result, err = d.db.GetActionQueued(ctx, txHashHex)
		return err
	})
	return
}

func (d *DbWithMetrics) GetAdminState(ctx context.Context) (result *model.AdminStateDocument, err error) {
	//nolint:errcheck
	d.run("GetAdminState", func() error {
		result, err = d.db.GetAdminState(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveAdminState(ctx context.Context, doc *model.AdminStateDocument) error {
	return d.run("SaveAdminState", func() error {
		return d.db.SaveAdminState(ctx, doc)
	})
}

func (d *DbWithMetrics) GetRedemptionRate(ctx context.Context) (result uint64, err error) {
	//nolint:errcheck
	d.run("GetRedemptionRate", func() error {
		result, err = d.db.GetRedemptionRate(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveRedemptionRate(ctx context.Context, rateBps uint64) error {
	return d.run("SaveRedemptionRate", func() error {
		return d.db.SaveRedemptionRate(ctx, rateBps)
	})
}

func (d *DbWithMetrics) run(method string, f func() error) error {
	start := time.Now()
	err := f()

	outcome := metrics.Success
	if err != nil {
		outcome = metrics.Error
	}
	metrics.ObserveDbLatency(method, time.Since(start), outcome)

	return err
}
