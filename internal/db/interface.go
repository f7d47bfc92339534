package db

import (
	"context"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error

	SetActionQueued(ctx context.Context, txHashHex string, queued bool) error
	GetActionQueued(ctx context.Context, txHashHex string) (bool, error)

	GetAdminState(ctx context.Context) (*model.AdminStateDocument, error)
	SaveAdminState(ctx context.Context, doc *model.AdminStateDocument) error

	GetRedemptionRate(ctx context.Context) (uint64, error)
	SaveRedemptionRate(ctx context.Context, rateBps uint64) error
}
