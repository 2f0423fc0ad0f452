package bootstrap

import (
	"context"

	"rental-backoffice/internal/infra/export"
	"rental-backoffice/internal/infra/storage"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/usecase/queries"
	"rental-backoffice/internal/usecase/shared"

	"go.uber.org/fx"
)

const voucherIssuer = "Rental Back Office"

var StorageModule = fx.Module("storage",
	fx.Provide(
		fx.Annotate(
			NewDocumentStore,
			fx.As(new(shared.DocumentStore)),
		),
		fx.Annotate(
			func() *export.VoucherRenderer { return export.NewVoucherRenderer(voucherIssuer) },
			fx.As(new(queries.VoucherRenderer)),
		),
	),
)

func NewDocumentStore(cfg config.Config) (*storage.S3Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	client, err := storage.NewS3Client(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	return storage.NewS3Store(client, cfg.Storage), nil
}
