package health

import (
	"context"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/config"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/halchash"
)

type Endpoints struct {
	Upstream halchash.Client
}

// UpstreamCheck fails when the storefront backend cannot be reached.
func UpstreamCheck(client halchash.Client) health.CheckFunc {
	return func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("upstream client is not initialized")
		}

		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach storefront backend: %w", err)
		}

		return nil
	}
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: true,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "storefront-backend",
				Timeout:   cfg.Upstream.Timeout,
				SkipOnErr: false,
				Check:     UpstreamCheck(endpoints.Upstream),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
