package health_test

import (
	"context"
	"testing"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/health"
	"github.com/sajibul-islam-robin/halchash-frontend/pkg/halchash/mocks"
	"github.com/stretchr/testify/assert"
)

func TestUpstreamCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Ping", context.Background()).Return(nil).Once()

		assert.NoError(t, health.UpstreamCheck(client)(context.Background()))
	})

	t.Run("Backend down", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Ping", context.Background()).Return(errors.ThirdPartyError(errors.MsgUpstreamUnavailable)).Once()

		err := health.UpstreamCheck(client)(context.Background())

		assert.ErrorContains(t, err, "failed to reach storefront backend")
	})

	t.Run("No client", func(t *testing.T) {
		assert.Error(t, health.UpstreamCheck(nil)(context.Background()))
	})
}
