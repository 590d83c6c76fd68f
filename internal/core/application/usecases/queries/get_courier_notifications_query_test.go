package queries_test

import (
	"testing"

	"parcelmatch/internal/core/application/usecases/queries"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCourierNotificationsQuery(t *testing.T) {
	t.Run("creates valid query", func(t *testing.T) {
		id := kernel.NewUUID()

		query, err := queries.NewGetCourierNotificationsQuery(id)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.CourierID().IsEqual(id))
	})

	t.Run("rejects invalid courier id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := queries.NewGetCourierNotificationsQuery(zero)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetCourierNotificationsQuery
		require.ErrorIs(t, query.Validate(), queries.ErrGetCourierNotificationsQueryIsNotConstructed)
	})
}
