package commands_test

import (
	"testing"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateAnnouncementCommand(t *testing.T) {
	pickup, err := kernel.NewGeoPoint(4.05, 9.70)
	require.NoError(t, err)
	delivery, err := kernel.NewGeoPoint(4.06, 9.75)
	require.NoError(t, err)

	t.Run("creates valid command with route", func(t *testing.T) {
		cmd, cErr := commands.NewCreateAnnouncementCommand(
			kernel.NewUUID(), kernel.NewUUID(), "Spare parts", 2.5, 4500, &pickup, &delivery)

		require.NoError(t, cErr)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "Spare parts", cmd.Description())
		require.NotNil(t, cmd.Pickup())
	})

	t.Run("creates valid command without route", func(t *testing.T) {
		cmd, cErr := commands.NewCreateAnnouncementCommand(
			kernel.NewUUID(), kernel.NewUUID(), "Spare parts", 2.5, 4500, nil, nil)

		require.NoError(t, cErr)
		assert.Nil(t, cmd.Pickup())
		assert.Nil(t, cmd.Delivery())
	})

	t.Run("rejects half a route", func(t *testing.T) {
		_, cErr := commands.NewCreateAnnouncementCommand(
			kernel.NewUUID(), kernel.NewUUID(), "Spare parts", 2.5, 4500, &pickup, nil)
		require.Error(t, cErr)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, cErr := commands.NewCreateAnnouncementCommand(
			kernel.NewUUID(), kernel.NewUUID(), "", 2.5, 4500, nil, nil)
		require.ErrorIs(t, cErr, commands.ErrDescriptionIsRequired)
	})

	t.Run("rejects non-positive weight", func(t *testing.T) {
		_, cErr := commands.NewCreateAnnouncementCommand(
			kernel.NewUUID(), kernel.NewUUID(), "Spare parts", 0, 4500, nil, nil)
		require.ErrorIs(t, cErr, commands.ErrWeightIsInvalid)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, cErr := commands.NewCreateAnnouncementCommand(
			kernel.NewUUID(), kernel.NewUUID(), "Spare parts", 2.5, -1, nil, nil)
		require.ErrorIs(t, cErr, commands.ErrAmountIsInvalid)
	})
}
