package commands_test

import (
	"testing"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatchAnnouncementCommand(t *testing.T) {
	t.Run("creates valid command", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewMatchAnnouncementCommand(id)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.AnnouncementID().IsEqual(id))
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		var zero kernel.UUID

		_, err := commands.NewMatchAnnouncementCommand(zero)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.MatchAnnouncementCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrMatchAnnouncementCommandIsNotConstructed)
	})
}
