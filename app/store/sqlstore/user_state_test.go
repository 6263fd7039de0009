package sqlstore

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

func TestBuildUserStateUpdateTouchesOnlyProvidedColumns(t *testing.T) {
	queryString, args, err := buildUserStateUpdate("postiq_user_states", 42, types.UpdateUserStateOptions{
		OrganizationID: lo.ToPtr(int64(7)),
		CanShowAlerts:  lo.ToPtr(true),
	})
	require.NoError(t, err)

	assert.Contains(t, queryString, "organization_id")
	assert.Contains(t, queryString, "can_show_alerts")
	assert.NotContains(t, queryString, "tg_username")
	assert.NotContains(t, queryString, "access_token")
	assert.NotContains(t, queryString, "account_id =")
	assert.NotContains(t, queryString, "show_error_recovery")
	assert.Len(t, args, 3) // two SETs plus the WHERE bind
}

func TestBuildUserStateUpdateAllColumns(t *testing.T) {
	_, args, err := buildUserStateUpdate("postiq_user_states", 1, types.UpdateUserStateOptions{
		TgUsername:        lo.ToPtr("alice"),
		AccountID:         lo.ToPtr(int64(2)),
		OrganizationID:    lo.ToPtr(int64(3)),
		AccessToken:       lo.ToPtr("tok"),
		CanShowAlerts:     lo.ToPtr(false),
		ShowErrorRecovery: lo.ToPtr(true),
	})
	require.NoError(t, err)
	assert.Len(t, args, 7)
}

func TestUpdateUserStateOptionsEmpty(t *testing.T) {
	assert.True(t, types.UpdateUserStateOptions{}.Empty())
	assert.False(t, types.UpdateUserStateOptions{AccountID: lo.ToPtr(int64(1))}.Empty())
}
