package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeAddedRequestShape(t *testing.T) {
	var req EmployeeAddedRequest
	require.NoError(t, json.Unmarshal([]byte(
		`{"account_id":7,"organization_id":9,"employee_name":"Анна","role":"editor"}`), &req))

	assert.Equal(t, int64(7), req.AccountID)
	assert.Equal(t, int64(9), req.OrganizationID)
	assert.Equal(t, "Анна", req.EmployeeName)
	assert.Equal(t, "editor", req.Role)

	// Name and role are informational; the link works without them.
	var bare EmployeeAddedRequest
	require.NoError(t, json.Unmarshal([]byte(`{"account_id":7,"organization_id":9}`), &bare))
	assert.Empty(t, bare.EmployeeName)
}
