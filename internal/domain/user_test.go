package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	for _, r := range Roles() {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("intern").Valid())
	assert.False(t, Role("").Valid())
}

func TestUserJSONRoundTrip(t *testing.T) {
	u := User{ID: "u1", Name: "Jane", Email: "jane@example.com", Role: RoleFinanceManager}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var got User
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, u, got)
}

func TestUserDecodesBackendPayload(t *testing.T) {
	payload := `{"id":"7","name":"Sam","email":"sam@example.com","role":"super_admin","status":"active"}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(payload), &u))
	assert.Equal(t, RoleSuperAdmin, u.Role)
	assert.Equal(t, "active", u.Status)
}
