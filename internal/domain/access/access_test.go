package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/access"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestCanDelete(t *testing.T) {
	cases := []struct {
		role   string
		target access.Target
		want   bool
	}{
		{entity.RoleAdmin, access.TargetProduct, true},
		{entity.RoleEditor, access.TargetProduct, false},
		{entity.RoleAdmin, access.TargetAppUser, true},
		{entity.RoleEditor, access.TargetAppUser, false},
		{entity.RoleEditor, access.TargetWorker, true},
		{entity.RoleEmpleado, access.TargetWorker, false},
		{entity.RoleEditor, access.TargetMovementHistory, true},
		{entity.RoleEmpleado, access.TargetMovementHistory, false},
		{"root", access.TargetProduct, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, access.CanDelete(tc.role, tc.target), "%s/%s", tc.role, tc.target)
	}
}

func TestCanView(t *testing.T) {
	assert.True(t, access.CanView(entity.RoleEmpleado, access.ViewMaster))
	assert.True(t, access.CanView(entity.RoleEmpleado, access.ViewSummary))
	assert.False(t, access.CanView(entity.RoleEmpleado, access.ViewUsers))
	assert.True(t, access.CanView(entity.RoleEditor, access.ViewUsers))
	assert.False(t, access.CanView("", access.ViewMaster))
}

func TestCanManageUsers(t *testing.T) {
	assert.True(t, access.CanManageUsers(entity.RoleAdmin))
	assert.False(t, access.CanManageUsers(entity.RoleEditor))
}
