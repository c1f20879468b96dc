package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name  string
		page  int64
		limit int64
		total int64
		pages int64
	}{
		{"empty", 1, 20, 0, 0},
		{"exact fit", 1, 20, 40, 2},
		{"partial last page", 2, 20, 41, 3},
		{"single item", 1, 20, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := entity.NewPagination(tc.page, tc.limit, tc.total)
			require.Equal(t, tc.page, p.Page)
			require.Equal(t, tc.limit, p.Limit)
			require.Equal(t, tc.total, p.Total)
			require.Equal(t, tc.pages, p.Pages)
		})
	}
}

func TestOrderStatusValidation(t *testing.T) {
	for _, s := range []string{
		entity.OrderStatusPending,
		entity.OrderStatusConfirmed,
		entity.OrderStatusShipped,
		entity.OrderStatusDelivered,
		entity.OrderStatusCancelled,
	} {
		require.True(t, entity.ValidOrderStatus(s), s)
	}
	require.False(t, entity.ValidOrderStatus("returned"))
	require.False(t, entity.ValidOrderStatus(""))

	require.True(t, entity.TerminalOrderStatus(entity.OrderStatusDelivered))
	require.True(t, entity.TerminalOrderStatus(entity.OrderStatusCancelled))
	require.False(t, entity.TerminalOrderStatus(entity.OrderStatusShipped))
}

func TestValidRole(t *testing.T) {
	require.True(t, entity.ValidRole(entity.RoleUser))
	require.True(t, entity.ValidRole(entity.RoleAdmin))
	require.False(t, entity.ValidRole("superuser"))
}

func TestSanitizeStripsSecrets(t *testing.T) {
	u := entity.User{
		Name:         "Asha",
		Email:        "asha@example.com",
		Password:     "$2a$10$hash",
		RefreshToken: "refresh-token",
		Role:         entity.RoleUser,
	}
	s := u.Sanitize()
	require.Equal(t, "Asha", s.Name)
	require.Equal(t, "asha@example.com", s.Email)
	require.Equal(t, entity.RoleUser, s.Role)
}
