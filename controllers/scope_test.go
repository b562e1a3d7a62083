package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeAllowed(t *testing.T) {
	const (
		landlord = "landlord-1"
		tenant   = "tenant-1"
	)

	cases := []struct {
		name string
		role string
		user string
		want bool
	}{
		{"admin sees any record", "admin", "admin-9", true},
		{"owning landlord is allowed", "landlord", landlord, true},
		{"foreign landlord is denied", "landlord", "landlord-2", false},
		{"leaseholder tenant is allowed", "tenant", tenant, true},
		{"foreign tenant is denied", "tenant", "tenant-2", false},
		{"tenant never passes as landlord", "tenant", landlord, false},
		{"unknown role is denied", "auditor", landlord, false},
		{"empty actor is denied", "landlord", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, scopeAllowed(tc.role, tc.user, landlord, tenant))
		})
	}
}
