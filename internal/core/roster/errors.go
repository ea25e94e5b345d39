// Package roster contains the pure fairness logic for rotating service
// roles across members. This file defines the scheduling error types.
package roster

import (
	"fmt"
	"strings"
)

// NoEligibleMembersError reports that the registry has no active,
// eligible, available member for a role on a date.
type NoEligibleMembersError struct {
	Role Role
	Date string
}

func (e *NoEligibleMembersError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("no eligible members for role %s on %s", e.Role, e.Date)
	}
	return fmt.Sprintf("no eligible members for role %s", e.Role)
}

// UnfillableRoleError reports every role a plan could not fill. The
// whole plan is abandoned; nothing is persisted.
type UnfillableRoleError struct {
	SessionID string
	Roles     []Role
}

func (e *UnfillableRoleError) Error() string {
	names := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		names[i] = string(r)
	}
	return fmt.Sprintf("session %s: no eligible member left for role(s) %s", e.SessionID, strings.Join(names, ", "))
}

// ConcurrentModificationError reports that the roster or session
// changed between planning and commit. The caller should retry.
type ConcurrentModificationError struct {
	SessionID string
	Reason    string
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("session %s: %s - retry the assignment", e.SessionID, e.Reason)
}
