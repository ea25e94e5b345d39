package member

import (
	"reflect"
	"testing"
)

var knownRoles = []string{"prayer_lead", "scripture_reader", "sharing_lead"}

func TestCanCreate(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CreateContext
		wantAllowed bool
	}{
		{
			name: "valid member",
			ctx: CreateContext{
				Name:       "Amina Wanjiru",
				Phone:      "0712345678",
				Roles:      []string{"prayer_lead"},
				KnownRoles: knownRoles,
			},
			wantAllowed: true,
		},
		{
			name: "blank name",
			ctx: CreateContext{
				Name:       "   ",
				Roles:      []string{"prayer_lead"},
				KnownRoles: knownRoles,
			},
			wantAllowed: false,
		},
		{
			name: "duplicate phone",
			ctx: CreateContext{
				Name:       "Amina Wanjiru",
				Phone:      "0712345678",
				PhoneTaken: true,
				Roles:      []string{"prayer_lead"},
				KnownRoles: knownRoles,
			},
			wantAllowed: false,
		},
		{
			name: "duplicate email",
			ctx: CreateContext{
				Name:       "Amina Wanjiru",
				Email:      "amina@example.com",
				EmailTaken: true,
				Roles:      []string{"prayer_lead"},
				KnownRoles: knownRoles,
			},
			wantAllowed: false,
		},
		{
			name: "no eligible roles",
			ctx: CreateContext{
				Name:       "Amina Wanjiru",
				Roles:      nil,
				KnownRoles: knownRoles,
			},
			wantAllowed: false,
		},
		{
			name: "unknown role",
			ctx: CreateContext{
				Name:       "Amina Wanjiru",
				Roles:      []string{"worship_leader"},
				KnownRoles: knownRoles,
			},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreate(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanCreate() Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
		})
	}
}

func TestCanUpdateEligibility(t *testing.T) {
	tests := []struct {
		name        string
		ctx         EligibilityContext
		wantAllowed bool
	}{
		{
			name: "active member keeps one role",
			ctx: EligibilityContext{
				MemberID:   "MBR-001",
				Active:     true,
				Roles:      []string{"sharing_lead"},
				KnownRoles: knownRoles,
			},
			wantAllowed: true,
		},
		{
			name: "active member cannot drop all roles",
			ctx: EligibilityContext{
				MemberID:   "MBR-001",
				Active:     true,
				Roles:      nil,
				KnownRoles: knownRoles,
			},
			wantAllowed: false,
		},
		{
			name: "inactive member may hold an empty set",
			ctx: EligibilityContext{
				MemberID:   "MBR-002",
				Active:     false,
				Roles:      nil,
				KnownRoles: knownRoles,
			},
			wantAllowed: true,
		},
		{
			name: "unknown role rejected",
			ctx: EligibilityContext{
				MemberID:   "MBR-001",
				Active:     true,
				Roles:      []string{"hospitality"},
				KnownRoles: knownRoles,
			},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanUpdateEligibility(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanUpdateEligibility() Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
		})
	}
}

func TestActivationGuards(t *testing.T) {
	tests := []struct {
		name        string
		guard       func(ActivationContext) GuardResult
		guardName   string
		ctx         ActivationContext
		wantAllowed bool
	}{
		{name: "deactivate active member", guard: CanDeactivate, guardName: "CanDeactivate", ctx: ActivationContext{MemberID: "MBR-001", Exists: true, Active: true}, wantAllowed: true},
		{name: "deactivate missing member", guard: CanDeactivate, guardName: "CanDeactivate", ctx: ActivationContext{MemberID: "MBR-009", Exists: false}, wantAllowed: false},
		{name: "deactivate inactive member", guard: CanDeactivate, guardName: "CanDeactivate", ctx: ActivationContext{MemberID: "MBR-001", Exists: true, Active: false}, wantAllowed: false},
		{name: "reactivate inactive member", guard: CanReactivate, guardName: "CanReactivate", ctx: ActivationContext{MemberID: "MBR-001", Exists: true, Active: false}, wantAllowed: true},
		{name: "reactivate active member", guard: CanReactivate, guardName: "CanReactivate", ctx: ActivationContext{MemberID: "MBR-001", Exists: true, Active: true}, wantAllowed: false},
		{name: "reactivate missing member", guard: CanReactivate, guardName: "CanReactivate", ctx: ActivationContext{MemberID: "MBR-009", Exists: false}, wantAllowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.guard(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("%s() Allowed = %v, want %v", tt.guardName, result.Allowed, tt.wantAllowed)
			}
		})
	}
}

func TestUnknownRoles(t *testing.T) {
	got := UnknownRoles([]string{"prayer_lead", "usher", "sharing_lead", "greeter"}, knownRoles)
	want := []string{"usher", "greeter"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnknownRoles() = %v, want %v", got, want)
	}
}

func TestGenerateMemberID(t *testing.T) {
	if got := GenerateMemberID(0); got != "MBR-001" {
		t.Errorf("GenerateMemberID(0) = %s, want MBR-001", got)
	}
	if got := GenerateMemberID(41); got != "MBR-042" {
		t.Errorf("GenerateMemberID(41) = %s, want MBR-042", got)
	}
	if got := ParseMemberNumber("MBR-042"); got != 42 {
		t.Errorf("ParseMemberNumber(MBR-042) = %d, want 42", got)
	}
	if got := ParseMemberNumber("nope"); got != -1 {
		t.Errorf("ParseMemberNumber(nope) = %d, want -1", got)
	}
}
