package upstream

import (
	"encoding/json"
	"testing"
)

func TestBannerIDNormalization(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"snake case id", `{"banner_id": "b1", "title": "A"}`, "b1"},
		{"camel case id", `{"bannerId": "b2", "title": "B"}`, "b2"},
		{"plain id", `{"id": "b3", "title": "C"}`, "b3"},
		{"snake case wins when both present", `{"banner_id": "b4", "id": "other"}`, "b4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Banner
			if err := json.Unmarshal([]byte(tt.body), &b); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if b.ID != tt.want {
				t.Errorf("ID = %q, want %q", b.ID, tt.want)
			}
		})
	}
}

func TestBannerLegacyActiveFlag(t *testing.T) {
	var b Banner
	if err := json.Unmarshal([]byte(`{"id": "b1", "is_active": true}`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Status != "active" {
		t.Errorf("Status = %q, want active", b.Status)
	}

	if err := json.Unmarshal([]byte(`{"id": "b2", "is_active": false}`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Status != "inactive" {
		t.Errorf("Status = %q, want inactive", b.Status)
	}

	// An explicit status always wins over the legacy flag.
	if err := json.Unmarshal([]byte(`{"id": "b3", "status": "PENDING", "is_active": true}`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Status != "PENDING" {
		t.Errorf("Status = %q, want PENDING", b.Status)
	}
}

func TestRolePayoutPolicyIDNormalization(t *testing.T) {
	var r Role
	if err := json.Unmarshal([]byte(`{"role_id": "r1", "name": "moderator"}`), &r); err != nil {
		t.Fatalf("unmarshal role: %v", err)
	}
	if r.ID != "r1" || r.Name != "moderator" {
		t.Errorf("role = %+v", r)
	}

	var p Payout
	if err := json.Unmarshal([]byte(`{"payout_id": "p1", "amount": "120.00", "status": "PAID"}`), &p); err != nil {
		t.Fatalf("unmarshal payout: %v", err)
	}
	if p.ID != "p1" || p.Status != "PAID" {
		t.Errorf("payout = %+v", p)
	}

	var pol Policy
	if err := json.Unmarshal([]byte(`{"id": "pol1", "slug": "terms", "content": "<p>hi</p>"}`), &pol); err != nil {
		t.Fatalf("unmarshal policy: %v", err)
	}
	if pol.ID != "pol1" || pol.Body != "<p>hi</p>" {
		t.Errorf("policy = %+v", pol)
	}
}

func TestServiceTitleFallsBackToName(t *testing.T) {
	var s Service
	if err := json.Unmarshal([]byte(`{"service_id": "s1", "name": "Deep Clean"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.ID != "s1" || s.Title != "Deep Clean" {
		t.Errorf("service = %+v", s)
	}
}
