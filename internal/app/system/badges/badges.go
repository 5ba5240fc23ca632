// Package badges maps raw entity status/type strings to display badges.
//
// Lookups are exact and case-sensitive: upstream entities disagree on
// casing ("active" vs "ACTIVE"), so sets list every casing they emit,
// and anything unmapped falls back to a generic badge showing the raw
// string verbatim rather than guessing a canonical form.
package badges

// Badge is a rendered status chip: a label and a CSS class.
type Badge struct {
	Label string
	Class string
}

// FallbackClass is the class of the generic badge for unmapped values.
const FallbackClass = "badge badge-neutral"

// Set is a lookup table keyed by the entity's raw status string.
type Set map[string]Badge

// Lookup resolves raw to a badge. Unmapped values (including unknown
// casings) return a generic badge whose label is raw verbatim.
func (s Set) Lookup(raw string) Badge {
	if b, ok := s[raw]; ok {
		return b
	}
	return Badge{Label: raw, Class: FallbackClass}
}

// Statuses shared by most marketplace entities. Upstream emits both
// lower- and upper-case for some of these.
var EntityStatus = Set{
	"active":   {Label: "Active", Class: "badge badge-success"},
	"ACTIVE":   {Label: "Active", Class: "badge badge-success"},
	"inactive": {Label: "Inactive", Class: "badge badge-muted"},
	"INACTIVE": {Label: "Inactive", Class: "badge badge-muted"},
	"pending":  {Label: "Pending", Class: "badge badge-warning"},
	"blocked":  {Label: "Blocked", Class: "badge badge-danger"},
}

// PayoutStatus covers the payout settlement lifecycle.
var PayoutStatus = Set{
	"requested":  {Label: "Requested", Class: "badge badge-warning"},
	"processing": {Label: "Processing", Class: "badge badge-info"},
	"paid":       {Label: "Paid", Class: "badge badge-success"},
	"PAID":       {Label: "Paid", Class: "badge badge-success"},
	"rejected":   {Label: "Rejected", Class: "badge badge-danger"},
}
