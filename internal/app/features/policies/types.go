// internal/app/features/policies/types.go
package policies

import (
	"html/template"

	"github.com/caristo/adminhub/internal/app/system/badges"
	"github.com/caristo/adminhub/internal/app/system/formutil"
)

// listItem is a single row in the policies list.
type listItem struct {
	ID        string
	Slug      string
	PolTitle  string
	Status    string
	UpdatedAt string
	Badge     badges.Badge
}

// listData is the view model for the policies list page.
type listData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Q           string
	Status      string
	Items       []listItem
	CurrentPath string
	DebounceMS  int
	LoadError   string

	// Pagination
	Shown      int
	Total      int64
	Page       int
	PrevPage   int
	NextPage   int
	HasPrev    bool
	HasNext    bool
	RangeStart int
	RangeEnd   int
	IsFetching bool
}

// viewData is the view model for the policy detail page. Body is
// sanitized before it reaches the template.
type viewData struct {
	formutil.Base

	ID        string
	Slug      string
	PolTitle  string
	Body      template.HTML
	Status    string
	UpdatedAt string
	Badge     badges.Badge
}

// formData is the view model for the edit policy page. Body here is
// the raw editable source, not the rendered HTML.
type formData struct {
	formutil.Base

	ID       string
	Slug     string
	PolTitle string
	Body     string
}
