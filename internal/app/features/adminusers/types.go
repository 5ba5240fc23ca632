// internal/app/features/adminusers/types.go
package adminusers

import (
	"github.com/caristo/adminhub/internal/app/system/badges"
	"github.com/caristo/adminhub/internal/app/system/formutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// adminStatus maps account statuses to display badges.
var adminStatus = badges.Set{
	"active":   {Label: "Active", Class: "badge badge-success"},
	"disabled": {Label: "Disabled", Class: "badge badge-muted"},
}

// listItem is a single row in the admin users list.
type listItem struct {
	ID          primitive.ObjectID
	FullName    string
	Email       string
	Role        string
	Status      string
	LastLoginAt string
	Badge       badges.Badge
	IsDisabled  bool
}

// listData is the view model for the admin users list page.
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
}

// formData is the view model for the new/edit admin pages.
type formData struct {
	formutil.Base

	ID       string
	FullName string
	Email    string
	AcctRole string
	Status   string
	IsEdit   bool
}
