// internal/app/features/banners/columns.go
package banners

import (
	"net/http"

	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/uistate"
)

// optionalColumns are the table columns an operator can hide. Hiding
// is per-session rendering state; it never changes what is fetched.
var optionalColumns = []string{"image", "link"}

// columnState snapshots the screen's column visibility for rendering.
func columnState(s *uistate.Screen) map[string]bool {
	m := make(map[string]bool, len(optionalColumns))
	for _, key := range optionalColumns {
		m[key] = s.ColumnVisible(key)
	}
	return m
}

// HandleColumns handles POST /banners/columns: saves which optional
// table columns this operator wants shown.
func (h *Handler) HandleColumns(w http.ResponseWriter, r *http.Request) {
	screen := h.screen(r)
	for _, key := range optionalColumns {
		screen.SetColumn(key, r.FormValue("col_"+key) == "on")
	}
	ret := navigation.SafeBackURL(r, navigation.BannersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
