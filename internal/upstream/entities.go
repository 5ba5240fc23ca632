package upstream

import "encoding/json"

// The platform API is inconsistent about identifier field names
// (banner_id vs bannerId vs id, and so on per entity). Each entity
// type normalizes whatever variant the response carries into a single
// canonical ID during decoding, so nothing above this package ever
// writes an `a.banner_id || a.id` fallback chain.

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Banner is a promotional banner shown in the marketplace apps.
type Banner struct {
	ID        string
	Title     string
	ImageURL  string
	LinkURL   string
	Position  int
	Status    string
	CreatedAt string
	UpdatedAt string
}

func (b *Banner) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID        string `json:"id"`
		BannerID  string `json:"banner_id"`
		AltID     string `json:"bannerId"`
		Title     string `json:"title"`
		ImageURL  string `json:"image_url"`
		LinkURL   string `json:"link_url"`
		Position  int    `json:"position"`
		Status    string `json:"status"`
		IsActive  *bool  `json:"is_active"`
		CreatedAt string `json:"created_at"`
		UpdatedAt string `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = Banner{
		ID:        firstNonEmpty(aux.BannerID, aux.AltID, aux.ID),
		Title:     aux.Title,
		ImageURL:  aux.ImageURL,
		LinkURL:   aux.LinkURL,
		Position:  aux.Position,
		Status:    aux.Status,
		CreatedAt: aux.CreatedAt,
		UpdatedAt: aux.UpdatedAt,
	}
	// Some banner endpoints predate the status field and still send a
	// boolean flag.
	if b.Status == "" && aux.IsActive != nil {
		if *aux.IsActive {
			b.Status = "active"
		} else {
			b.Status = "inactive"
		}
	}
	return nil
}

// Role is a platform access role with a permission set.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []string
	Status      string
	CreatedAt   string
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID          string   `json:"id"`
		RoleID      string   `json:"role_id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Permissions []string `json:"permissions"`
		Status      string   `json:"status"`
		CreatedAt   string   `json:"created_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Role{
		ID:          firstNonEmpty(aux.RoleID, aux.ID),
		Name:        aux.Name,
		Description: aux.Description,
		Permissions: aux.Permissions,
		Status:      aux.Status,
		CreatedAt:   aux.CreatedAt,
	}
	return nil
}

// Payout is a provider settlement request. Amounts and settlement
// fields are opaque to the dashboard; it displays them verbatim.
type Payout struct {
	ID           string
	ProviderID   string
	ProviderName string
	Amount       string
	Currency     string
	Status       string
	RequestedAt  string
	PaidAt       string
}

func (p *Payout) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID           string `json:"id"`
		PayoutID     string `json:"payout_id"`
		ProviderID   string `json:"provider_id"`
		ProviderName string `json:"provider_name"`
		Amount       string `json:"amount"`
		Currency     string `json:"currency"`
		Status       string `json:"status"`
		RequestedAt  string `json:"requested_at"`
		PaidAt       string `json:"paid_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Payout{
		ID:           firstNonEmpty(aux.PayoutID, aux.ID),
		ProviderID:   aux.ProviderID,
		ProviderName: aux.ProviderName,
		Amount:       aux.Amount,
		Currency:     aux.Currency,
		Status:       aux.Status,
		RequestedAt:  aux.RequestedAt,
		PaidAt:       aux.PaidAt,
	}
	return nil
}

// Service is a bookable marketplace service.
type Service struct {
	ID        string
	Title     string
	Category  string
	PriceMin  int
	PriceMax  int
	Status    string
	CreatedAt string
}

func (s *Service) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID        string `json:"id"`
		ServiceID string `json:"service_id"`
		Title     string `json:"title"`
		Name      string `json:"name"`
		Category  string `json:"category"`
		PriceMin  int    `json:"price_min"`
		PriceMax  int    `json:"price_max"`
		Status    string `json:"status"`
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Service{
		ID:        firstNonEmpty(aux.ServiceID, aux.ID),
		Title:     firstNonEmpty(aux.Title, aux.Name),
		Category:  aux.Category,
		PriceMin:  aux.PriceMin,
		PriceMax:  aux.PriceMax,
		Status:    aux.Status,
		CreatedAt: aux.CreatedAt,
	}
	return nil
}

// Policy is a platform policy document (terms, privacy, refunds).
// Body is HTML, sanitized before any edit is submitted back.
type Policy struct {
	ID        string
	Slug      string
	Title     string
	Body      string
	Status    string
	UpdatedAt string
}

func (p *Policy) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID        string `json:"id"`
		PolicyID  string `json:"policy_id"`
		Slug      string `json:"slug"`
		Title     string `json:"title"`
		Body      string `json:"body"`
		Content   string `json:"content"`
		Status    string `json:"status"`
		UpdatedAt string `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Policy{
		ID:        firstNonEmpty(aux.PolicyID, aux.ID),
		Slug:      aux.Slug,
		Title:     aux.Title,
		Body:      firstNonEmpty(aux.Body, aux.Content),
		Status:    aux.Status,
		UpdatedAt: aux.UpdatedAt,
	}
	return nil
}

// Settings is the platform's system settings singleton.
type Settings struct {
	SupportEmail      string `json:"support_email"`
	SupportPhone      string `json:"support_phone"`
	BookingWindowDays int    `json:"booking_window_days"`
	MaintenanceMode   bool   `json:"maintenance_mode"`
	MaintenanceNotice string `json:"maintenance_notice"`
}
