package usecase

import "github.com/xavierca1/capacita-crm/internal/entity"

type CaptureLeadInput struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Interest string `json:"interest"`
	Message  string `json:"message"`
	Source   string `json:"source"`
}

// UpdateLeadInput is a partial update; Note is stored on the activity row when the status changes.
type UpdateLeadInput struct {
	entity.LeadPatch
	Note string `json:"note"`
}

type NoteInput struct {
	Note string `json:"note"`
}

type ConvertLeadOutput struct {
	Contact *entity.Contact `json:"contact"`
	Lead    *entity.Lead    `json:"lead"`
	Merged  bool            `json:"merged"`
}

type ContactInput struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	Notes    string `json:"notes"`
}

type CreateDealInput struct {
	Title             string  `json:"title"`
	ContactID         string  `json:"contact_id"`
	Stage             string  `json:"stage"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	ExpectedCloseDate string  `json:"expected_close_date"`
	Notes             string  `json:"notes"`
}

// UpdateDealInput: an empty contact_id or expected_close_date clears the column.
type UpdateDealInput struct {
	Title             *string  `json:"title"`
	ContactID         *string  `json:"contact_id"`
	Stage             *string  `json:"stage"`
	Amount            *float64 `json:"amount"`
	Currency          *string  `json:"currency"`
	ExpectedCloseDate *string  `json:"expected_close_date"`
	Notes             *string  `json:"notes"`
	Note              string   `json:"note"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token string            `json:"-"`
	User  *entity.AdminUser `json:"user"`
}

type StageCount struct {
	Stage entity.Stage `json:"stage"`
	Count int          `json:"count"`
}

type DealStageSummary struct {
	Stage  entity.Stage `json:"stage"`
	Count  int          `json:"count"`
	Amount float64      `json:"amount"`
}

type DashboardOutput struct {
	Leads           []StageCount       `json:"leads"`
	Deals           []DealStageSummary `json:"deals"`
	TotalContacts   int                `json:"total_contacts"`
	LeadsLast30Days int                `json:"leads_last_30_days"`
}
