package models

import "time"

// Poll status constants
const (
	StatusDraft  = "DRAFT"
	StatusActive = "ACTIVE"
	StatusClosed = "CLOSED"
)

// Poll type constants
const (
	TypeYesNo          = "YES_NO"
	TypeMultipleChoice = "MULTIPLE_CHOICE"
)

// User role constants
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// NoTopOption is reported as the leading option when a poll has no votes
const NoTopOption = "—"

func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusActive || s == StatusClosed
}

func ValidType(t string) bool {
	return t == TypeYesNo || t == TypeMultipleChoice
}

// Identity is the caller resolved from a request credential.
// The zero value is the anonymous caller.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}

func (i Identity) IsAdmin() bool {
	return !i.IsAnonymous() && i.Role == RoleAdmin
}

// Request types

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OptionInput struct {
	Label    string  `json:"label"`
	ImageURL *string `json:"image_url,omitempty"`
}

type CreatePollRequest struct {
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	Type        string        `json:"type"`
	Status      string        `json:"status"`
	ImageURL    *string       `json:"image_url,omitempty"`
	Options     []OptionInput `json:"options"`
}

// UpdatePollRequest replaces a poll's fields. ImageURL is only changed when set.
type UpdatePollRequest struct {
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	Type        string        `json:"type"`
	Status      string        `json:"status"`
	ImageURL    *string       `json:"image_url,omitempty"`
	Options     []OptionInput `json:"options"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CastVoteRequest struct {
	OptionID string `json:"option_id"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type MeResponse struct {
	LoggedIn bool      `json:"logged_in"`
	User     *Identity `json:"user,omitempty"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type HasVotedResponse struct {
	HasVoted bool `json:"has_voted"`
}

type VotedPollsResponse struct {
	VotedPollIDs []string `json:"voted_poll_ids"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Option struct {
	ID       string  `json:"id"`
	PollID   string  `json:"poll_id"`
	Label    string  `json:"label"`
	ImageURL *string `json:"image_url,omitempty"`
	Position int     `json:"position"`
}

type PollWithOptions struct {
	Poll    Poll     `json:"poll"`
	Options []Option `json:"options"`
}

type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Aggregation types

type OptionCount struct {
	OptionID string  `json:"option_id,omitempty"`
	Label    string  `json:"option"`
	ImageURL *string `json:"image_url,omitempty"`
	Votes    int     `json:"votes"`
}

type DailyTotal struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Total int    `json:"total"`
}

type OptionResult struct {
	OptionID   string  `json:"option_id"`
	Label      string  `json:"label"`
	ImageURL   *string `json:"image_url,omitempty"`
	Votes      int     `json:"votes"`
	Percentage int     `json:"percentage"`
}

type PollResults struct {
	Poll       Poll           `json:"poll"`
	TotalVotes int            `json:"total_votes"`
	Results    []OptionResult `json:"results"`
}

type PollKPI struct {
	TotalVotes      int    `json:"total_votes"`
	TotalVotesLabel string `json:"total_votes_label"`
	TopOption       string `json:"top_option"`
}

type PollDashboard struct {
	Poll          Poll          `json:"poll"`
	KPI           PollKPI       `json:"kpi"`
	Distribution  []OptionCount `json:"distribution"`
	VotesOverTime []DailyTotal  `json:"votes_over_time"`
}

type OverviewKPI struct {
	TotalVotes      int    `json:"total_votes"`
	TotalVotesLabel string `json:"total_votes_label"`
	ActivePolls     int    `json:"active_polls"`
	TopOption       string `json:"top_option"`
}

type Overview struct {
	KPI           OverviewKPI   `json:"kpi"`
	Distribution  []OptionCount `json:"distribution"`
	VotesOverTime []DailyTotal  `json:"votes_over_time"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
