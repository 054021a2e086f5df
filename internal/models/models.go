package models

import "encoding/json"

type Health struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
	Timestamp      string `json:"timestamp"`
}

type BackendConfig struct {
	ServerDomain     string `json:"server_domain"`
	Port             int    `json:"port"`
	TransferEnabled  bool   `json:"transfer_enabled"`
	TwilioConfigured bool   `json:"twilio_configured"`
	ActiveSessions   int    `json:"active_sessions"`
}

type Session struct {
	SessionID  string `json:"session_id"`
	CallSID    string `json:"call_sid"`
	FromNumber string `json:"from_number"`
	ToNumber   string `json:"to_number"`
	StartTime  string `json:"start_time"`
}

type SessionsResponse struct {
	Sessions []Session `json:"sessions"`
}

type ConversationTurn struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type ConversationItem struct {
	SessionID       string             `json:"session_id"`
	CallSID         string             `json:"call_sid"`
	FromNumber      string             `json:"from_number"`
	ToNumber        string             `json:"to_number"`
	StartTime       string             `json:"start_time"`
	EndTime         *string            `json:"end_time,omitempty"`
	DurationSeconds *float64           `json:"duration_seconds,omitempty"`
	Turns           []ConversationTurn `json:"turns"`
}

type ConversationsResponse struct {
	Count int                `json:"count"`
	Items []ConversationItem `json:"items"`
}

type Conversation struct {
	SessionID string             `json:"session_id"`
	Turns     []ConversationTurn `json:"turns"`
}

type ConversationResponse struct {
	OK           bool         `json:"ok"`
	Conversation Conversation `json:"conversation"`
}

type LogsResponse struct {
	Lines []string `json:"lines"`
}

// User is keyed by PhoneNumber.
type User struct {
	Name                 string    `json:"name"`
	Address              string    `json:"address,omitempty"`
	PhoneNumber          string    `json:"phone_number"`
	SecondaryPhoneNumber string    `json:"secondary_phone_number,omitempty"`
	DOB                  string    `json:"dob,omitempty"`
	Email                string    `json:"email,omitempty"`
	OTPVerified          bool      `json:"otp_verified"`
	OTPCount             int       `json:"otp_count"`
	PortalMailSent       bool      `json:"portal_mail_sent"`
	FieldsUpdated        FieldList `json:"fields_updated"`
	CallOutcome          *string   `json:"call_outcome"`
	CallBackDatetime     *string   `json:"call_back_datetime"`
	ScheduledCallback    *string   `json:"scheduled_callback,omitempty"`
}

// FieldList holds the names of updated user fields. Entries that are not
// strings are dropped while decoding.
type FieldList []string

func (f *FieldList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*f = nil
		return nil
	}
	out := make(FieldList, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			continue
		}
		out = append(out, s)
	}
	*f = out
	return nil
}

type UsersListResponse struct {
	Items []User `json:"items"`
}

type CreateUserRequest struct {
	Name                 string `json:"name" form:"name"`
	Address              string `json:"address" form:"address"`
	PhoneNumber          string `json:"phone_number" form:"phone_number"`
	SecondaryPhoneNumber string `json:"secondary_phone_number,omitempty" form:"secondary_phone_number"`
	DOB                  string `json:"dob" form:"dob"`
	Email                string `json:"email" form:"email"`
}

type CreateUserResponse struct {
	OK   bool  `json:"ok"`
	User *User `json:"user,omitempty"`
}

type DeleteUserResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type ValidateOTPResponse struct {
	OK       bool `json:"ok"`
	Verified bool `json:"verified"`
}

type ErrorResponse struct {
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message,omitempty"`
}

type UserAnalyticsResponse struct {
	Data []User `json:"data"`
}

type DashboardAnalyticsResponse struct {
	Data *DashboardAnalytics `json:"data"`
}

type DashboardAnalytics struct {
	Overview      Overview      `json:"overview"`
	OTPStatistics OTPStatistics `json:"otp_statistics"`
	Engagement    Engagement    `json:"engagement"`
	TimeSeries    TimeSeries    `json:"time_series"`
}

type Overview struct {
	TotalCalls                 int     `json:"total_calls"`
	AvgConversationTimeMinutes float64 `json:"avg_conversation_time_minutes"`
	TotalUsers                 int     `json:"total_users"`
}

type OTPStatistics struct {
	TotalOTPSent               int     `json:"total_otp_sent"`
	AverageOTPPerUser          float64 `json:"average_otp_per_user"`
	OTPVerified                int     `json:"otp_verified"`
	OTPUnverified              int     `json:"otp_unverified"`
	VerificationRatePercentage float64 `json:"verification_rate_percentage"`
}

type Engagement struct {
	CallbacksScheduled int `json:"callbacks_scheduled"`
	PortalMailsSent    int `json:"portal_mails_sent"`
}

type TimeSeries struct {
	CallsOverTime []DateCount    `json:"calls_over_time"`
	DurationTrend []DateDuration `json:"duration_trend"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DateDuration struct {
	Date               string  `json:"date"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
}
