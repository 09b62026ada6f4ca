package models

import "time"

// InviteCode gates account creation when the server requires invites.
type InviteCode struct {
	Code          string    `json:"code"`
	AvailableUses int       `json:"available"`
	Disabled      bool      `json:"disabled"`
	ForAccount    string    `json:"forAccount"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName returns the name of the database table backing [InviteCode].
func (i InviteCode) TableName() string {
	return "invite_codes"
}

// Usable reports whether the code may still be redeemed.
func (i InviteCode) Usable() bool {
	return !i.Disabled && i.AvailableUses > 0
}

// CreateInviteCodeRequest is the input of com.atproto.server.createInviteCode.
type CreateInviteCodeRequest struct {
	UseCount   int    `json:"useCount"`
	ForAccount string `json:"forAccount,omitempty"`
}

// CreateInviteCodeResponse is the output of com.atproto.server.createInviteCode.
type CreateInviteCodeResponse struct {
	Code string `json:"code"`
}

// DisableInviteCodesRequest is the input of com.atproto.admin.disableInviteCodes.
type DisableInviteCodesRequest struct {
	Codes []string `json:"codes"`
}
