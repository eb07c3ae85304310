// Package dto mirrors the AfroMessage JSON envelopes.
package dto

// Envelope is the top-level body of every AfroMessage response.
type Envelope struct {
	Acknowledge string   `json:"acknowledge"`
	Response    Response `json:"response"`
}

// Response carries the challenge result or the error list.
type Response struct {
	Status         string   `json:"status"`
	MessageID      string   `json:"message_id"`
	Code           string   `json:"code"`
	VerificationID string   `json:"verificationId"`
	Errors         []string `json:"errors"`
}
