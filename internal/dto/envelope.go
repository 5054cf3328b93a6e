package dto

import (
	"encoding/json"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
)

// Envelope is the common response contract of the admin API: a data payload with
// optional error and pagination blocks.
type Envelope struct {
	Data       json.RawMessage    `json:"data,omitempty"`
	Error      *EnvelopeError     `json:"error,omitempty"`
	Message    string             `json:"message,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// EnvelopeError mirrors the API's error block.
type EnvelopeError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Decode unmarshals the data block into dest.
func (e *Envelope) Decode(dest interface{}) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, dest)
}
