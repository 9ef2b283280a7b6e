package events

import (
	"time"

	"github.com/google/uuid"
)

// Envelope is a CloudEvents v1.0 compliant wrapper for domain events
type Envelope struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Extension attributes
	CorrelationID string `json:"mescorrelationid,omitempty"`
	JobID         string `json:"mesjobid,omitempty"`
	WorkflowID    string `json:"mesworkflowid,omitempty"`
}

// Factory creates envelopes for a specific event source
type Factory struct {
	source string
}

// NewFactory creates a new event Factory
func NewFactory(source string) *Factory {
	return &Factory{source: source}
}

// New wraps event data in a CloudEvents envelope
func (f *Factory) New(eventType, subject string, data interface{}) *Envelope {
	return &Envelope{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}
}

// WithCorrelation attaches correlation tracking to the envelope
func (e *Envelope) WithCorrelation(correlationID string) *Envelope {
	e.CorrelationID = correlationID
	return e
}

// WithJob attaches the job id extension to the envelope
func (e *Envelope) WithJob(jobID string) *Envelope {
	e.JobID = jobID
	return e
}
