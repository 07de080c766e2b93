package directory

import (
	"context"
	"errors"
)

// Package directory contains the client for the patient/doctor data
// provider. Patient and doctor records are owned elsewhere; the orchestrator
// only needs a presentation snapshot of each at generation time.

// ErrPersonNotFound reports that the provider has no such person within the
// organization.
var ErrPersonNotFound = errors.New("person not found")

// Patient is the snapshot of patient context captured into a ledger entry.
type Patient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Doctor is the snapshot of doctor context captured into a ledger entry.
type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	License        string `json:"license,omitempty"`
	Email          string `json:"email,omitempty"`
}

// Directory resolves patient and doctor context for document generation.
type Directory interface {
	GetPatient(ctx context.Context, id, orgID string) (*Patient, error)
	GetDoctor(ctx context.Context, id, orgID string) (*Doctor, error)
}
