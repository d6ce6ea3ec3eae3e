package domain

import (
	"errors"
	"fmt"
	"time"
)

// Status of a scheduled trip.
type Status string

const (
	StatusPlanned              Status = "planifie"
	StatusLoading              Status = "en_cours_chargement"
	StatusInProgress           Status = "en_cours"
	StatusAwaitingConfirmation Status = "attente_confirmation"
	StatusDone                 Status = "termine"
	StatusCancelled            Status = "annule"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrIncompletePhotos  = errors.New("all four confirmation photos are required")
)

// ParseStatus maps unknown values to planifie.
func ParseStatus(s string) Status {
	switch st := Status(s); st {
	case StatusLoading, StatusInProgress, StatusAwaitingConfirmation, StatusDone, StatusCancelled:
		return st
	default:
		return StatusPlanned
	}
}

func (s Status) Terminal() bool { return s == StatusDone || s == StatusCancelled }

// PhotoSet is the evidence bundle a driver submits at trip start or end.
// Values are storage URLs.
type PhotoSet struct {
	Dashboard string
	FullTruck string
	Document  string
	Cargo     string
}

func (p PhotoSet) Complete() bool {
	return p.Dashboard != "" && p.FullTruck != "" && p.Document != "" && p.Cargo != ""
}

// Planification is a scheduled trip moving through the confirmation
// workflow: planifie -> (en_cours_chargement) -> en_cours ->
// attente_confirmation -> termine, with annule reachable from any
// non-terminal state.
type Planification struct {
	Entry
	Status      Status
	ScheduledAt *time.Time
	StartPhotos PhotoSet
	EndPhotos   PhotoSet
	UpdatedAt   *time.Time
}

// SubmitStartPhotos moves a planned (or loading) trip to en_cours once
// all four start photos are present. With an incomplete set the photos
// are not recorded and the status is unchanged.
func (p *Planification) SubmitStartPhotos(photos PhotoSet) error {
	if p.Status != StatusPlanned && p.Status != StatusLoading {
		return fmt.Errorf("submit start photos: %s -> %s: %w", p.Status, StatusInProgress, ErrInvalidTransition)
	}
	if !photos.Complete() {
		return fmt.Errorf("submit start photos: %w", ErrIncompletePhotos)
	}
	p.StartPhotos = photos
	p.Status = StatusInProgress
	return nil
}

func (p *Planification) SubmitEndPhotos(photos PhotoSet) error {
	if p.Status != StatusInProgress {
		return fmt.Errorf("submit end photos: %s -> %s: %w", p.Status, StatusAwaitingConfirmation, ErrInvalidTransition)
	}
	if !photos.Complete() {
		return fmt.Errorf("submit end photos: %w", ErrIncompletePhotos)
	}
	p.EndPhotos = photos
	p.Status = StatusAwaitingConfirmation
	return nil
}

// Confirm is the admin confirmation of a finished trip.
func (p *Planification) Confirm() error {
	if p.Status != StatusAwaitingConfirmation {
		return fmt.Errorf("confirm: %s -> %s: %w", p.Status, StatusDone, ErrInvalidTransition)
	}
	p.Status = StatusDone
	return nil
}

func (p *Planification) Cancel() error {
	if p.Status.Terminal() {
		return fmt.Errorf("cancel: %s -> %s: %w", p.Status, StatusCancelled, ErrInvalidTransition)
	}
	p.Status = StatusCancelled
	return nil
}

// MarkLoadingIfDue is the time-triggered transition: a planned trip whose
// scheduled time has elapsed moves to en_cours_chargement. It reports
// whether the status changed. Without ScheduledAt the trip date at
// midnight in now's location is used.
func (p *Planification) MarkLoadingIfDue(now time.Time) bool {
	if p.Status != StatusPlanned {
		return false
	}

	var due time.Time
	switch {
	case p.ScheduledAt != nil:
		due = *p.ScheduledAt
	case !p.Date.IsZero():
		due = time.Date(p.Date.Year, p.Date.Month, p.Date.Day, 0, 0, 0, 0, now.Location())
	default:
		return false
	}

	if now.Before(due) {
		return false
	}
	p.Status = StatusLoading
	return true
}
