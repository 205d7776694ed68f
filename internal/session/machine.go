package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
	"github.com/pixel-crew/twinscissors-booking/internal/integrations/availabilitystore"
	"github.com/pixel-crew/twinscissors-booking/internal/slots"
)

// State identifies a step of the booking flow
type State string

const (
	StateServiceSelection  State = "service_selection"
	StateScheduleSelection State = "schedule_selection"
	StateIdentityCapture   State = "identity_capture"
	StatePaymentReview     State = "payment_review"
	StateReceiptCapture    State = "receipt_capture"
	StateConfirmed         State = "confirmed"
)

// Config is the immutable business configuration injected at construction
type Config struct {
	Catalog  []domain.Service
	Schedule domain.Schedule
}

// Machine is the booking session state machine. It owns the in-progress
// draft and the step transitions, independently of any rendering layer.
//
// One Machine serves one logical session. Store calls suspend only the
// initiating event; every call captures a session token before releasing
// the lock, and its result is discarded if the token has moved on by the
// time the response arrives (the user navigated away meanwhile).
type Machine struct {
	cfg    Config
	client ProtocolClient
	clock  TimeProvider
	logger Logger

	mu         sync.Mutex
	state      State
	draft      domain.BookingDraft
	slotStates map[string]slots.State
	token      uuid.UUID // identity of the session epoch that issued pending requests
	committing bool
}

// NewMachine creates a session in the initial service selection state
func NewMachine(cfg Config, client ProtocolClient, logger Logger) *Machine {
	return &Machine{
		cfg:    cfg,
		client: client,
		clock:  &RealTimeProvider{},
		logger: logger,
		state:  StateServiceSelection,
		token:  uuid.New(),
	}
}

// State returns the current step
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Draft returns a copy of the in-progress draft
func (m *Machine) Draft() domain.BookingDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// SlotStates returns the slot grid computed for the currently selected date
func (m *Machine) SlotStates() map[string]slots.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]slots.State, len(m.slotStates))
	for k, v := range m.slotStates {
		out[k] = v
	}
	return out
}

// SelectService chooses a catalog entry and advances to schedule selection
func (m *Machine) SelectService(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateServiceSelection {
		return ErrInvalidTransition
	}

	svc := domain.CatalogByID(m.cfg.Catalog, id)
	if svc == nil {
		return ErrServiceNotFound
	}

	m.draft.Service = svc
	m.advance(StateScheduleSelection)
	m.logger.Info("Session: service id=%d (%s) selected", svc.ID, svc.Name)
	return nil
}

// SelectDate picks a calendar date, clears any previously chosen slot and
// fetches availability for the new date. Returns the freshly computed slot
// grid. A stale selection must never silently persist across a date change.
func (m *Machine) SelectDate(ctx context.Context, date string) (map[string]slots.State, error) {
	m.mu.Lock()
	if m.state != StateScheduleSelection {
		m.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if _, err := domain.ParseDate(date); err != nil {
		m.mu.Unlock()
		return nil, ErrInvalidDate
	}

	m.draft.Date = date
	m.draft.Slot = ""
	m.slotStates = nil
	m.token = uuid.New()
	token := m.token
	m.mu.Unlock()

	booked := m.client.FetchBookedSlots(ctx, date)

	return m.applyAvailability(token, date, booked)
}

// applyAvailability installs a fetched booked-set, unless the session has
// moved on since the fetch was issued
func (m *Machine) applyAvailability(token uuid.UUID, date string, booked domain.SlotSet) (map[string]slots.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != token || m.state != StateScheduleSelection || m.draft.Date != date {
		m.logger.Warn("Session: discarding stale availability response for %s", date)
		return nil, nil
	}

	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	m.slotStates = slots.Compute(day, m.clock.Now(), m.cfg.Schedule.Slots, booked, m.cfg.Schedule.AllowedWeekdays)

	out := make(map[string]slots.State, len(m.slotStates))
	for k, v := range m.slotStates {
		out[k] = v
	}
	return out, nil
}

// SelectSlot picks a slot label. Only a currently selectable slot may be
// chosen; anything past, booked or on a disallowed weekday is refused.
func (m *Machine) SelectSlot(label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateScheduleSelection {
		return ErrInvalidTransition
	}
	if m.draft.Date == "" {
		return ErrNoDateSelected
	}
	if !m.cfg.Schedule.ValidSlot(label) {
		return ErrSlotNotSelectable
	}
	state, ok := m.slotStates[label]
	if !ok || !state.IsSelectable() {
		return ErrSlotNotSelectable
	}

	m.draft.Slot = label
	return nil
}

// ProceedToIdentity leaves schedule selection once date and slot are set
func (m *Machine) ProceedToIdentity() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateScheduleSelection {
		return ErrInvalidTransition
	}
	if m.draft.Date == "" || m.draft.Slot == "" {
		return ErrScheduleIncomplete
	}

	m.advance(StateIdentityCapture)
	return nil
}

// SubmitIdentity records the identity fields and advances to payment
// review if they validate. A non-empty ValidationErrors blocks the step
// and is resolved in place; it never contacts the store.
func (m *Machine) SubmitIdentity(name, phone, email string) ValidationErrors {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateIdentityCapture {
		return ValidationErrors{"state": ErrInvalidTransition.Error()}
	}

	m.draft.Name = name
	m.draft.Phone = phone
	m.draft.Email = email

	if errs := ValidateIdentity(name, phone, email); len(errs) > 0 {
		m.logger.Warn("Session: identity validation failed: %v", errs)
		return errs
	}

	m.advance(StatePaymentReview)
	return nil
}

// ConfirmPayment runs the verify-then-commit sequence. On success the
// store's reservation id and reference code land in the draft and the
// session advances to receipt capture.
//
// A slot conflict (raced by another session) returns the session to
// schedule selection with a refreshed grid; the returned error wraps
// availabilitystore.ErrSlotConflict so the caller can surface it as
// recoverable. A store error leaves the session in payment review with
// the draft intact so the user can retry without re-entering data.
func (m *Machine) ConfirmPayment(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StatePaymentReview {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	if m.committing {
		m.mu.Unlock()
		return ErrCommitInFlight
	}
	if m.draft.HasReservation() {
		// Already committed earlier (e.g. came back from receipt capture);
		// never create a second reservation for the same draft.
		m.advance(StateReceiptCapture)
		m.mu.Unlock()
		return nil
	}

	m.committing = true
	token := m.token
	draft := m.draft
	m.mu.Unlock()

	result, err := m.client.VerifyAndCommit(ctx, &draft)

	m.mu.Lock()
	m.committing = false

	if m.token != token || m.state != StatePaymentReview {
		m.mu.Unlock()
		m.logger.Warn("Session: discarding stale commit response for %s %s", draft.Date, draft.Slot)
		return nil
	}

	if err != nil {
		if errors.Is(err, availabilitystore.ErrSlotConflict) {
			// Recoverable: unwind to the step that can fix it.
			m.draft.Slot = ""
			m.slotStates = nil
			m.advance(StateScheduleSelection)
			date := m.draft.Date
			refreshToken := m.token
			m.mu.Unlock()

			m.logger.Warn("Session: slot taken in the race window, returning to schedule selection")
			booked := m.client.FetchBookedSlots(ctx, date)
			m.applyAvailability(refreshToken, date, booked)
			return err
		}

		m.mu.Unlock()
		m.logger.Error("Session: commit failed: %v", err)
		return err
	}

	m.draft.ReservationID = result.ReservationID
	m.draft.Reference = result.Reference
	m.advance(StateReceiptCapture)
	m.mu.Unlock()

	m.logger.Info("Session: reservation id=%d reference=%s committed", result.ReservationID, result.Reference)
	return nil
}

// AttachReceipt uploads the receipt artifact and reaches the terminal
// confirmed state
func (m *Machine) AttachReceipt(ctx context.Context, artifact []byte, filename string) error {
	m.mu.Lock()
	if m.state != StateReceiptCapture {
		m.mu.Unlock()
		return ErrInvalidTransition
	}

	token := m.token
	reservationID := m.draft.ReservationID
	m.mu.Unlock()

	if err := m.client.AttachReceipt(ctx, reservationID, artifact, filename); err != nil {
		m.logger.Error("Session: receipt upload failed for reservation id=%d: %v", reservationID, err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != token || m.state != StateReceiptCapture {
		m.logger.Warn("Session: discarding stale receipt response for reservation id=%d", reservationID)
		return nil
	}

	m.draft.Receipt = artifact
	m.advance(StateConfirmed)
	m.logger.Info("Session: reservation id=%d confirmed with receipt", reservationID)
	return nil
}

// Back moves to the immediately preceding step, preserving entered data
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateScheduleSelection:
		m.advance(StateServiceSelection)
	case StateIdentityCapture:
		m.advance(StateScheduleSelection)
	case StatePaymentReview:
		m.advance(StateIdentityCapture)
	case StateReceiptCapture:
		m.advance(StatePaymentReview)
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Rebook resets the whole draft from the terminal state and starts over
func (m *Machine) Rebook() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateConfirmed {
		return ErrInvalidTransition
	}

	m.draft.Reset()
	m.slotStates = nil
	m.advance(StateServiceSelection)
	m.logger.Info("Session: draft reset for rebooking")
	return nil
}

// advance moves to the next state and invalidates any in-flight responses
// issued for the previous one. Callers hold the lock.
func (m *Machine) advance(next State) {
	m.state = next
	m.token = uuid.New()
}
