package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
	"github.com/pixel-crew/twinscissors-booking/internal/integrations/availabilitystore"
	"github.com/pixel-crew/twinscissors-booking/internal/slots"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

// fakeClient is a scripted protocol client
type fakeClient struct {
	mu          sync.Mutex
	booked      map[string][]string
	fetchDates  []string
	commitErr   error
	commitCalls int
	commitGate  chan struct{} // when set, VerifyAndCommit blocks until closed
	attachErr   error
	attachCalls int
}

func (f *fakeClient) FetchBookedSlots(ctx context.Context, date string) domain.SlotSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchDates = append(f.fetchDates, date)
	return domain.NewSlotSet(f.booked[date])
}

func (f *fakeClient) VerifyAndCommit(ctx context.Context, draft *domain.BookingDraft) (*availabilitystore.CommitResult, error) {
	f.mu.Lock()
	f.commitCalls++
	gate := f.commitGate
	err := f.commitErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &availabilitystore.CommitResult{ReservationID: 42, Reference: "TS-1A2B3C"}, nil
}

func (f *fakeClient) AttachReceipt(ctx context.Context, reservationID int64, artifact []byte, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attachCalls++
	return f.attachErr
}

// 2026-09-02 is a Wednesday, an allowed booking day
const nextWednesday = "2026-09-02"

func newTestMachine(client ProtocolClient) *Machine {
	m := NewMachine(Config{
		Catalog:  domain.DefaultCatalog,
		Schedule: domain.DefaultSchedule(),
	}, client, nopLogger{})
	// the day before the test date, early morning
	m.clock = &fixedClock{t: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}
	return m
}

// driveToSchedule advances a fresh machine to schedule selection
func driveToSchedule(t *testing.T, m *Machine) {
	t.Helper()
	require.NoError(t, m.SelectService(1))
	require.Equal(t, StateScheduleSelection, m.State())
}

// driveToPayment advances a fresh machine to payment review
func driveToPayment(t *testing.T, m *Machine) {
	t.Helper()
	driveToSchedule(t, m)
	_, err := m.SelectDate(context.Background(), nextWednesday)
	require.NoError(t, err)
	require.NoError(t, m.SelectSlot("10:00 AM"))
	require.NoError(t, m.ProceedToIdentity())
	require.Nil(t, m.SubmitIdentity("John Doe", "0771234567", "john@example.com"))
	require.Equal(t, StatePaymentReview, m.State())
}

func TestSelectService_UnknownIDRefused(t *testing.T) {
	m := newTestMachine(&fakeClient{})

	assert.ErrorIs(t, m.SelectService(999), ErrServiceNotFound)
	assert.Equal(t, StateServiceSelection, m.State())
}

func TestSelectDate_FetchesAvailabilityAndComputesGrid(t *testing.T) {
	client := &fakeClient{booked: map[string][]string{nextWednesday: {"10:00 AM"}}}
	m := newTestMachine(client)
	driveToSchedule(t, m)

	grid, err := m.SelectDate(context.Background(), nextWednesday)
	require.NoError(t, err)

	assert.Equal(t, []string{nextWednesday}, client.fetchDates)
	assert.Equal(t, slots.DisabledBooked, grid["10:00 AM"])
	assert.Equal(t, slots.Selectable, grid["11:00 AM"])
}

func TestSelectDate_ClearsPreviousSlot(t *testing.T) {
	m := newTestMachine(&fakeClient{})
	driveToSchedule(t, m)

	_, err := m.SelectDate(context.Background(), nextWednesday)
	require.NoError(t, err)
	require.NoError(t, m.SelectSlot("10:00 AM"))
	require.Equal(t, "10:00 AM", m.Draft().Slot)

	// 2026-09-03 is a Thursday
	_, err = m.SelectDate(context.Background(), "2026-09-03")
	require.NoError(t, err)

	assert.Empty(t, m.Draft().Slot, "date change must clear the chosen slot")
}

func TestSelectSlot_RefusesUnselectable(t *testing.T) {
	client := &fakeClient{booked: map[string][]string{nextWednesday: {"10:00 AM"}}}
	m := newTestMachine(client)
	driveToSchedule(t, m)

	_, err := m.SelectDate(context.Background(), nextWednesday)
	require.NoError(t, err)

	assert.ErrorIs(t, m.SelectSlot("10:00 AM"), ErrSlotNotSelectable)
	assert.ErrorIs(t, m.SelectSlot("08:00 AM"), ErrSlotNotSelectable) // not on the grid
	assert.NoError(t, m.SelectSlot("11:00 AM"))
}

func TestSelectSlot_AllSlotsDisabledOnClosedWeekday(t *testing.T) {
	m := newTestMachine(&fakeClient{})
	driveToSchedule(t, m)

	// 2026-09-04 is a Friday, not a booking day
	grid, err := m.SelectDate(context.Background(), "2026-09-04")
	require.NoError(t, err)

	for label, state := range grid {
		assert.Equal(t, slots.DisabledWeekday, state, "slot %s", label)
	}
	assert.ErrorIs(t, m.SelectSlot("11:00 AM"), ErrSlotNotSelectable)
}

func TestProceedToIdentity_RequiresDateAndSlot(t *testing.T) {
	m := newTestMachine(&fakeClient{})
	driveToSchedule(t, m)

	assert.ErrorIs(t, m.ProceedToIdentity(), ErrScheduleIncomplete)
}

func TestSubmitIdentity_Fixtures(t *testing.T) {
	tests := []struct {
		name      string
		inName    string
		inPhone   string
		inEmail   string
		badFields []string
	}{
		{"all valid", "John Doe", "0771234567", "a@b.com", nil},
		{"digits in name", "John3", "0771234567", "a@b.com", []string{"name"}},
		{"name too short", "Jo", "0771234567", "a@b.com", []string{"name"}},
		{"phone too short", "John Doe", "077123456", "a@b.com", []string{"phone"}},
		{"email without tld", "John Doe", "0771234567", "a@b", []string{"email"}},
		{"everything wrong", "J4", "1", "x", []string{"name", "phone", "email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateIdentity(tt.inName, tt.inPhone, tt.inEmail)
			require.Len(t, errs, len(tt.badFields))
			for _, field := range tt.badFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestSubmitIdentity_BlocksAdvancementUntilValid(t *testing.T) {
	m := newTestMachine(&fakeClient{})
	driveToSchedule(t, m)
	_, err := m.SelectDate(context.Background(), nextWednesday)
	require.NoError(t, err)
	require.NoError(t, m.SelectSlot("10:00 AM"))
	require.NoError(t, m.ProceedToIdentity())

	errs := m.SubmitIdentity("Jo", "077123456", "a@b")
	assert.Len(t, errs, 3)
	assert.Equal(t, StateIdentityCapture, m.State())

	assert.Nil(t, m.SubmitIdentity("John Doe", "0771234567", "a@b.com"))
	assert.Equal(t, StatePaymentReview, m.State())
}

func TestConfirmPayment_HappyPath(t *testing.T) {
	client := &fakeClient{}
	m := newTestMachine(client)
	driveToPayment(t, m)

	require.NoError(t, m.ConfirmPayment(context.Background()))

	assert.Equal(t, StateReceiptCapture, m.State())
	draft := m.Draft()
	assert.Equal(t, int64(42), draft.ReservationID)
	assert.Equal(t, "TS-1A2B3C", draft.Reference)
}

func TestConfirmPayment_ConflictUnwindsToScheduleWithRefreshedGrid(t *testing.T) {
	client := &fakeClient{
		commitErr: availabilitystore.ErrSlotConflict,
		booked:    map[string][]string{},
	}
	m := newTestMachine(client)
	driveToPayment(t, m)

	// the slot gets taken between selection and commit
	client.mu.Lock()
	client.booked[nextWednesday] = []string{"10:00 AM"}
	client.mu.Unlock()

	err := m.ConfirmPayment(context.Background())
	assert.ErrorIs(t, err, availabilitystore.ErrSlotConflict)

	assert.Equal(t, StateScheduleSelection, m.State())
	draft := m.Draft()
	assert.Empty(t, draft.Slot, "conflicting slot must be cleared")
	assert.Equal(t, nextWednesday, draft.Date, "date survives the unwind")
	assert.Equal(t, "John Doe", draft.Name, "identity survives the unwind")

	// grid was refreshed and now shows the slot as booked
	assert.Equal(t, slots.DisabledBooked, m.SlotStates()["10:00 AM"])
}

func TestConfirmPayment_StoreErrorPreservesDraftAndState(t *testing.T) {
	client := &fakeClient{commitErr: availabilitystore.ErrStore}
	m := newTestMachine(client)
	driveToPayment(t, m)

	err := m.ConfirmPayment(context.Background())
	assert.ErrorIs(t, err, availabilitystore.ErrStore)

	assert.Equal(t, StatePaymentReview, m.State())
	assert.Equal(t, "10:00 AM", m.Draft().Slot)
}

func TestConfirmPayment_SecondCommitBlockedWhileInFlight(t *testing.T) {
	gate := make(chan struct{})
	client := &fakeClient{commitGate: gate}
	m := newTestMachine(client)
	driveToPayment(t, m)

	done := make(chan error, 1)
	go func() { done <- m.ConfirmPayment(context.Background()) }()

	// wait for the first commit to enter the client
	require.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.commitCalls == 1
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, m.ConfirmPayment(context.Background()), ErrCommitInFlight)

	close(gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, client.commitCalls)
}

func TestConfirmPayment_StaleResponseDiscardedAfterBack(t *testing.T) {
	gate := make(chan struct{})
	client := &fakeClient{commitGate: gate}
	m := newTestMachine(client)
	driveToPayment(t, m)

	done := make(chan error, 1)
	go func() { done <- m.ConfirmPayment(context.Background()) }()

	require.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.commitCalls == 1
	}, time.Second, 5*time.Millisecond)

	// user navigates away while the commit is pending
	require.NoError(t, m.Back())
	require.Equal(t, StateIdentityCapture, m.State())

	close(gate)
	require.NoError(t, <-done)

	// the late success must not be applied to a state that no longer issued it
	assert.Equal(t, StateIdentityCapture, m.State())
	assert.Zero(t, m.Draft().ReservationID)
}

func TestConfirmPayment_NeverCommitsTwice(t *testing.T) {
	client := &fakeClient{}
	m := newTestMachine(client)
	driveToPayment(t, m)

	require.NoError(t, m.ConfirmPayment(context.Background()))
	require.Equal(t, StateReceiptCapture, m.State())

	// back to payment review and confirm again: no second create call
	require.NoError(t, m.Back())
	require.NoError(t, m.ConfirmPayment(context.Background()))

	assert.Equal(t, StateReceiptCapture, m.State())
	assert.Equal(t, 1, client.commitCalls)
}

func TestAttachReceipt_ReachesConfirmed(t *testing.T) {
	client := &fakeClient{}
	m := newTestMachine(client)
	driveToPayment(t, m)
	require.NoError(t, m.ConfirmPayment(context.Background()))

	require.NoError(t, m.AttachReceipt(context.Background(), []byte("img"), "receipt.jpg"))

	assert.Equal(t, StateConfirmed, m.State())
	assert.Equal(t, []byte("img"), m.Draft().Receipt)
}

func TestAttachReceipt_StoreErrorKeepsState(t *testing.T) {
	client := &fakeClient{attachErr: availabilitystore.ErrStore}
	m := newTestMachine(client)
	driveToPayment(t, m)
	require.NoError(t, m.ConfirmPayment(context.Background()))

	err := m.AttachReceipt(context.Background(), []byte("img"), "receipt.jpg")
	assert.ErrorIs(t, err, availabilitystore.ErrStore)
	assert.Equal(t, StateReceiptCapture, m.State())
}

func TestRebook_ResetsEverything(t *testing.T) {
	client := &fakeClient{}
	m := newTestMachine(client)
	driveToPayment(t, m)
	require.NoError(t, m.ConfirmPayment(context.Background()))
	require.NoError(t, m.AttachReceipt(context.Background(), []byte("img"), "receipt.jpg"))
	require.Equal(t, StateConfirmed, m.State())

	require.NoError(t, m.Rebook())

	assert.Equal(t, StateServiceSelection, m.State())
	assert.Equal(t, domain.BookingDraft{}, m.Draft())
}

func TestBack_FromInitialStateRefused(t *testing.T) {
	m := newTestMachine(&fakeClient{})
	assert.ErrorIs(t, m.Back(), ErrInvalidTransition)
}
