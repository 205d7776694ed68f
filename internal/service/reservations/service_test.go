package reservations

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
	storage "github.com/pixel-crew/twinscissors-booking/internal/infra/storage/reservation"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	items     map[int64]*domain.Reservation
	listErr   error
	mutErr    error
	statuses  map[int64]domain.ReservationStatus
	receipts  map[int64][]byte
	filenames map[int64]string
	cleared   bool
}

func newFakeRepo(items ...*domain.Reservation) *fakeRepo {
	m := make(map[int64]*domain.Reservation, len(items))
	for _, r := range items {
		m[r.ID] = r
	}
	return &fakeRepo{
		items:     m,
		statuses:  map[int64]domain.ReservationStatus{},
		receipts:  map[int64][]byte{},
		filenames: map[int64]string{},
	}
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, storage.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]*domain.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Reservation, 0, len(f.items))
	for id := int64(1); id <= int64(len(f.items))+10; id++ {
		if r, ok := f.items[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) BookedSlots(ctx context.Context, date string) ([]string, error) {
	out := []string{}
	for _, r := range f.items {
		if r.Date == date && r.IsActive() {
			out = append(out, r.Slot)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	if _, ok := f.items[id]; !ok {
		return storage.ErrReservationNotFound
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeRepo) AttachReceipt(ctx context.Context, id int64, receipt []byte, filename string) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	if _, ok := f.items[id]; !ok {
		return storage.ErrReservationNotFound
	}
	f.receipts[id] = receipt
	f.filenames[id] = filename
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	if _, ok := f.items[id]; !ok {
		return storage.ErrReservationNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) DeleteAll(ctx context.Context) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	f.items = map[int64]*domain.Reservation{}
	f.cleared = true
	return nil
}

func pending(id int64) *domain.Reservation {
	return &domain.Reservation{
		ID:           id,
		ServiceName:  "Signature Haircut",
		ServicePrice: 2500,
		Date:         "2026-09-02",
		Slot:         "10:00 AM",
		Name:         "John Doe",
		Phone:        "0771234567",
		Email:        "john@example.com",
		Status:       domain.StatusPending,
		Reference:    "TS-A1B2C3",
	}
}

func TestList_MapsDomainFields(t *testing.T) {
	repo := newFakeRepo(pending(1))
	svc := NewService(repo, nopLogger{})

	list, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "Signature Haircut", list[0].Service)
	assert.Equal(t, "10:00 AM", list[0].Time)
	assert.Equal(t, "pending", list[0].Status)
	assert.Equal(t, "TS-A1B2C3", list[0].Reference)
}

func TestBookedSlots_RejectsMalformedDate(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	_, err := svc.BookedSlots(context.Background(), "02-09-2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBookedSlots_ReturnsActiveSlots(t *testing.T) {
	cancelled := pending(2)
	cancelled.Slot = "11:00 AM"
	cancelled.Status = domain.StatusCancelled

	repo := newFakeRepo(pending(1), cancelled)
	svc := NewService(repo, nopLogger{})

	slots, err := svc.BookedSlots(context.Background(), "2026-09-02")

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM"}, slots)
}

func TestConfirm_PendingReservation(t *testing.T) {
	repo := newFakeRepo(pending(1))
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Confirm(context.Background(), 1))
	assert.Equal(t, domain.StatusConfirmed, repo.statuses[1])
}

func TestConfirm_CancelledReservationRejected(t *testing.T) {
	r := pending(1)
	r.Status = domain.StatusCancelled
	svc := NewService(newFakeRepo(r), nopLogger{})

	err := svc.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestConfirm_UnknownID(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	err := svc.Confirm(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_ConfirmedReservationAllowed(t *testing.T) {
	r := pending(1)
	r.Status = domain.StatusConfirmed
	repo := newFakeRepo(r)
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Cancel(context.Background(), 1))
	assert.Equal(t, domain.StatusCancelled, repo.statuses[1])
}

func TestCancel_AlreadyCancelledRejected(t *testing.T) {
	r := pending(1)
	r.Status = domain.StatusCancelled
	svc := NewService(newFakeRepo(r), nopLogger{})

	err := svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestDelete_RemovesReservation(t *testing.T) {
	repo := newFakeRepo(pending(1))
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.items)
}

func TestClearAll_WipesStorage(t *testing.T) {
	repo := newFakeRepo(pending(1), pending(2))
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.ClearAll(context.Background()))
	assert.True(t, repo.cleared)
}

func TestAttachReceipt_StoresArtifact(t *testing.T) {
	repo := newFakeRepo(pending(1))
	svc := NewService(repo, nopLogger{})

	err := svc.AttachReceipt(context.Background(), 1, []byte("jpeg bytes"), "receipt.jpg")

	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), repo.receipts[1])
	assert.Equal(t, "receipt.jpg", repo.filenames[1])
}

func TestAttachReceipt_EmptyRejected(t *testing.T) {
	svc := NewService(newFakeRepo(pending(1)), nopLogger{})

	err := svc.AttachReceipt(context.Background(), 1, nil, "receipt.jpg")
	assert.ErrorIs(t, err, ErrInvalidReceipt)
}

func TestAttachReceipt_OversizedRejected(t *testing.T) {
	svc := NewService(newFakeRepo(pending(1)), nopLogger{})

	huge := bytes.Repeat([]byte{0xFF}, domain.MaxReceiptBytes+1)
	err := svc.AttachReceipt(context.Background(), 1, huge, "receipt.jpg")
	assert.ErrorIs(t, err, ErrInvalidReceipt)
}

func TestMutation_RepositoryFailureWrapped(t *testing.T) {
	repo := newFakeRepo(pending(1))
	repo.mutErr = errors.New("connection reset")
	svc := NewService(repo, nopLogger{})

	err := svc.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
