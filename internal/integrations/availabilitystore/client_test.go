package availabilitystore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testDraft() *domain.BookingDraft {
	return &domain.BookingDraft{
		Service: &domain.Service{ID: 1, Name: "Signature Haircut", Price: 2500},
		Date:    "2026-09-02",
		Slot:    "10:00 AM",
		Name:    "John Doe",
		Phone:   "0771234567",
		Email:   "john@example.com",
	}
}

// recordingStore is a fake availability store that records request order
type recordingStore struct {
	mu      sync.Mutex
	calls   []string
	booked  []string
	bookFn  func(w http.ResponseWriter, r *http.Request)
	listing []reservationPayload
}

func (s *recordingStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/slots/"):
			s.record("slots")
			json.NewEncoder(w).Encode(s.booked)
		case r.Method == http.MethodPost && r.URL.Path == "/book":
			s.record("book")
			if s.bookFn != nil {
				s.bookFn(w, r)
				return
			}
			json.NewEncoder(w).Encode(bookResponse{ID: 42, Reference: "TS-1A2B3C"})
		case r.Method == http.MethodGet && r.URL.Path == "/bookings":
			s.record("bookings")
			json.NewEncoder(w).Encode(s.listing)
		case r.Method == http.MethodPost:
			s.record(r.URL.Path)
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	})
}

func (s *recordingStore) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *recordingStore) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func TestFetchBookedSlots_ReturnsStoreSet(t *testing.T) {
	store := &recordingStore{booked: []string{"10:00 AM", "02:00 PM"}}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	set := client.FetchBookedSlots(context.Background(), "2026-09-02")

	assert.True(t, set.Contains("10:00 AM"))
	assert.True(t, set.Contains("02:00 PM"))
	assert.False(t, set.Contains("09:00 AM"))
}

func TestFetchBookedSlots_FailsOpenOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, time.Second, nopLogger{})
	set := client.FetchBookedSlots(context.Background(), "2026-09-02")

	assert.Empty(t, set)
}

func TestVerifyAndCommit_FetchesBeforeBooking(t *testing.T) {
	store := &recordingStore{}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	result, err := client.VerifyAndCommit(context.Background(), testDraft())

	require.NoError(t, err)
	assert.Equal(t, int64(42), result.ReservationID)
	assert.Equal(t, "TS-1A2B3C", result.Reference)
	// the fresh availability fetch must complete before /book is issued
	assert.Equal(t, []string{"slots", "book"}, store.recorded())
}

func TestVerifyAndCommit_ConflictOnRecheckSkipsBooking(t *testing.T) {
	store := &recordingStore{booked: []string{"10:00 AM"}}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	result, err := client.VerifyAndCommit(context.Background(), testDraft())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, []string{"slots"}, store.recorded(), "no create call after a re-check conflict")
}

func TestVerifyAndCommit_StoreReportedConflict(t *testing.T) {
	store := &recordingStore{
		bookFn: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(errorResponse{Error: "slot already booked"})
		},
	}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	_, err := client.VerifyAndCommit(context.Background(), testDraft())

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestVerifyAndCommit_UnexpectedRejectionIsStoreError(t *testing.T) {
	store := &recordingStore{
		bookFn: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(errorResponse{Error: "boom"})
		},
	}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	_, err := client.VerifyAndCommit(context.Background(), testDraft())

	assert.ErrorIs(t, err, ErrStore)
	assert.NotErrorIs(t, err, ErrSlotConflict)
}

func TestVerifyAndCommit_IncompleteDraftFailsLocally(t *testing.T) {
	store := &recordingStore{}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	draft := testDraft()
	draft.Slot = ""

	_, err := client.VerifyAndCommit(context.Background(), draft)

	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Empty(t, store.recorded())
}

func TestAttachReceipt_PreconditionWithoutNetworkCall(t *testing.T) {
	store := &recordingStore{}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	err := client.AttachReceipt(context.Background(), 0, []byte("img"), "receipt.jpg")
	assert.ErrorIs(t, err, ErrPrecondition)

	err = client.AttachReceipt(context.Background(), 42, nil, "receipt.jpg")
	assert.ErrorIs(t, err, ErrPrecondition)

	assert.Empty(t, store.recorded(), "precondition failures must not reach the store")
}

func TestAttachReceipt_UploadsMultipart(t *testing.T) {
	received := make(chan []byte, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/upload-receipt/42", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		file, _, err := r.FormFile("receipt")
		require.NoError(t, err)
		defer file.Close()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		received <- buf[:n]
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	err := client.AttachReceipt(context.Background(), 42, []byte("img-bytes"), "receipt.jpg")

	require.NoError(t, err)
	assert.Equal(t, []byte("img-bytes"), <-received)
}

func TestListReservations_PreservesStoreOrder(t *testing.T) {
	store := &recordingStore{
		listing: []reservationPayload{
			{ID: 3, Service: "Beard Sculpting", Status: "pending"},
			{ID: 1, Service: "Signature Haircut", Status: "confirmed"},
		},
	}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	reservations, err := client.ListReservations(context.Background())

	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, int64(3), reservations[0].ID)
	assert.Equal(t, int64(1), reservations[1].ID)
	assert.Equal(t, domain.StatusConfirmed, reservations[1].Status)
}

func TestModerationPosts(t *testing.T) {
	store := &recordingStore{}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	ctx := context.Background()

	require.NoError(t, client.Confirm(ctx, 7))
	require.NoError(t, client.Cancel(ctx, 7))
	require.NoError(t, client.Delete(ctx, 7))
	require.NoError(t, client.ClearAll(ctx))

	assert.Equal(t, []string{"/confirm/7", "/cancel/7", "/delete/7", "/clear-all"}, store.recorded())
}
