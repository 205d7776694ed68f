package availabilitystore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
)

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the availability store: the durable record of booked
// slots and the sole arbiter of conflicting concurrent reservations.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a new availability store client
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FetchBookedSlots returns the set of slot labels already booked for the
// date. Fails open: on network or parse failure it logs a warning and
// returns an empty set rather than blocking the widget, since the commit
// path re-verifies against the store regardless.
func (c *Client) FetchBookedSlots(ctx context.Context, date string) domain.SlotSet {
	labels, err := c.fetchBookedSlots(ctx, date)
	if err != nil {
		c.log.Warn("FetchBookedSlots: date=%s unavailable, treating as empty: %v", date, err)
		return domain.SlotSet{}
	}
	return domain.NewSlotSet(labels)
}

func (c *Client) fetchBookedSlots(ctx context.Context, date string) ([]string, error) {
	url := fmt.Sprintf("%s/slots/%s", c.baseURL, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrStore, resp.StatusCode, string(body))
	}

	var labels []string
	if err := json.NewDecoder(resp.Body).Decode(&labels); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrStore, err)
	}

	return labels, nil
}

// VerifyAndCommit performs the two-phase commit discipline: a fresh
// availability fetch for the draft's date, then the create-reservation
// call. The re-check always completes before the create call is issued;
// that ordering is the correctness property of the whole protocol.
//
// A conflict found by the re-check, or reported by the store at commit
// time, is returned as ErrSlotConflict: the caller must return the session
// to schedule selection with a refreshed grid. No local retry.
func (c *Client) VerifyAndCommit(ctx context.Context, draft *domain.BookingDraft) (*CommitResult, error) {
	if draft.Service == nil || draft.Date == "" || draft.Slot == "" {
		return nil, fmt.Errorf("%w: draft is missing service, date or slot", ErrPrecondition)
	}
	if draft.HasReservation() {
		return nil, fmt.Errorf("%w: draft already has reservation id=%d", ErrPrecondition, draft.ReservationID)
	}

	// 1. Mandatory race check: re-fetch availability for the same date.
	// Skipping this is the single bug class the protocol exists to prevent.
	booked := c.FetchBookedSlots(ctx, draft.Date)
	if booked.Contains(draft.Slot) {
		c.log.Warn("VerifyAndCommit: slot %s on %s taken during the race window", draft.Slot, draft.Date)
		return nil, ErrSlotConflict
	}

	// 2. Create the reservation.
	payload := bookRequest{
		Service: draft.Service.Name,
		Price:   draft.Service.Price,
		Date:    draft.Date,
		Time:    draft.Slot,
		Name:    draft.Name,
		Phone:   draft.Phone,
		Email:   draft.Email,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/book", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var result bookResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", ErrStore, err)
		}
		c.log.Info("VerifyAndCommit: reservation id=%d reference=%s created for %s %s",
			result.ID, result.Reference, draft.Date, draft.Slot)
		return &CommitResult{ReservationID: result.ID, Reference: result.Reference}, nil

	case http.StatusConflict:
		// Store-side arbitration: another session won the slot after our
		// re-check. Treated the same as a re-check conflict.
		c.log.Warn("VerifyAndCommit: store rejected %s %s as already booked", draft.Date, draft.Slot)
		return nil, ErrSlotConflict

	default:
		reject := decodeError(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrStore, resp.StatusCode, reject)
	}
}

// AttachReceipt uploads the payment receipt artifact for an already
// created reservation. Both the reservation id and a non-empty artifact
// are required; missing either fails locally without a network call.
func (c *Client) AttachReceipt(ctx context.Context, reservationID int64, artifact []byte, filename string) error {
	if reservationID == 0 {
		return fmt.Errorf("%w: no reservation id", ErrPrecondition)
	}
	if len(artifact) == 0 {
		return fmt.Errorf("%w: empty receipt artifact", ErrPrecondition)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("receipt", filename)
	if err != nil {
		return fmt.Errorf("%w: failed to build multipart body: %v", ErrInternal, err)
	}
	if _, err := part.Write(artifact); err != nil {
		return fmt.Errorf("%w: failed to write artifact: %v", ErrInternal, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: failed to finalize multipart body: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/upload-receipt/%d", c.baseURL, reservationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		reject := decodeError(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrStore, resp.StatusCode, reject)
	}

	c.log.Info("AttachReceipt: receipt attached to reservation id=%d (%d bytes)", reservationID, len(artifact))
	return nil
}

// ListReservations returns all reservations in the store's own order
func (c *Client) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bookings", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrStore, resp.StatusCode, string(body))
	}

	var payloads []reservationPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrStore, err)
	}

	reservations := make([]domain.Reservation, 0, len(payloads))
	for i := range payloads {
		reservations = append(reservations, payloads[i].toDomain())
	}
	return reservations, nil
}

// Confirm marks a reservation confirmed
func (c *Client) Confirm(ctx context.Context, reservationID int64) error {
	return c.post(ctx, fmt.Sprintf("/confirm/%d", reservationID))
}

// Cancel marks a reservation cancelled, freeing its slot
func (c *Client) Cancel(ctx context.Context, reservationID int64) error {
	return c.post(ctx, fmt.Sprintf("/cancel/%d", reservationID))
}

// Delete removes a reservation from the store
func (c *Client) Delete(ctx context.Context, reservationID int64) error {
	return c.post(ctx, fmt.Sprintf("/delete/%d", reservationID))
}

// ClearAll removes every reservation from the store
func (c *Client) ClearAll(ctx context.Context) error {
	return c.post(ctx, "/clear-all")
}

// post issues a bodyless acknowledgement-style mutation
func (c *Client) post(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		reject := decodeError(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrStore, resp.StatusCode, reject)
	}

	return nil
}

func decodeError(r io.Reader) string {
	var reject errorResponse
	if err := json.NewDecoder(r).Decode(&reject); err != nil || reject.Error == "" {
		return "no error detail"
	}
	return reject.Error
}
