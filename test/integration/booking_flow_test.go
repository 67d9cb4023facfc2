//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"rezkit/pkg/model"
	"rezkit/test/integration/testutil"
)

type sessionEnvelope struct {
	Data model.Session `json:"data"`
}

type quoteEnvelope struct {
	Data model.Quote `json:"data"`
}

// Walks a session from open to the payment step the way the widget
// does: one call per user action. Payment itself needs a provider and
// stays out of scope here.
func TestBookingFlow_OpenToPaymentStep(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	item := createItem(t, client, testutil.ValidItem())

	checkIn := time.Now().UTC().AddDate(0, 1, 0)
	checkOut := checkIn.AddDate(0, 0, 2)

	// Open
	sess := openSession(t, client, item.ID)
	if sess.Step != model.StepDates {
		t.Fatalf("expected step dates after open, got %q", sess.Step)
	}
	if sess.Guests != 1 || sess.Units != 1 {
		t.Errorf("expected 1 guest / 1 unit defaults, got %d / %d", sess.Guests, sess.Units)
	}

	base := "/api/v1/sessions/" + sess.ID

	// First calendar click sets the check-in
	resp := client.POST(t, base+"/dates", dateBody(checkIn))
	sess = decodeSession(t, resp)
	if sess.CheckIn == nil {
		t.Fatal("expected check-in to be set")
	}
	if !sess.AwaitingCheckout {
		t.Error("expected session to await a checkout date")
	}

	// Second click completes the range
	resp = client.POST(t, base+"/dates", dateBody(checkOut))
	sess = decodeSession(t, resp)
	if sess.CheckOut == nil {
		t.Fatal("expected check-out to be set")
	}
	if sess.AwaitingCheckout {
		t.Error("expected checkout selection to be finished")
	}

	// Two guests fit the base occupancy, so the quote is price * nights
	resp = client.PUT(t, base+"/guests", map[string]int{"guests": 2})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	quoteResp := client.GET(t, base+"/quote")
	testutil.AssertStatusCode(t, quoteResp, http.StatusOK)
	var quote quoteEnvelope
	if err := quoteResp.UnmarshalJSON(&quote); err != nil {
		t.Fatalf("failed to unmarshal quote: %v", err)
	}
	if quote.Data.Nights != 2 {
		t.Errorf("expected 2 nights, got %d", quote.Data.Nights)
	}
	if quote.Data.Total != 300 {
		t.Errorf("expected total 300, got %v", quote.Data.Total)
	}

	// Confirm dates, fill in the guest, confirm details
	resp = client.POST(t, base+"/confirm-dates", nil)
	sess = decodeSession(t, resp)
	if sess.Step != model.StepDetails {
		t.Fatalf("expected step details, got %q", sess.Step)
	}

	contact := model.Contact{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+4915112345678",
	}
	resp = client.PUT(t, base+"/contact", contact)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = client.POST(t, base+"/confirm-details", nil)
	sess = decodeSession(t, resp)
	if sess.Step != model.StepPayment {
		t.Fatalf("expected step payment, got %q", sess.Step)
	}

	// The session is readable in its new state
	getResp := client.GET(t, base)
	sess = decodeSession(t, getResp)
	if sess.Step != model.StepPayment {
		t.Errorf("expected persisted step payment, got %q", sess.Step)
	}
	if sess.Contact.Email != contact.Email {
		t.Errorf("expected contact to be stored, got %q", sess.Contact.Email)
	}
}

func TestBookingFlow_ConfirmDatesWithoutSelection(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	item := createItem(t, client, testutil.ValidItem())
	sess := openSession(t, client, item.ID)

	// Act: confirm before picking any dates
	resp := client.POST(t, "/api/v1/sessions/"+sess.ID+"/confirm-dates", nil)

	// Assert
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
}

func TestBookingFlow_CloseSession(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	item := createItem(t, client, testutil.ValidItem())
	sess := openSession(t, client, item.ID)

	// Act
	closeResp := client.DELETE(t, "/api/v1/sessions/"+sess.ID)
	testutil.AssertStatusCode(t, closeResp, http.StatusNoContent)

	// Assert: the session survives as a closed tombstone
	getResp := client.GET(t, "/api/v1/sessions/"+sess.ID)
	testutil.AssertStatusCode(t, getResp, http.StatusOK)
	closed := decodeSession(t, getResp)
	if !closed.Closed {
		t.Error("expected session to be marked closed")
	}

	// Closed sessions refuse further widget actions
	resp := client.POST(t, "/api/v1/sessions/"+sess.ID+"/dates", dateBody(time.Now().AddDate(0, 1, 0)))
	testutil.AssertStatusCode(t, resp, http.StatusGone)
	testutil.AssertErrorCode(t, resp, "SESSION_CLOSED")
}

func TestBookingFlow_UnknownItem(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	// Act: open against an id that does not exist
	resp := client.POST(t, "/api/v1/sessions", map[string]string{"item_id": "68b1c2d3e4f5a6b7c8d9e0f1"})

	// Assert
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	testutil.AssertErrorCode(t, resp, "NOT_FOUND")
}

func TestBookings_EmptyListAndUnknownReference(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	// Act / Assert: nothing booked yet
	listResp := client.GET(t, "/api/v1/bookings")
	testutil.AssertStatusCode(t, listResp, http.StatusOK)

	var list struct {
		Data       []model.BookingRecord `json:"data"`
		TotalCount int64                 `json:"total_count"`
	}
	if err := listResp.UnmarshalJSON(&list); err != nil {
		t.Fatalf("failed to unmarshal list: %v", err)
	}
	if list.TotalCount != 0 {
		t.Errorf("expected empty booking list, got %d", list.TotalCount)
	}

	// A reference that was never issued
	missingResp := client.GET(t, "/api/v1/bookings/a6e5b0d2-7c4f-4f7a-9b1e-2f3a4b5c6d7e")
	testutil.AssertStatusCode(t, missingResp, http.StatusNotFound)
	testutil.AssertErrorCode(t, missingResp, "NOT_FOUND")
}

func openSession(t *testing.T, client *testutil.Client, itemID string) model.Session {
	t.Helper()

	resp := client.POST(t, "/api/v1/sessions", map[string]string{"item_id": itemID})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	return decodeSessionBody(t, resp)
}

func decodeSession(t *testing.T, resp *testutil.Response) model.Session {
	t.Helper()

	testutil.AssertStatusCode(t, resp, http.StatusOK)
	return decodeSessionBody(t, resp)
}

func decodeSessionBody(t *testing.T, resp *testutil.Response) model.Session {
	t.Helper()

	var env sessionEnvelope
	if err := resp.UnmarshalJSON(&env); err != nil {
		t.Fatalf("failed to unmarshal session: %v", err)
	}
	return env.Data
}

func dateBody(day time.Time) map[string]string {
	return map[string]string{"date": day.Format(model.DayLayout)}
}
