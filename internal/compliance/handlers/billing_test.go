package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rbarros/vigia/internal/compliance/billing"
	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/rbarros/vigia/internal/compliance/notify"
	"github.com/google/uuid"
)

func TestListPlansHandler(t *testing.T) {
	router, _, token := newTestServer(t, &mocks{})
	rec := doRequest(t, router, http.MethodGet, "/v1/billing/plans", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []billing.Plan
	decodeResponse(t, rec, &resp)
	if len(resp) != len(billing.Plans) {
		t.Errorf("expected %d plans, got %d", len(billing.Plans), len(resp))
	}
}

func TestCheckoutHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotPlan string
		m := &mocks{
			billing: mockBillingController{
				checkoutFunc: func(_ context.Context, companyID uuid.UUID, planID string) (*billing.Session, error) {
					gotPlan = planID
					return &billing.Session{
						ID:        "sess_123",
						URL:       "https://pay.example/sess_123",
						PlanID:    planID,
						CompanyID: companyID,
					}, nil
				},
			},
		}
		router, _, token := newTestServer(t, m)
		rec := doRequest(t, router, http.MethodPost, "/v1/billing/checkout", token, checkoutRequest{PlanID: models.PlanPremium})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPlan != models.PlanPremium {
			t.Errorf("expected plan %q, got %q", models.PlanPremium, gotPlan)
		}
		var resp checkoutResponse
		decodeResponse(t, rec, &resp)
		if resp.SessionID != "sess_123" || resp.CheckoutURL == "" {
			t.Errorf("unexpected checkout response: %+v", resp)
		}
	})

	t.Run("UnknownPlan", func(t *testing.T) {
		m := &mocks{
			billing: mockBillingController{
				checkoutFunc: func(_ context.Context, _ uuid.UUID, _ string) (*billing.Session, error) {
					return nil, e.ErrInvalidInput
				},
			},
		}
		router, _, token := newTestServer(t, m)
		rec := doRequest(t, router, http.MethodPost, "/v1/billing/checkout", token, checkoutRequest{PlanID: "price_unknown"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestConfirmPaymentHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		due := time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC)
		m := &mocks{
			billing: mockBillingController{
				confirmFunc: func(_ context.Context, companyID uuid.UUID, sessionID string) (*models.Company, error) {
					if sessionID != "sess_123" {
						t.Errorf("expected session sess_123, got %q", sessionID)
					}
					return &models.Company{
						ID:            companyID,
						Name:          "Acme Ltda",
						Plan:          models.PlanPremium,
						PaymentStatus: models.PaymentPaid,
						NextDueDate:   &due,
						Active:        true,
					}, nil
				},
			},
		}
		router, _, token := newTestServer(t, m)
		rec := doRequest(t, router, http.MethodPost, "/v1/billing/verify", token, confirmRequest{SessionID: "sess_123"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp companyResponse
		decodeResponse(t, rec, &resp)
		if resp.PaymentStatus != string(models.PaymentPaid) {
			t.Errorf("expected payment status paid, got %q", resp.PaymentStatus)
		}
		if resp.NextDueDate != "2026-09-27" {
			t.Errorf("expected next due date 2026-09-27, got %q", resp.NextDueDate)
		}
	})

	t.Run("UnknownSession", func(t *testing.T) {
		m := &mocks{
			billing: mockBillingController{
				confirmFunc: func(_ context.Context, _ uuid.UUID, _ string) (*models.Company, error) {
					return nil, billing.ErrSessionNotFound
				},
			},
		}
		router, _, token := newTestServer(t, m)
		rec := doRequest(t, router, http.MethodPost, "/v1/billing/verify", token, confirmRequest{SessionID: "sess_gone"})
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestSendNotificationHandler(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		receipt := &notify.Receipt{ID: uuid.New(), SentAt: time.Now(), Status: "simulated"}
		var gotMsg notify.Message
		m := &mocks{
			notifier: mockNotifier{
				sendFunc: func(_ context.Context, _ uuid.UUID, msg notify.Message) (*notify.Receipt, error) {
					gotMsg = msg
					return receipt, nil
				},
			},
		}
		router, _, token := newTestServer(t, m)
		rec := doRequest(t, router, http.MethodPost, "/v1/notifications", token, notificationRequest{
			Channel:   "email",
			Recipient: "rh@acme.example",
			Subject:   "ASO vencendo",
			Body:      "O ASO de Ana vence em 10 dias.",
		})
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMsg.Channel != notify.ChannelEmail || gotMsg.Recipient != "rh@acme.example" {
			t.Errorf("unexpected message forwarded: %+v", gotMsg)
		}
		var resp notify.Receipt
		decodeResponse(t, rec, &resp)
		if resp.ID != receipt.ID || resp.Status != "simulated" {
			t.Errorf("unexpected receipt: %+v", resp)
		}
	})

	t.Run("InvalidChannel", func(t *testing.T) {
		m := &mocks{
			notifier: mockNotifier{
				sendFunc: func(_ context.Context, _ uuid.UUID, _ notify.Message) (*notify.Receipt, error) {
					return nil, e.ErrInvalidInput
				},
			},
		}
		router, _, token := newTestServer(t, m)
		rec := doRequest(t, router, http.MethodPost, "/v1/notifications", token, notificationRequest{
			Channel:   "sms",
			Recipient: "rh@acme.example",
			Body:      "hello",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}
