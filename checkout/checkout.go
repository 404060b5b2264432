// Package checkout drives the donor-facing checkout flow against the
// donation API: load the Razorpay widget script, create an order, open
// the hosted widget and hand its completion values to payment
// verification. It is the Go counterpart of the site's donation form.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/mahaseva-foundation/donation-portal/utils"
)

// State names each step of the checkout flow
type State int

const (
	StateIdle State = iota
	StateScriptLoading
	StateScriptReady
	StateOrderCreating
	StateWidgetOpen
	StateVerifying
	StateDone
	StateCancelled
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScriptLoading:
		return "scriptLoading"
	case StateScriptReady:
		return "scriptReady"
	case StateOrderCreating:
		return "orderCreating"
	case StateWidgetOpen:
		return "widgetOpen"
	case StateVerifying:
		return "verifying"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// ErrDismissed is returned by a Widget when the payer closes the checkout
// without paying
var ErrDismissed = errors.New("checkout dismissed by payer")

// ErrInProgress is returned when a donation is submitted while another is
// still being processed
var ErrInProgress = errors.New("a donation is already being processed")

// DonationInput is what the donor submits on the form. CustomAmount, when
// non-empty, overrides Amount (the preset buttons).
type DonationInput struct {
	DonorName    string
	DonorEmail   string
	DonorPhone   string
	DonorPAN     string
	Amount       int64
	CustomAmount string
	CampaignID   string
	CampaignName string
	IsRecurring  bool
}

// Completion carries the values the widget reports after a successful
// payment
type Completion struct {
	OrderID   string
	PaymentID string
	Signature string
}

// WidgetOptions configures the hosted checkout widget
type WidgetOptions struct {
	KeyID        string
	Amount       int64 // paise
	Currency     string
	Name         string
	Description  string
	OrderID      string
	PrefillName  string
	PrefillEmail string
	PrefillPhone string
	ThemeColor   string
}

// Widget opens the hosted checkout and blocks until the payer completes
// the payment or dismisses it (ErrDismissed). No timeout is applied; the
// flow waits for one of the two outcomes.
type Widget interface {
	Open(ctx context.Context, opts WidgetOptions) (*Completion, error)
}

// ScriptLoader fetches the gateway's checkout widget script
type ScriptLoader interface {
	Load(ctx context.Context) error
}

// Notifier surfaces checkout outcomes to the donor
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// The widget script is loaded at most once per process, whichever
// orchestrator instance gets there first.
var (
	scriptMu     sync.Mutex
	scriptLoaded bool
)

// Orchestrator runs one donation form instance. A processing flag keeps a
// second submission from starting while one is in flight.
type Orchestrator struct {
	baseURL string
	keyID   string
	httpc   *http.Client
	loader  ScriptLoader
	widget  Widget
	notify  Notifier

	mu         sync.Mutex
	processing bool
	state      State
}

// New builds an Orchestrator talking to the donation API at baseURL
func New(baseURL, keyID string, loader ScriptLoader, widget Widget, notify Notifier, httpc *http.Client) *Orchestrator {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Orchestrator{
		baseURL: strings.TrimRight(baseURL, "/"),
		keyID:   keyID,
		httpc:   httpc,
		loader:  loader,
		widget:  widget,
		notify:  notify,
		state:   StateIdle,
	}
}

// State returns the current flow state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// ResolveAmount applies the custom-vs-preset rule and validates the
// result: a non-empty custom amount wins, and the final figure must be a
// whole rupee amount of at least the donation minimum.
func ResolveAmount(in DonationInput) (int64, error) {
	amount := in.Amount
	if custom := strings.TrimSpace(in.CustomAmount); custom != "" {
		parsed, err := strconv.ParseInt(custom, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid donation amount %q", custom)
		}
		amount = parsed
	}
	if ok, msg := utils.ValidateDonationAmount(amount); !ok {
		return 0, errors.New(msg)
	}
	return amount, nil
}

func validateInput(in DonationInput) (int64, error) {
	amount, err := ResolveAmount(in)
	if err != nil {
		return 0, err
	}
	if ok, msg := utils.ValidateDonorName(in.DonorName); !ok {
		return 0, errors.New(msg)
	}
	if ok, msg := utils.ValidateDonorEmail(in.DonorEmail); !ok {
		return 0, errors.New(msg)
	}
	if ok, msg := utils.ValidateDonorPhone(in.DonorPhone); !ok {
		return 0, errors.New(msg)
	}
	return amount, nil
}

// Process runs the whole flow for one submission. Validation failures
// leave the machine idle; every later failure lands in a terminal state
// with a donor-visible notice.
func (o *Orchestrator) Process(ctx context.Context, in DonationInput) error {
	o.mu.Lock()
	if o.processing {
		o.mu.Unlock()
		return ErrInProgress
	}
	o.processing = true
	o.state = StateIdle
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.processing = false
		o.mu.Unlock()
	}()

	amount, err := validateInput(in)
	if err != nil {
		return err
	}

	o.setState(StateScriptLoading)
	if err := o.ensureScript(ctx); err != nil {
		o.setState(StateErrored)
		o.notify.Error("Failed to load payment gateway. Please try again.")
		return err
	}
	o.setState(StateScriptReady)

	o.setState(StateOrderCreating)
	order, err := o.createOrder(ctx, in, amount)
	if err != nil {
		o.setState(StateErrored)
		o.notify.Error("Failed to create order. Please try again.")
		return err
	}

	o.setState(StateWidgetOpen)
	completion, err := o.widget.Open(ctx, WidgetOptions{
		KeyID:        o.keyID,
		Amount:       order.Amount,
		Currency:     order.Currency,
		Name:         utils.OrgName,
		Description:  in.CampaignName,
		OrderID:      order.OrderID,
		PrefillName:  in.DonorName,
		PrefillEmail: in.DonorEmail,
		PrefillPhone: in.DonorPhone,
		ThemeColor:   "#FF6B35",
	})
	if err != nil {
		if errors.Is(err, ErrDismissed) {
			// No backend call: the pending donation row stays pending.
			o.setState(StateCancelled)
			o.notify.Info("Payment cancelled. You can try again whenever you're ready.")
			return nil
		}
		o.setState(StateErrored)
		o.notify.Error("An error occurred. Please try again.")
		return err
	}

	o.setState(StateVerifying)
	verified, err := o.verifyPayment(ctx, completion)
	if err != nil {
		// The charge may have gone through even though verification
		// reporting failed, so the notice must not read as a payment
		// failure.
		o.setState(StateErrored)
		o.notify.Error("Payment completed but verification failed. Please contact support.")
		return err
	}

	o.setState(StateDone)
	o.notify.Success(fmt.Sprintf(
		"Thank you for your donation! Receipt number: %s. 80G receipt has been sent to your email.",
		verified.ReceiptNumber))
	return nil
}

func (o *Orchestrator) ensureScript(ctx context.Context) error {
	scriptMu.Lock()
	defer scriptMu.Unlock()
	if scriptLoaded {
		return nil
	}
	if err := o.loader.Load(ctx); err != nil {
		return err
	}
	scriptLoaded = true
	return nil
}

// orderResponse mirrors the /api/donations/order reply
type orderResponse struct {
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	DonationID uint   `json:"donationId"`
}

func (o *Orchestrator) createOrder(ctx context.Context, in DonationInput, amount int64) (*orderResponse, error) {
	payload := map[string]interface{}{
		"amount":       amount,
		"donorName":    in.DonorName,
		"donorEmail":   in.DonorEmail,
		"donorPhone":   in.DonorPhone,
		"donorPan":     strings.ToUpper(strings.TrimSpace(in.DonorPAN)),
		"campaignId":   in.CampaignID,
		"campaignName": in.CampaignName,
		"isRecurring":  in.IsRecurring,
	}
	var resp orderResponse
	if err := o.post(ctx, "/api/donations/order", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// verifyResponse mirrors the /api/donations/verify reply
type verifyResponse struct {
	Success       bool   `json:"success"`
	ReceiptNumber string `json:"receiptNumber"`
}

func (o *Orchestrator) verifyPayment(ctx context.Context, completion *Completion) (*verifyResponse, error) {
	payload := map[string]interface{}{
		"razorpayOrderId":   completion.OrderID,
		"razorpayPaymentId": completion.PaymentID,
		"razorpaySignature": completion.Signature,
	}
	var resp verifyResponse
	if err := o.post(ctx, "/api/donations/verify", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (o *Orchestrator) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := o.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return errors.New(apiErr.Error)
		}
		return fmt.Errorf("%s returned status %d", path, res.StatusCode)
	}
	return json.Unmarshal(data, out)
}
