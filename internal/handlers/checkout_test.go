package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"timevault/internal/mirror"
	"timevault/internal/models"
	"timevault/internal/payments"
)

// memoryCartCollection implements mirror.Collection in memory so the
// checkout sequence runs without a database.
type memoryCartCollection struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]models.CartEntry
}

func newMemoryCartCollection() *memoryCartCollection {
	return &memoryCartCollection{entries: make(map[primitive.ObjectID]models.CartEntry)}
}

func (m *memoryCartCollection) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.CartEntry, 0)
	for _, entry := range m.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *memoryCartCollection) IncrementOrInsert(ctx context.Context, userID, watchID primitive.ObjectID, snap mirror.Snapshot, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, entry := range m.entries {
		if entry.UserID == userID && entry.WatchID == watchID {
			entry.Quantity++
			m.entries[id] = entry
			return nil
		}
	}
	id := primitive.NewObjectID()
	m.entries[id] = models.CartEntry{
		ID: id, UserID: userID, WatchID: watchID,
		Title: snap.Title, Brand: snap.Brand, Price: snap.Price,
		Quantity: 1, AddedAt: now,
	}
	return nil
}

func (m *memoryCartCollection) SetQuantity(ctx context.Context, entryID primitive.ObjectID, quantity int, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[entryID]; ok {
		entry.Quantity = quantity
		m.entries[entryID] = entry
	}
	return nil
}

func (m *memoryCartCollection) DeleteByID(ctx context.Context, entryID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, entryID)
	return nil
}

func (m *memoryCartCollection) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, entry := range m.entries {
		if entry.UserID == userID {
			delete(m.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

// memoryOrderStore records checkout writes; failTransactions simulates
// the store going away after the payment captured.
type memoryOrderStore struct {
	transactions     []models.Transaction
	orders           []models.Order
	failTransactions bool
	failOrders       bool
}

func (s *memoryOrderStore) InsertTransaction(ctx context.Context, txn models.Transaction) error {
	if s.failTransactions {
		return errors.New("transactions collection unavailable")
	}
	s.transactions = append(s.transactions, txn)
	return nil
}

func (s *memoryOrderStore) InsertOrder(ctx context.Context, order models.Order) error {
	if s.failOrders {
		return errors.New("orders collection unavailable")
	}
	s.orders = append(s.orders, order)
	return nil
}

// stubProvider returns a canned capture result, standing in for the
// approval redirect of the real flow.
type stubProvider struct {
	result payments.Result
}

func (p *stubProvider) CreateOrder(ctx context.Context, amount float64, currency string) (string, error) {
	return "STUB-ORDER", nil
}

func (p *stubProvider) CaptureOrder(ctx context.Context, orderToken string) payments.Result {
	return p.result
}

func runCheckout(t *testing.T, handler gin.HandlerFunc, userID primitive.ObjectID, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/user/checkout", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", userID)

	handler(c)
	return w
}

func seededCart(t *testing.T, userID primitive.ObjectID, price float64) (*mirror.Service, *memoryCartCollection) {
	t.Helper()
	coll := newMemoryCartCollection()
	svc := mirror.NewService(coll)
	snap := mirror.Snapshot{Title: "Daytona", Brand: "Rolex", Price: price}
	if err := svc.Add(context.Background(), userID, primitive.NewObjectID(), snap); err != nil {
		t.Fatalf("seeding cart: %v", err)
	}
	return svc, coll
}

func TestCheckoutMockApprovalCreatesOrderAndClearsCart(t *testing.T) {
	userID := primitive.NewObjectID()
	svc, _ := seededCart(t, userID, 4200.00)
	store := &memoryOrderStore{}
	mock := &payments.MockProvider{Delay: 0}

	w := runCheckout(t, Checkout(store, svc, mock, nil, "MYR"), userID, `{"method":"mock"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.orders) != 1 || len(store.transactions) != 1 {
		t.Fatalf("expected exactly one order and one transaction, got %d/%d",
			len(store.orders), len(store.transactions))
	}

	order := store.orders[0]
	txn := store.transactions[0]
	if order.Status != models.OrderStatusProcessing {
		t.Fatalf("expected status %s, got %s", models.OrderStatusProcessing, order.Status)
	}
	if order.Amount != 4200.00 || txn.Amount != 4200.00 {
		t.Fatalf("expected amount 4200.00, got order=%v txn=%v", order.Amount, txn.Amount)
	}
	if order.OrderNumber == "" || order.OrderNumber != txn.OrderNumber {
		t.Fatalf("expected matching order numbers, got %q / %q", order.OrderNumber, txn.OrderNumber)
	}
	if txn.CaptureID == "" || txn.ReconcileKey == "" {
		t.Fatalf("expected capture id and reconcile key on the transaction, got %+v", txn)
	}

	entries, err := svc.Entries(context.Background(), userID)
	if err != nil {
		t.Fatalf("listing cart: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected cart cleared after checkout, %d entries remain", len(entries))
	}
}

func TestCheckoutPartialFailureKeepsCartAndReportsCapture(t *testing.T) {
	userID := primitive.NewObjectID()
	svc, _ := seededCart(t, userID, 4200.00)
	store := &memoryOrderStore{failTransactions: true}
	mock := &payments.MockProvider{Delay: 0}

	w := runCheckout(t, Checkout(store, svc, mock, nil, "MYR"), userID, `{"method":"mock"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on partial failure, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if body["captureId"] == "" || body["reconcileKey"] == "" {
		t.Fatalf("expected captureId and reconcileKey in the response, got %v", body)
	}

	if len(store.orders) != 0 {
		t.Fatalf("expected no order recorded, got %d", len(store.orders))
	}
	entries, err := svc.Entries(context.Background(), userID)
	if err != nil {
		t.Fatalf("listing cart: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected cart kept intact on partial failure, got %d entries", len(entries))
	}
}

func TestCheckoutOrderInsertFailureAlsoPartial(t *testing.T) {
	userID := primitive.NewObjectID()
	svc, _ := seededCart(t, userID, 100.00)
	store := &memoryOrderStore{failOrders: true}
	mock := &payments.MockProvider{Delay: 0}

	w := runCheckout(t, Checkout(store, svc, mock, nil, "MYR"), userID, `{"method":"mock"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 when the order insert fails, got %d", w.Code)
	}
	if len(store.transactions) != 1 {
		t.Fatalf("expected the transaction already written, got %d", len(store.transactions))
	}
}

func TestCheckoutCancelledPaymentLeavesNoTrace(t *testing.T) {
	userID := primitive.NewObjectID()
	svc, _ := seededCart(t, userID, 4200.00)
	store := &memoryOrderStore{}
	paypal := &stubProvider{result: payments.Cancelled()}

	w := runCheckout(t, Checkout(store, svc, nil, paypal, "MYR"), userID,
		`{"method":"paypal","orderToken":"STUB-ORDER"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for cancelled payment, got %d", w.Code)
	}
	if len(store.orders) != 0 || len(store.transactions) != 0 {
		t.Fatal("cancelled payment must not persist anything")
	}
	entries, _ := svc.Entries(context.Background(), userID)
	if len(entries) != 1 {
		t.Fatalf("expected cart untouched on cancel, got %d entries", len(entries))
	}
}

func TestCheckoutPayPalRecordsCartDerivedAmount(t *testing.T) {
	userID := primitive.NewObjectID()
	svc, _ := seededCart(t, userID, 4200.00)
	store := &memoryOrderStore{}
	// provider settled a stale amount; the order keeps the cart total
	paypal := &stubProvider{result: payments.ApprovedAmount("CAP-9", "100.00")}

	w := runCheckout(t, Checkout(store, svc, nil, paypal, "MYR"), userID,
		`{"method":"paypal","orderToken":"STUB-ORDER"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.orders) != 1 || store.orders[0].Amount != 4200.00 {
		t.Fatalf("expected order amount 4200.00 from the cart, got %+v", store.orders)
	}
	if store.transactions[0].CaptureID != "CAP-9" {
		t.Fatalf("expected capture id CAP-9, got %q", store.transactions[0].CaptureID)
	}
}

func TestCheckoutPayPalRequiresOrderToken(t *testing.T) {
	userID := primitive.NewObjectID()
	svc, _ := seededCart(t, userID, 4200.00)
	store := &memoryOrderStore{}
	paypal := &stubProvider{result: payments.Approved("CAP-1")}

	w := runCheckout(t, Checkout(store, svc, nil, paypal, "MYR"), userID, `{"method":"paypal"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without orderToken, got %d", w.Code)
	}
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := mirror.NewService(newMemoryCartCollection())
	store := &memoryOrderStore{}
	mock := &payments.MockProvider{Delay: 0}

	w := runCheckout(t, Checkout(store, svc, mock, nil, "MYR"), userID, `{"method":"mock"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", w.Code)
	}
}
