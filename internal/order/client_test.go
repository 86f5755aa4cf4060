package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleRequest() CreateRequest {
	return CreateRequest{
		UserID:     7,
		AddressID:  3,
		TotalPrice: dec("25400"),
		Items: []Item{
			{StockID: 1, Quantity: 2, Price: dec("6700")},
			{StockID: 2, Quantity: 1, Price: dec("12000")},
		},
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	var gotBody CreateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_id":"ORD-123","user_id":7}`))
	}))
	defer srv.Close()

	rcpt, err := NewClient(srv.URL).PlaceOrder(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if rcpt.OrderID != "ORD-123" {
		t.Fatalf("order id=%q, want ORD-123", rcpt.OrderID)
	}
	if gotBody.UserID != 7 || gotBody.AddressID != 3 || len(gotBody.Items) != 2 {
		t.Fatalf("submitted body wrong: %+v", gotBody)
	}
	if !gotBody.TotalPrice.Equal(dec("25400")) {
		t.Fatalf("submitted total=%s", gotBody.TotalPrice)
	}
}

func TestPlaceOrder_NumericOrderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"order_id":482,"user_id":7}`))
	}))
	defer srv.Close()

	rcpt, err := NewClient(srv.URL).PlaceOrder(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if rcpt.OrderID != "482" {
		t.Fatalf("order id=%q, want 482", rcpt.OrderID)
	}
}

func TestPlaceOrder_ServerDetailSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Out of stock"}`, http.StatusConflict)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PlaceOrder(context.Background(), sampleRequest())
	var sub *SubmissionError
	if !errors.As(err, &sub) {
		t.Fatalf("err=%v, want *SubmissionError", err)
	}
	if sub.Status != http.StatusConflict || sub.Error() != "Out of stock" {
		t.Fatalf("got status=%d msg=%q", sub.Status, sub.Error())
	}
}

func TestPlaceOrder_GenericMessageWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PlaceOrder(context.Background(), sampleRequest())
	var sub *SubmissionError
	if !errors.As(err, &sub) {
		t.Fatalf("err=%v, want *SubmissionError", err)
	}
	if sub.Error() != "Checkout failed" {
		t.Fatalf("msg=%q, want generic message", sub.Error())
	}
}

func TestPlaceOrder_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := NewClient(srv.URL).PlaceOrder(context.Background(), sampleRequest())
	var sub *SubmissionError
	if !errors.As(err, &sub) {
		t.Fatalf("err=%v, want *SubmissionError", err)
	}
	if sub.Unwrap() == nil {
		t.Fatal("transport cause not wrapped")
	}
}

func TestListByUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/7" {
			t.Errorf("path=%s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"order_id":1,"user_id":7,"address_id":3,"total_price":25400,"created_at":"2025-11-02T10:00:00Z"}]`))
	}))
	defer srv.Close()

	list, err := NewClient(srv.URL).ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].OrderID != 1 || !list[0].TotalPrice.Equal(dec("25400")) {
		t.Fatalf("history decoded wrong: %+v", list)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Order not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetByID(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}
