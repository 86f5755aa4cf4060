package address

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestActiveReturnsFirstRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/7" {
			t.Errorf("path=%s, want /7", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"id":3,"user_id":7,"street":"1 Sky Rd","city":"Bangkok","postal_code":"10200","country":"TH"},
			{"id":4,"user_id":7,"street":"2 Cloud Ave","city":"Chiang Mai","postal_code":"50000","country":"TH"}
		]`))
	}))
	defer srv.Close()

	addr, err := NewClient(srv.URL).Active(context.Background(), 7)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if addr == nil || addr.ID != 3 || addr.City != "Bangkok" {
		t.Fatalf("wrong active address: %+v", addr)
	}
}

func TestActiveNoAddressOnFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	addr, err := NewClient(srv.URL).Active(context.Background(), 7)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if addr != nil {
		t.Fatalf("expected nil for empty list, got %+v", addr)
	}
}

func TestActiveServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Active(context.Background(), 7); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestValidPostalCode(t *testing.T) {
	valid := []string{"10200", "50000", "00001"}
	invalid := []string{"", "1020", "102000", "1020a", "10 20", "๑๐๒๐๐"}

	for _, code := range valid {
		if !ValidPostalCode(code) {
			t.Errorf("%q rejected, want accepted", code)
		}
	}
	for _, code := range invalid {
		if ValidPostalCode(code) {
			t.Errorf("%q accepted, want rejected", code)
		}
	}
}
