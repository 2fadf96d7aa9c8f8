package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrap(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"id":"x","status":"pending"}`, `{"id":"x","status":"pending"}`},
		{"data wrapper", `{"data":{"id":"x"}}`, `{"id":"x"}`},
		{"order wrapper", `{"order":{"id":"x"}}`, `{"id":"x"}`},
		{"nested wrappers", `{"data":{"order":{"id":"x"}}}`, `{"id":"x"}`},
		{"array body", `[{"id":"x"}]`, `[{"id":"x"}]`},
		{"orders list wrapper", `{"orders":[{"id":"x"}]}`, `[{"id":"x"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := unwrap(json.RawMessage(tc.in))
			assert.JSONEq(t, tc.want, string(got))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", errorMessage([]byte(`{"error":"boom"}`)))
	assert.Equal(t, "boom", errorMessage([]byte(`{"message":"boom"}`)))
	assert.Equal(t, "", errorMessage([]byte(`not json`)))
}

func TestClient_BearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"` + uuid.New().String() + `","status":"pending"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	ctx := WithToken(context.Background(), "session-token")
	_, err := c.GetOrder(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "Bearer session-token", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.ListProducts(context.Background(), ListProductsParams{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_BackendErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"stock exhausted"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.UpdateOrderStatus(context.Background(), uuid.New(), "confirmed")

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, ErrorStatus(err))
	assert.Contains(t, err.Error(), "stock exhausted")
}

func TestClient_BackendErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.DeleteOrder(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend returned status 500")
}

func TestClient_DecodesWrappedOrder(t *testing.T) {
	orderID := uuid.New()
	ownerID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"order":{"id":"` + orderID.String() +
			`","user":"` + ownerID.String() + `","status":"shipped","client_confirmed":true}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	order, err := c.GetOrder(context.Background(), orderID)
	require.NoError(t, err)

	assert.Equal(t, orderID, order.ID)
	assert.True(t, order.ClientConfirmed)
	got, ok := order.Owner.UserID()
	require.True(t, ok)
	assert.Equal(t, ownerID, got)
}
