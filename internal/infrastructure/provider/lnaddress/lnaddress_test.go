package lnaddress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/openagora/settlement/internal/domain/errors"
	"github.com/openagora/settlement/internal/domain/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGenerator() *Generator {
	g := NewGenerator(&http.Client{Timeout: 5 * time.Second}, time.Hour, zap.NewNop())
	g.scheme = "http"
	return g
}

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		address string
		wantErr bool
	}{
		{address: "alice@example.com", wantErr: false},
		{address: "alice", wantErr: true},
		{address: "@example.com", wantErr: true},
		{address: "alice@", wantErr: true},
		{address: "a@b@c", wantErr: true},
		{address: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			_, _, err := splitAddress(tt.address)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainErrors.ErrMalformedAddress)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateHappyPath(t *testing.T) {
	var callbackAmount string

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/.well-known/lnurlp/alice", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"tag":            "payRequest",
			"callback":       srv.URL + "/lnurlp/callback",
			"minSendable":    1000,
			"maxSendable":    100_000_000,
			"commentAllowed": 32,
		})
	})
	mux.HandleFunc("/lnurlp/callback", func(w http.ResponseWriter, r *http.Request) {
		callbackAmount = r.URL.Query().Get("amount")
		assert.Equal(t, "Handmade mug", r.URL.Query().Get("comment"))
		json.NewEncoder(w).Encode(map[string]string{"pr": "lnbc500u1pexample"})
	})

	g := newTestGenerator()
	host := strings.TrimPrefix(srv.URL, "http://")

	wallet := &provider.ResolvedWallet{LightningAddress: "alice@" + host}
	inv, err := g.Generate(context.Background(), wallet, 50000, "Handmade mug")
	require.NoError(t, err)

	assert.Equal(t, "50000000", callbackAmount) // sats scaled to msat
	assert.Equal(t, "lnbc500u1pexample", inv.PaymentRequest)
	assert.Equal(t, "LNBC500U1PEXAMPLE", inv.QRContent)
	assert.Empty(t, inv.SettlementID)
	require.NotNil(t, inv.ExpiresAt)
}

func TestGenerateAmountOutOfBoundsSkipsCallback(t *testing.T) {
	var callbackHits int32

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/.well-known/lnurlp/bob", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"tag":         "payRequest",
			"callback":    srv.URL + "/cb",
			"minSendable": 1000,
			"maxSendable": 2000,
		})
	})
	mux.HandleFunc("/cb", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&callbackHits, 1)
	})

	g := newTestGenerator()
	host := strings.TrimPrefix(srv.URL, "http://")

	// 5000 sats = 5_000_000 msat, far above maxSendable.
	_, err := g.Generate(context.Background(), &provider.ResolvedWallet{LightningAddress: "bob@" + host}, 5000, "")

	var boundsErr *domainErrors.AmountBoundsError
	require.ErrorAs(t, err, &boundsErr)
	assert.Equal(t, int64(5_000_000), boundsErr.RequestedMsat)
	assert.Equal(t, int64(1000), boundsErr.MinMsat)
	assert.Equal(t, int64(2000), boundsErr.MaxMsat)
	assert.Zero(t, atomic.LoadInt32(&callbackHits), "callback must not be issued on bounds violation")
}

func TestGenerateRejectsNonPayRequestTag(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/.well-known/lnurlp/carol", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"tag": "withdrawRequest"})
	})

	g := newTestGenerator()
	host := strings.TrimPrefix(srv.URL, "http://")

	_, err := g.Generate(context.Background(), &provider.ResolvedWallet{LightningAddress: "carol@" + host}, 100, "")
	var provErr *provider.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "UNEXPECTED_TAG", provErr.Code)
}

func TestGenerateRejectsMissingInvoice(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/.well-known/lnurlp/dave", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"tag":         "payRequest",
			"callback":    srv.URL + "/cb",
			"minSendable": 1,
			"maxSendable": 1_000_000_000,
		})
	})
	mux.HandleFunc("/cb", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ERROR", "reason": "node offline"})
	})

	g := newTestGenerator()
	host := strings.TrimPrefix(srv.URL, "http://")

	_, err := g.Generate(context.Background(), &provider.ResolvedWallet{LightningAddress: "dave@" + host}, 100, "")
	var provErr *provider.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "NO_INVOICE", provErr.Code)
}

func TestGenerateNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	g := newTestGenerator()
	host := strings.TrimPrefix(srv.URL, "http://")

	_, err := g.Generate(context.Background(), &provider.ResolvedWallet{LightningAddress: "eve@" + host}, 100, "")
	var provErr *provider.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "HTTP_404", provErr.Code)
}
