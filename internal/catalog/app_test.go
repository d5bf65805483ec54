package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"MiniCatalog/internal/catalog"
)

const validBody = `{"name":"New Product","type":"gadget","inventory":10,"cost":50}`

func TestNewHandler_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := &catalog.Server{Store: catalog.NewMemStore()}

	ts := httptest.NewServer(catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            zap.NewNop(),
		Service:        "catalog",
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   "scrape-token",
	}))
	t.Cleanup(ts.Close)

	resp, _ := do(t, http.MethodPost, ts.URL+"/products", validBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, http.MethodPost, ts.URL+"/products", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	require.NotNil(t, s.Created)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Created))

	count, err := testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per method/path/status")

	resp, _ = do(t, http.MethodGet, ts.URL+"/metrics", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/metrics", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer scrape-token")
	mresp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer mresp.Body.Close()
	assert.Equal(t, http.StatusOK, mresp.StatusCode)

	expected := `
# HELP catalog_products Products currently held in the store
# TYPE catalog_products gauge
catalog_products 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "catalog_products"))

}

func TestNewHandler_MetricsDisabled(t *testing.T) {
	s := &catalog.Server{Store: catalog.NewMemStore()}
	ts := httptest.NewServer(catalog.NewHandler(s, catalog.HTTPDeps{
		Log:      zap.NewNop(),
		Service:  "catalog",
		Registry: prometheus.NewRegistry(),
	}))
	t.Cleanup(ts.Close)

	resp, _ := do(t, http.MethodGet, ts.URL+"/metrics", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewHandler_CreateRateLimit(t *testing.T) {
	s := &catalog.Server{Store: catalog.NewMemStore()}
	ts := httptest.NewServer(catalog.NewHandler(s, catalog.HTTPDeps{
		Log:         zap.NewNop(),
		Service:     "catalog",
		CreateLimit: 2,
		LimitWindow: time.Hour,
	}))
	t.Cleanup(ts.Close)

	for i := 0; i < 2; i++ {
		resp, _ := do(t, http.MethodPost, ts.URL+"/products", validBody)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, _ := do(t, http.MethodPost, ts.URL+"/products", validBody)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, ts.URL+"/products", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "reads are not limited")
	assert.Equal(t, 2, s.Store.Size())
}
