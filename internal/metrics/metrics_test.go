package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestCacheLookup(t *testing.T) {
	CacheLookup(KindRegionStats, true)
	CacheLookup(KindRegionList, false)

	body := scrape(t)
	assert.Contains(t, body, `region_cache_hits_total{kind="region_stats"}`)
	assert.Contains(t, body, `region_cache_misses_total{kind="region_list"}`)
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	FormSubmitsTotal.WithLabelValues("region", "success").Inc()
	EditorCommitsTotal.WithLabelValues("polygon").Inc()

	body := scrape(t)
	assert.Contains(t, body, "region_form_submits_total")
	assert.Contains(t, body, `region_editor_commits_total{mode="polygon"}`)
}
