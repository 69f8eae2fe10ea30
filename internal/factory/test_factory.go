package factory

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcoot/restadmin/internal/dependencies/mocks"
	"github.com/mcoot/restadmin/internal/directory/memory"
	"github.com/mcoot/restadmin/internal/metrics"
	"github.com/mcoot/restadmin/internal/model"
	"github.com/mcoot/restadmin/internal/testutil"
)

// TestToken is the admin token used by NewTestApp
const TestToken = "abcdefghijkl"

// Well-known test profiles
var (
	Steve = model.Profile{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Steve"}
	Alex  = model.Profile{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Name: "Alex"}
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory gives tests host-side control of sessions and the user cache
	Memory *memory.Directory
	// MockClock drives request timing
	MockClock *mocks.MockClock
}

// NewTestApp creates an App backed by an in-memory directory whose user
// cache already knows Steve and Alex
func NewTestApp() *TestApp {
	clk := mocks.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	mem := memory.New("")
	mem.CacheProfile(Steve)
	mem.CacheProfile(Alex)

	return &TestApp{
		App:       newWithDependencies(clk, metrics.New(prometheus.NewRegistry()), mem, TestToken, testutil.NopLogger()),
		Memory:    mem,
		MockClock: clk,
	}
}
