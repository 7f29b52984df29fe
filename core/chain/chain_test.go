package chain_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfold/dispatch/core/chain"
	"github.com/webfold/dispatch/core/factory"
	"github.com/webfold/dispatch/core/handler"
)

// recordingFilter appends its tag to the shared trace and continues.
type recordingFilter struct {
	tag      string
	trace    *[]string
	shortCut bool
}

func (f *recordingFilter) Init(handler.Config) error { return nil }

func (f *recordingFilter) Filter(w http.ResponseWriter, r *http.Request, c handler.Chain) {
	*f.trace = append(*f.trace, f.tag)
	if !f.shortCut {
		c.Next(w, r)
	}
}

func mapped(tag string, order int, trace *[]string) chain.MappedFilter {
	return chain.MappedFilter{
		Name:  tag,
		Order: order,
		Factory: factory.New(func() (handler.Filter, error) {
			return &recordingFilter{tag: tag, trace: trace}, nil
		}, nil),
	}
}

func terminal(trace *[]string) handler.Handler {
	return handler.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*trace = append(*trace, "handler")
	})
}

func run(c *chain.Chain) {
	c.Next(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestChain_InterleavesByOrder(t *testing.T) {
	t.Parallel()

	var trace []string
	url := []chain.MappedFilter{mapped("u1", 1, &trace), mapped("u3", 3, &trace)}
	named := []chain.MappedFilter{mapped("n2", 2, &trace), mapped("n4", 4, &trace)}

	run(chain.New(url, named, terminal(&trace), nil))

	assert.Equal(t, []string{"u1", "n2", "u3", "n4", "handler"}, trace)
}

func TestChain_DrainsRemainingList(t *testing.T) {
	t.Parallel()

	var trace []string
	url := []chain.MappedFilter{mapped("u1", 1, &trace)}
	named := []chain.MappedFilter{mapped("n2", 2, &trace), mapped("n3", 3, &trace)}

	run(chain.New(url, named, terminal(&trace), nil))

	assert.Equal(t, []string{"u1", "n2", "n3", "handler"}, trace)
}

func TestChain_EmptyListsReachHandler(t *testing.T) {
	t.Parallel()

	var trace []string
	run(chain.New(nil, nil, terminal(&trace), nil))

	assert.Equal(t, []string{"handler"}, trace)
}

func TestChain_SameFilterInBothDimensionsRunsOnce(t *testing.T) {
	t.Parallel()

	var trace []string
	shared := mapped("shared", 2, &trace)
	other := shared
	other.Order = 5 // same identity, different declaration order

	url := []chain.MappedFilter{mapped("u1", 1, &trace), shared}
	named := []chain.MappedFilter{other, mapped("n7", 7, &trace)}

	run(chain.New(url, named, terminal(&trace), nil))

	assert.Equal(t, []string{"u1", "shared", "n7", "handler"}, trace)
}

func TestChain_ShortCircuit(t *testing.T) {
	t.Parallel()

	var trace []string
	blocker := chain.MappedFilter{
		Name:  "auth",
		Order: 1,
		Factory: factory.New(func() (handler.Filter, error) {
			return &recordingFilter{tag: "auth", trace: &trace, shortCut: true}, nil
		}, nil),
	}

	run(chain.New([]chain.MappedFilter{blocker, mapped("u2", 2, &trace)}, nil, terminal(&trace), nil))

	// Not calling Next stops the pipeline before u2 and the handler.
	assert.Equal(t, []string{"auth"}, trace)
}

func TestChain_UnavailableFilterFailsRequest(t *testing.T) {
	t.Parallel()

	var trace []string
	broken := chain.MappedFilter{
		Name:  "broken",
		Order: 1,
		Factory: factory.New(func() (handler.Filter, error) {
			return nil, assert.AnError
		}, nil),
	}

	w := httptest.NewRecorder()
	c := chain.New([]chain.MappedFilter{broken}, nil, terminal(&trace), nil)
	c.Next(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, trace)
}

func TestHolder_AddDeduplicatesByIdentity(t *testing.T) {
	t.Parallel()

	var trace []string
	f := mapped("f", 1, &trace)

	h := chain.NewHolder()
	h.Add(f)
	h.Add(f)
	h.Finalize()

	assert.Len(t, h.Filters(), 1)
}

func TestHolder_FinalizeSortsByOrder(t *testing.T) {
	t.Parallel()

	var trace []string
	h := chain.NewHolder(mapped("c", 3, &trace), mapped("a", 1, &trace), mapped("b", 2, &trace))
	h.Finalize()

	orders := make([]int, 0, 3)
	for _, f := range h.Filters() {
		orders = append(orders, f.Order)
	}
	assert.Equal(t, []int{1, 2, 3}, orders)
}

func TestRegistry_InheritsBroaderPatternFilters(t *testing.T) {
	t.Parallel()

	var trace []string
	all := mapped("all", 0, &trace)
	api := mapped("api", 1, &trace)
	admin := mapped("admin", 2, &trace)

	reg := chain.NewRegistry()
	require.NoError(t, reg.MapURL("/", false, all)) // from "/*"
	require.NoError(t, reg.MapURL("/api/", false, api))
	require.NoError(t, reg.MapURL("/api/admin/", false, admin))
	reg.MapName("users", mapped("named", 3, &trace))
	reg.Finalize()

	url, named := reg.ForRequest("/api/admin/x", "users")

	tags := make([]string, 0, len(url))
	for _, f := range url {
		tags = append(tags, f.Name)
	}
	assert.Equal(t, []string{"all", "api", "admin"}, tags)

	require.Len(t, named, 1)
	assert.Equal(t, "named", named[0].Name)
}

func TestRegistry_CatchAllFiltersApplyOnMiss(t *testing.T) {
	t.Parallel()

	var trace []string
	reg := chain.NewRegistry()
	require.NoError(t, reg.MapURL("/", false, mapped("all", 0, &trace)))
	reg.Finalize()

	url, named := reg.ForRequest("/nowhere", "")
	require.Len(t, url, 1)
	assert.Equal(t, "all", url[0].Name)
	assert.Empty(t, named)
}

func TestRegistry_SamePatternAccumulates(t *testing.T) {
	t.Parallel()

	var trace []string
	reg := chain.NewRegistry()
	require.NoError(t, reg.MapURL("/api/", false, mapped("b", 2, &trace)))
	require.NoError(t, reg.MapURL("/api/", false, mapped("a", 1, &trace)))
	reg.Finalize()

	url, _ := reg.ForRequest("/api/x", "")
	require.Len(t, url, 2)
	assert.Equal(t, "a", url[0].Name)
	assert.Equal(t, "b", url[1].Name)
}
