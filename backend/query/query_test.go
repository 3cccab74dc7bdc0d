package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string
	Name  string
	Kind  string
	Tags  []string
	Price int
	Score float64
	Hot   bool
}

var items = []item{
	{ID: "a", Name: "Alpha", Kind: "x", Tags: []string{"t1"}, Price: 300, Score: 4.5},
	{ID: "b", Name: "Bravo", Kind: "y", Tags: []string{"t1", "t2"}, Price: 100, Score: 4.8, Hot: true},
	{ID: "c", Name: "Charlie", Kind: "x", Tags: nil, Price: 200, Score: 4.5},
	{ID: "d", Name: "Delta", Kind: "x", Tags: []string{"t2"}, Price: 200, Score: 3.9, Hot: true},
	{ID: "e", Name: "Echo alpha", Kind: "y", Tags: []string{"t3"}, Price: 500, Score: 4.1},
}

func ids(in []item) []string {
	out := make([]string, 0, len(in))
	for _, it := range in {
		out = append(out, it.ID)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestLookupPolicies(t *testing.T) {
	key := func(it item) string { return it.ID }

	drop := NewLookup(items, key, DropMissing, item{})
	got, ok := drop.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "Charlie", got.Name)
	_, ok = drop.Get("zz")
	assert.False(t, ok)

	def := NewLookup(items, key, UseDefault, item{ID: "?", Name: "Unknown"})
	got, ok = def.Get("zz")
	assert.True(t, ok)
	assert.Equal(t, "Unknown", got.Name)
	assert.False(t, def.Has("zz"))

	assert.Equal(t, []string{"a", "c"}, ids(drop.GetAll([]string{"a", "zz", "c"})))
	assert.Equal(t, []string{"a", "?", "c"}, ids(def.GetAll([]string{"a", "zz", "c"})))
}

func TestLookupFirstDuplicateWins(t *testing.T) {
	l := NewLookup([]item{{ID: "a", Name: "first"}, {ID: "a", Name: "second"}},
		func(it item) string { return it.ID }, DropMissing, item{})
	got, _ := l.Get("a")
	assert.Equal(t, "first", got.Name)
}

func TestJoinAllKeepsOrderAndDrops(t *testing.T) {
	names := NewLookup(items, func(it item) string { return it.ID }, DropMissing, item{})
	out := JoinAll([]string{"e", "missing", "a"}, func(id string) (string, bool) {
		it, ok := names.Get(id)
		return it.Name, ok
	})
	assert.Equal(t, []string{"Echo alpha", "Alpha"}, out)
}

func TestFilterNilPredicatesAreNoOps(t *testing.T) {
	out := Filter(items, nil, ContainsFold[item]("  "), Equal("", func(it item) string { return it.Kind }))
	assert.Equal(t, ids(items), ids(out))
}

func TestFilterComposesAsConjunction(t *testing.T) {
	byKind := Equal("x", func(it item) string { return it.Kind })
	byTag := HasAny("t2", func(it item) []string { return it.Tags })

	both := Filter(items, byKind, byTag)
	chained := Filter(Filter(items, byKind), byTag)

	assert.Equal(t, []string{"d"}, ids(both))
	assert.Equal(t, ids(both), ids(chained))
	assert.Equal(t, ids(both), ids(Filter(items, And(byKind, byTag))))
	assert.Nil(t, And[item](nil, nil))
}

func TestContainsFold(t *testing.T) {
	p := ContainsFold("ALPHA", func(it item) string { return it.Name })
	assert.Equal(t, []string{"a", "e"}, ids(Filter(items, p)))

	multi := ContainsFold("t3", func(it item) string { return it.Name }, func(it item) string { return it.ID })
	assert.Empty(t, Filter(items, multi))
}

func TestContainsFoldEach(t *testing.T) {
	tags := func(it item) []string { return it.Tags }
	assert.Equal(t, []string{"b", "d"}, ids(Filter(items, ContainsFoldEach("T2", tags))))
	// b is tagged t1 and t2, which must not read as "t1 t2"
	assert.Empty(t, Filter(items, ContainsFoldEach("t1 t2", tags)))
	assert.Nil(t, ContainsFoldEach(" ", tags))
}

func TestOr(t *testing.T) {
	byName := ContainsFold("echo", func(it item) string { return it.Name })
	byTag := HasAny("t2", func(it item) []string { return it.Tags })
	assert.Equal(t, []string{"b", "d", "e"}, ids(Filter(items, Or(byName, nil, byTag))))
	assert.Nil(t, Or[item](nil, nil))
}

func TestBetweenIsInclusive(t *testing.T) {
	price := func(it item) int { return it.Price }
	assert.Equal(t, []string{"b", "c", "d"}, ids(Filter(items, Between(ptr(100), ptr(200), price))))
	assert.Equal(t, []string{"a", "e"}, ids(Filter(items, Between(ptr(300), nil, price))))
	assert.Nil(t, Between[item, int](nil, nil, price))

	score := func(it item) float64 { return it.Score }
	assert.Equal(t, []string{"a", "b", "c"}, ids(Filter(items, Between(ptr(4.5), nil, score))))
}

func TestIs(t *testing.T) {
	hot := func(it item) bool { return it.Hot }
	assert.Equal(t, []string{"b", "d"}, ids(Filter(items, Is(ptr(true), hot))))
	assert.Equal(t, []string{"a", "c", "e"}, ids(Filter(items, Is(ptr(false), hot))))
	assert.Nil(t, Is[item](nil, hot))
}

func TestSortStableKeepsTies(t *testing.T) {
	byPrice := By(func(it item) int { return it.Price })
	out := SortStable(items, byPrice)
	assert.Equal(t, []string{"b", "c", "d", "a", "e"}, ids(out))

	// input untouched
	assert.Equal(t, "a", items[0].ID)

	byScoreDesc := Desc(By(func(it item) float64 { return it.Score }))
	assert.Equal(t, []string{"b", "a", "c", "e", "d"}, ids(SortStable(items, byScoreDesc)))

	tieBreak := Then(byScoreDesc, Desc(byPrice))
	assert.Equal(t, []string{"b", "a", "c", "e", "d"}, ids(SortStable(items, tieBreak)))

	assert.Equal(t, ids(items), ids(SortStable(items, nil)))
	assert.NotNil(t, SortStable[item](nil, byPrice))
}

func TestPaginateCoversEveryItemOnce(t *testing.T) {
	for size := 1; size <= 6; size++ {
		var seen []string
		pages := TotalPages(len(items), size)
		for p := 1; p <= pages; p++ {
			page := Paginate(items, PageRequest{Page: p, PageSize: size})
			assert.Equal(t, len(items), page.TotalCount)
			assert.LessOrEqual(t, len(page.Items), size)
			seen = append(seen, ids(page.Items)...)
		}
		assert.Equal(t, ids(items), seen, "page size %d", size)
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	page := Paginate(items, PageRequest{Page: 4, PageSize: 2})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 5, page.TotalCount)

	huge := Paginate(items, PageRequest{Page: math.MaxInt, PageSize: 12})
	assert.NotNil(t, huge.Items)
	assert.Empty(t, huge.Items)

	wide := Paginate(items, PageRequest{Page: 1, PageSize: math.MaxInt})
	assert.Len(t, wide.Items, 5)

	empty := Paginate([]item{}, PageRequest{Page: 1, PageSize: 2})
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)

	all := Paginate(items, PageRequest{})
	assert.Len(t, all.Items, 5)
}

func TestPageRequestNormalize(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 1, PageSize: 12}, PageRequest{}.Normalize(12, 50))
	assert.Equal(t, PageRequest{Page: 3, PageSize: 50}, PageRequest{Page: 3, PageSize: 500}.Normalize(12, 50))
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 3, TotalPages(25, 12))
}

func TestQueryRun(t *testing.T) {
	q := Query[item]{
		Where: []Predicate[item]{Equal("x", func(it item) string { return it.Kind })},
		Order: By(func(it item) int { return it.Price }),
		Page:  PageRequest{Page: 1, PageSize: 2},
	}
	page := q.Run(items)
	require.Len(t, page.Items, 2)
	assert.Equal(t, []string{"c", "d"}, ids(page.Items))
	assert.Equal(t, 3, page.TotalCount)
}
