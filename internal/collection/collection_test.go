package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name     string
	Email    string
	Plan     string
	Status   string
	Priority string
	Amount   float64
	Active   bool
	Date     *time.Time
}

func date(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func userFields(r row) []string { return []string{r.Name, r.Email} }

func TestSearch(t *testing.T) {
	users := []row{
		{Name: "Ana", Email: "a@x.com"},
		{Name: "Bruno", Email: "b@y.com"},
	}

	got := Search(users, "ana", userFields)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Name)

	got = Search(users, "Y.COM", userFields)
	require.Len(t, got, 1)
	assert.Equal(t, "Bruno", got[0].Name)

	assert.Len(t, Search(users, "", userFields), 2)
	assert.Len(t, Search(users, "  ", userFields), 2)
	assert.Empty(t, Search(users, "zzz", userFields))
}

func TestWhere(t *testing.T) {
	contracts := []row{
		{Name: "a", Status: "active", Plan: "pro", Active: true},
		{Name: "b", Status: "cancelled", Plan: "pro"},
		{Name: "c", Status: "active", Plan: "basic", Active: true},
	}
	status := func(r row) string { return r.Status }
	plan := func(r row) string { return r.Plan }

	assert.Len(t, Where(contracts, Equals(All, status)), 3)
	assert.Len(t, Where(contracts, Equals("", status)), 3)
	assert.Len(t, Where(contracts, Equals("active", status)), 2)

	got := Where(contracts, Equals("active", status), Equals("pro", plan))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)

	active := func(r row) bool { return r.Active }
	assert.Len(t, Where(contracts, ActiveOnly(false, active)), 2)
	assert.Len(t, Where(contracts, ActiveOnly(true, active)), 3)

	got = Where(contracts, Matches("b", func(r row) []string { return []string{r.Name} }), nil)
	require.Len(t, got, 1)
}

func TestSort_TimeNilIsEpoch(t *testing.T) {
	costs := []row{
		{Name: "march", Date: date("2024-03-01")},
		{Name: "january", Date: date("2024-01-01")},
		{Name: "none"},
	}
	key := Time(func(r row) *time.Time { return r.Date })

	asc := Sort(costs, key, Asc)
	assert.Equal(t, []string{"none", "january", "march"}, names(asc))

	desc := Sort(costs, key, Desc)
	assert.Equal(t, []string{"march", "january", "none"}, names(desc))

	// 原切片不变
	assert.Equal(t, []string{"march", "january", "none"}, names(costs))
}

func TestSort_Keys(t *testing.T) {
	items := []row{
		{Name: "bob", Amount: 30, Priority: "low"},
		{Name: "Alice", Amount: 10, Priority: "urgent"},
		{Name: "carl", Amount: 20, Priority: "medium"},
	}

	assert.Equal(t, []string{"Alice", "bob", "carl"}, names(Sort(items, Text(func(r row) string { return r.Name }), Asc)))
	assert.Equal(t, []string{"bob", "carl", "Alice"}, names(Sort(items, Number(func(r row) float64 { return r.Amount }), Desc)))

	rank := Rank(func(r row) string { return r.Priority }, []string{"low", "medium", "high", "urgent"})
	assert.Equal(t, []string{"Alice", "carl", "bob"}, names(Sort(items, rank, Desc)))

	assert.Equal(t, names(items), names(Sort(items, nil, Asc)))
	assert.NotNil(t, Sort[row](nil, nil, Asc))
}

func TestSort_Stable(t *testing.T) {
	items := []row{{Name: "1", Plan: "pro"}, {Name: "2", Plan: "basic"}, {Name: "3", Plan: "pro"}, {Name: "4", Plan: "basic"}}
	got := Sort(items, Text(func(r row) string { return r.Plan }), Asc)
	assert.Equal(t, []string{"2", "4", "1", "3"}, names(got))
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Desc, ParseDirection("DESC"))
	assert.Equal(t, Asc, ParseDirection("asc"))
	assert.Equal(t, Asc, ParseDirection("sideways"))
	assert.Equal(t, "desc", Desc.String())
}

func TestKeys(t *testing.T) {
	keys := Keys[row]{
		"name":   Text(func(r row) string { return r.Name }),
		"amount": Number(func(r row) float64 { return r.Amount }),
	}
	assert.NotNil(t, keys.Get("amount", "name"))
	assert.NotNil(t, keys.Get("unknown", "name"))
	assert.Nil(t, keys.Get("unknown", "missing"))
}

func TestAggregates(t *testing.T) {
	costs := []row{
		{Plan: "marketing", Amount: 100, Status: "active"},
		{Plan: "software", Amount: 50.5, Status: "active"},
		{Plan: "marketing", Amount: 25, Status: "expired"},
	}
	cat := func(r row) string { return r.Plan }
	amount := func(r row) float64 { return r.Amount }

	assert.Equal(t, map[string]int{"marketing": 2, "software": 1}, CountBy(costs, cat))
	sums := SumBy(costs, cat, amount)
	assert.InDelta(t, 125, sums["marketing"], 1e-9)
	assert.InDelta(t, 50.5, sums["software"], 1e-9)

	assert.InDelta(t, 175.5, Sum(costs, amount), 1e-9)
	active := Equals("active", func(r row) string { return r.Status })
	assert.InDelta(t, 150.5, Sum(costs, amount, active), 1e-9)
	assert.Equal(t, 2, Count(costs, active))
	assert.Equal(t, 0, Count[row](nil))
	assert.Empty(t, CountBy[row](nil, cat))
}

func names(rows []row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}
