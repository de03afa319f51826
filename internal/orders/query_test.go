package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kirana/internal/models"
)

func testOrder(name, email, phone, status string, total float64, createdAt, updatedAt time.Time) models.Order {
	o := models.Order{
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
		Status:        status,
		TotalAmount:   total,
	}
	o.ID = uuid.New()
	o.CreatedAt = createdAt
	o.UpdatedAt = updatedAt
	return o
}

func testOrderSet(now time.Time) []models.Order {
	return []models.Order{
		testOrder("Asha Rao", "asha@example.com", "9876500001", models.StatusPending, 500, now.Add(-96*time.Hour), now.Add(-72*time.Hour)),
		testOrder("Vikram Joshi", "vikram@example.com", "9876500002", models.StatusProcessing, 1200, now.Add(-30*time.Hour), now.Add(-10*time.Hour)),
		testOrder("Meera Iyer", "meera@example.com", "9876500003", models.StatusShipped, 820, now.Add(-120*time.Hour), now.Add(-60*time.Hour)),
		testOrder("Dev Patel", "dev@example.com", "9876500004", models.StatusDelivered, 1000, now.Add(-240*time.Hour), now.Add(-240*time.Hour)),
		testOrder("Asha Kulkarni", "ak@example.com", "9876500005", models.StatusCancelled, 350, now.Add(-2*time.Hour), now.Add(-1*time.Hour)),
	}
}

func TestApplySearchMatchesNameEmailPhone(t *testing.T) {
	now := time.Now()
	set := testOrderSet(now)

	byName := Apply(set, Params{Search: "asha"}, now)
	assert.Len(t, byName, 2)

	byEmail := Apply(set, Params{Search: "VIKRAM@"}, now)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Vikram Joshi", byEmail[0].CustomerName)

	byPhone := Apply(set, Params{Search: "9876500003"}, now)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Meera Iyer", byPhone[0].CustomerName)

	byID := Apply(set, Params{Search: set[3].ID.String()[:8]}, now)
	require.NotEmpty(t, byID)
}

func TestApplyStatusFilterCombinesWithSearch(t *testing.T) {
	now := time.Now()
	set := testOrderSet(now)

	res := Apply(set, Params{Search: "asha", StatusFilter: "cancelled"}, now)
	require.Len(t, res, 1)
	assert.Equal(t, "Asha Kulkarni", res[0].CustomerName)

	all := Apply(set, Params{StatusFilter: "all"}, now)
	assert.Len(t, all, len(set))

	caseInsensitive := Apply(set, Params{StatusFilter: "Pending"}, now)
	assert.Len(t, caseInsensitive, 1)
}

func TestApplyOverdueFilterPreemptsOtherFilters(t *testing.T) {
	now := time.Now()
	set := testOrderSet(now)

	// pending + 72h stale -> overdue; processing at 10h is not
	base := Apply(set, Params{OverdueFilter: models.StatusPending}, now)
	require.Len(t, base, 1)
	assert.Equal(t, "Asha Rao", base[0].CustomerName)

	// search and status filter must not change the result while the
	// overdue filter is set
	withNoise := Apply(set, Params{
		OverdueFilter: models.StatusPending,
		Search:        "vikram",
		StatusFilter:  "delivered",
	}, now)
	assert.Equal(t, base, withNoise)

	none := Apply(set, Params{OverdueFilter: models.StatusProcessing}, now)
	assert.Empty(t, none)

	shipped := Apply(set, Params{OverdueFilter: models.StatusShipped}, now)
	assert.Len(t, shipped, 1)
}

func TestApplySortColumns(t *testing.T) {
	now := time.Now()
	set := testOrderSet(now)

	byTotal := Apply(set, Params{SortColumn: SortByTotal, SortDesc: true}, now)
	require.Len(t, byTotal, 5)
	assert.Equal(t, 1200.0, byTotal[0].TotalAmount)
	assert.Equal(t, 350.0, byTotal[4].TotalAmount)

	byName := Apply(set, Params{SortColumn: SortByCustomer}, now)
	assert.Equal(t, "Asha Kulkarni", byName[0].CustomerName)

	byDate := Apply(set, Params{SortColumn: SortByDate, SortDesc: true}, now)
	assert.Equal(t, "Asha Kulkarni", byDate[0].CustomerName)
	assert.Equal(t, "Dev Patel", byDate[4].CustomerName)
}

func TestApplySortIsStable(t *testing.T) {
	now := time.Now()
	set := []models.Order{
		testOrder("c1", "c1@example.com", "1", models.StatusPending, 100, now, now),
		testOrder("c2", "c2@example.com", "2", models.StatusPending, 100, now, now),
		testOrder("c3", "c3@example.com", "3", models.StatusPending, 100, now, now),
	}

	once := Apply(set, Params{SortColumn: SortByTotal, SortDesc: true}, now)
	twice := Apply(once, Params{SortColumn: SortByTotal, SortDesc: true}, now)

	// equal totals keep their prior relative order, and re-sorting is a
	// fixed point
	assert.Equal(t, "c1", once[0].CustomerName)
	assert.Equal(t, "c2", once[1].CustomerName)
	assert.Equal(t, once, twice)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	set := testOrderSet(now)
	first := set[0].CustomerName

	Apply(set, Params{SortColumn: SortByCustomer, SortDesc: true}, now)
	assert.Equal(t, first, set[0].CustomerName)
}

func TestNextSort(t *testing.T) {
	s := NextSort(Sort{}, SortByDate)
	assert.Equal(t, Sort{Column: SortByDate, Desc: true}, s)

	s = NextSort(s, SortByDate)
	assert.Equal(t, Sort{Column: SortByDate, Desc: false}, s)

	s = NextSort(s, SortByTotal)
	assert.Equal(t, Sort{Column: SortByTotal, Desc: true}, s)
}
