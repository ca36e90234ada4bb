package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func baseFilters() Filters {
	return Filters{
		Scope:      "measurements",
		Selections: map[string]string{"stationId": "7", "sensorId": "3"},
		Start:      time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC),
		Sort:       SortDesc,
	}
}

func TestFingerprint_EqualInputsEqualKeys(t *testing.T) {
	a := baseFilters()
	b := baseFilters()
	b.Selections = map[string]string{"sensorId": "3", "stationId": "7"}
	// тот же момент в другой зоне
	b.Start = a.Start.In(time.FixedZone("BRT", -3*3600))

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.True(t, a.Equal(b))
}

func TestFingerprint_AnyFieldChangeChangesKey(t *testing.T) {
	base := baseFilters()

	variants := map[string]func(f *Filters){
		"scope":         func(f *Filters) { f.Scope = "activations" },
		"selection":     func(f *Filters) { f.Selections = map[string]string{"stationId": "8", "sensorId": "3"} },
		"extra key":     func(f *Filters) { f.Selections = map[string]string{"stationId": "7", "sensorId": "3", "valveId": "1"} },
		"dropped key":   func(f *Filters) { f.Selections = map[string]string{"stationId": "7"} },
		"start":         func(f *Filters) { f.Start = f.Start.Add(time.Nanosecond) },
		"end":           func(f *Filters) { f.End = time.Time{} },
		"sort":          func(f *Filters) { f.Sort = SortAsc },
		"key collision": func(f *Filters) { f.Selections = map[string]string{"stationId": "7&sensorId=3"} },
	}

	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			f := baseFilters()
			mutate(&f)
			assert.NotEqual(t, base.Fingerprint(), f.Fingerprint())
		})
	}
}

func TestFilters_QueryUsesUTC(t *testing.T) {
	f := baseFilters()
	f.Start = time.Date(2024, 3, 1, 0, 0, 0, 0, time.FixedZone("BRT", -3*3600))

	q := f.Query()

	assert.Equal(t, "2024-03-01T03:00:00Z", q.Get("start"))
	assert.Equal(t, "2024-03-02T03:00:00Z", q.Get("end"))
	assert.Equal(t, "7", q.Get("stationId"))
	assert.Equal(t, "3", q.Get("sensorId"))
}

func TestFilters_QueryOmitsZeroTimes(t *testing.T) {
	q := Filters{Scope: "users"}.Query()

	assert.Empty(t, q.Get("start"))
	assert.Empty(t, q.Get("end"))
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortAsc, ParseSortOrder("ASC", SortDesc))
	assert.Equal(t, SortDesc, ParseSortOrder("desc", SortAsc))
	assert.Equal(t, SortDesc, ParseSortOrder("sideways", SortDesc))
}
