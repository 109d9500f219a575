package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(desc string, total float64) LineItem {
	return LineItem{
		LineID:           LineID("01", desc, 10),
		TradeDescription: desc,
		TotalCost:        total,
	}
}

func TestAggregator(t *testing.T) {
	t.Run("closes and emits a division with items", func(t *testing.T) {
		agg := NewAggregator()
		agg.Open("01", "General Requirements")
		agg.Add(testItem("Mobilization", 1500))
		agg.Add(testItem("Supervision", 2500.555))

		d := agg.CloseCurrent()
		require.NotNil(t, d)
		assert.Equal(t, "01", d.DivisionCode)
		assert.Equal(t, "General Requirements", d.DivisionName)
		assert.Len(t, d.Items, 2)
		assert.Equal(t, 4000.56, d.DivisionTotal)
	})

	t.Run("empty division is dropped, never emitted", func(t *testing.T) {
		agg := NewAggregator()
		agg.Open("01", "Empty")
		agg.Open("02", "Site Work")
		agg.Add(testItem("Grading", 800))
		agg.CloseCurrent()

		divisions := agg.Divisions()
		require.Len(t, divisions, 1)
		assert.Equal(t, "02", divisions[0].DivisionCode)
	})

	t.Run("open implicitly closes the previous division", func(t *testing.T) {
		agg := NewAggregator()
		agg.Open("03", "Concrete")
		agg.Add(testItem("Footings", 5000))
		agg.Open("04", "Masonry")
		agg.Add(testItem("CMU", 3000))
		agg.CloseCurrent()

		divisions := agg.Divisions()
		require.Len(t, divisions, 2)
		assert.Equal(t, "03", divisions[0].DivisionCode)
		assert.Equal(t, 5000.0, divisions[0].DivisionTotal)
		assert.Equal(t, "04", divisions[1].DivisionCode)
	})

	t.Run("items before any division are dropped", func(t *testing.T) {
		agg := NewAggregator()
		agg.Add(testItem("Orphan", 100))
		assert.False(t, agg.HasOpen())
		assert.Nil(t, agg.CloseCurrent())
		assert.Empty(t, agg.Divisions())
	})

	t.Run("close with nothing open is a no-op", func(t *testing.T) {
		agg := NewAggregator()
		assert.Nil(t, agg.CloseCurrent())
		assert.Nil(t, agg.CloseCurrent())
	})

	t.Run("current code tracks the open division", func(t *testing.T) {
		agg := NewAggregator()
		assert.Equal(t, "", agg.CurrentCode())
		agg.Open("05", "Metals")
		assert.Equal(t, "05", agg.CurrentCode())
		agg.Add(testItem("Joists", 100))
		agg.CloseCurrent()
		assert.Equal(t, "", agg.CurrentCode())
	})
}

func TestLineID(t *testing.T) {
	t.Run("combines code, slug and row index", func(t *testing.T) {
		assert.Equal(t, "02-rough-grading", LineID("02", "Rough Grading", 0)[:16])
		assert.Equal(t, "02-rough-grading-17", LineID("02", "Rough Grading", 17))
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		a := LineID("08", "Electrical Allowance", 742)
		b := LineID("08", "Electrical Allowance", 742)
		assert.Equal(t, a, b)
	})

	t.Run("row index disambiguates repeated descriptions", func(t *testing.T) {
		a := LineID("08", "Allowance", 10)
		b := LineID("08", "Allowance", 11)
		assert.NotEqual(t, a, b)
	})

	t.Run("long descriptions are truncated without a trailing dash", func(t *testing.T) {
		id := LineID("01", "temporary protection and dust control barriers", 5)
		assert.Equal(t, "01-temporary-protection-and-5", id)
	})
}
