package diff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestText(t *testing.T) {
	d := NewSet()

	// nil — поле не меняем
	got := d.Text("location", "Location", "Офис", nil)
	assert.Equal(t, "Офис", got)
	assert.False(t, d.HasChanges())

	// одинаковое значение — не изменение
	got = d.Text("location", "Location", "Офис", ptr("Офис"))
	assert.Equal(t, "Офис", got)
	assert.False(t, d.HasChanges())

	got = d.Text("location", "Location", "Офис", ptr("Склад"))
	assert.Equal(t, "Склад", got)
	require.Equal(t, 1, d.Len())
	change := d.Changes()[0]
	assert.Equal(t, "location", change.Field)
	assert.Equal(t, "Location", change.Label)
	assert.Equal(t, "Офис", change.OldValue)
	assert.Equal(t, "Склад", change.NewValue)
}

func TestOptText_NullEqualsEmpty(t *testing.T) {
	d := NewSet()

	// NULL в базе и "" в запросе — не ложное изменение
	got := d.OptText("brand", "Brand", nil, ptr(""))
	assert.Nil(t, got)
	assert.False(t, d.HasChanges())

	got = d.OptText("brand", "Brand", nil, ptr("Dell"))
	require.NotNil(t, got)
	assert.Equal(t, "Dell", *got)
	require.Equal(t, 1, d.Len())
	assert.Equal(t, "", d.Changes()[0].OldValue)
	assert.Equal(t, "Dell", d.Changes()[0].NewValue)
}

func TestNumber_ComparesByValue(t *testing.T) {
	d := NewSet()

	got := d.Number("value", "Value", 1250, ptr(1250.0))
	assert.Equal(t, 1250.0, got)
	assert.False(t, d.HasChanges())

	got = d.Number("value", "Value", 1250, ptr(999.5))
	assert.Equal(t, 999.5, got)
	require.Equal(t, 1, d.Len())
	assert.Equal(t, "1250", d.Changes()[0].OldValue)
	assert.Equal(t, "999.5", d.Changes()[0].NewValue)
}

func TestDate_ComparesByDay(t *testing.T) {
	d := NewSet()
	morning := time.Date(2024, 2, 12, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 2, 12, 21, 30, 0, 0, time.UTC)

	// один и тот же день в разное время — не изменение
	got := d.Date("acquisitionDate", "Acquisition date", morning, &evening)
	assert.Equal(t, morning, got)
	assert.False(t, d.HasChanges())

	nextDay := time.Date(2024, 2, 13, 0, 0, 0, 0, time.UTC)
	got = d.Date("acquisitionDate", "Acquisition date", morning, &nextDay)
	assert.Equal(t, nextDay, got)
	require.Equal(t, 1, d.Len())
	assert.Equal(t, "2024-02-12", d.Changes()[0].OldValue)
	assert.Equal(t, "2024-02-13", d.Changes()[0].NewValue)
}

func TestOptDate(t *testing.T) {
	d := NewSet()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got := d.OptDate("invoiceDate", "Invoice date", nil, nil)
	assert.Nil(t, got)
	assert.False(t, d.HasChanges())

	got = d.OptDate("invoiceDate", "Invoice date", nil, &date)
	require.NotNil(t, got)
	require.Equal(t, 1, d.Len())
	assert.Equal(t, "", d.Changes()[0].OldValue)
	assert.Equal(t, "2024-06-01", d.Changes()[0].NewValue)
}

func TestSet_IsDeterministic(t *testing.T) {
	build := func() []Change {
		d := NewSet()
		d.Text("a", "A", "1", ptr("2"))
		d.Text("b", "B", "x", ptr("y"))
		return d.Changes()
	}
	assert.Equal(t, build(), build())
}
