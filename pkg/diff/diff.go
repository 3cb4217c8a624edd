// Package diff вычисляет изменения полей между сохранённой сущностью
// и частичным обновлением. nil во входящем значении означает
// "поле не меняем", а не "записать NULL".
package diff

import (
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Change — одно изменение поля: ключ, человекочитаемая метка
// и строковые старое/новое значения для журнала истории.
type Change struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// Set накапливает изменения по мере слияния полей.
// Чистое вычисление, без побочных эффектов: одинаковые входы
// дают одинаковый список изменений.
type Set struct {
	changes []Change
}

func NewSet() *Set {
	return &Set{}
}

func (s *Set) Changes() []Change {
	return s.changes
}

func (s *Set) HasChanges() bool {
	return len(s.changes) > 0
}

func (s *Set) Len() int {
	return len(s.changes)
}

func (s *Set) record(field, label, oldValue, newValue string) {
	s.changes = append(s.changes, Change{
		Field:    field,
		Label:    label,
		OldValue: oldValue,
		NewValue: newValue,
	})
}

// Text сравнивает обязательное текстовое поле и возвращает итоговое значение.
func (s *Set) Text(field, label, current string, incoming *string) string {
	if incoming == nil || *incoming == current {
		return current
	}
	s.record(field, label, current, *incoming)
	return *incoming
}

// OptText сравнивает необязательное текстовое поле. NULL в базе считается
// пустой строкой, чтобы NULL -> "" не выглядел как ложное изменение.
func (s *Set) OptText(field, label string, current *string, incoming *string) *string {
	if incoming == nil {
		return current
	}
	currentVal := ""
	if current != nil {
		currentVal = *current
	}
	if *incoming == currentVal {
		return current
	}
	s.record(field, label, currentVal, *incoming)
	return incoming
}

// Number сравнивает числовое поле по значению, а не по строковому представлению.
func (s *Set) Number(field, label string, current float64, incoming *float64) float64 {
	if incoming == nil || *incoming == current {
		return current
	}
	s.record(field, label, formatNumber(current), formatNumber(*incoming))
	return *incoming
}

// Date сравнивает обязательную дату (с точностью до дня).
func (s *Set) Date(field, label string, current time.Time, incoming *time.Time) time.Time {
	if incoming == nil {
		return current
	}
	if current.Format(dateLayout) == incoming.Format(dateLayout) {
		return current
	}
	s.record(field, label, current.Format(dateLayout), incoming.Format(dateLayout))
	return *incoming
}

// OptDate сравнивает необязательную дату.
func (s *Set) OptDate(field, label string, current *time.Time, incoming *time.Time) *time.Time {
	if incoming == nil {
		return current
	}
	currentVal := ""
	if current != nil {
		currentVal = current.Format(dateLayout)
	}
	incomingVal := incoming.Format(dateLayout)
	if incomingVal == currentVal {
		return current
	}
	s.record(field, label, currentVal, incomingVal)
	return incoming
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
