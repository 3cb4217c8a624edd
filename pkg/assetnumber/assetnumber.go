// Package assetnumber реализует схему инвентарных номеров PREFIX-NNNN.
package assetnumber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Normalize приводит номер к каноническому виду для сравнения:
// без пробелов по краям, в верхнем регистре.
func Normalize(tag string) string {
	return strings.ToUpper(strings.TrimSpace(tag))
}

func pattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(strings.ToUpper(prefix)) + `-(\d{4})$`)
}

// IsValid проверяет строгий формат номера: PREFIX- и ровно 4 цифры.
// TOP-7 и TOP-00007 — невалидны.
func IsValid(prefix, tag string) bool {
	return pattern(prefix).MatchString(Normalize(tag))
}

// SuffixOf извлекает числовой суффикс номера.
// Возвращает false, если номер не подходит под формат.
func SuffixOf(prefix, tag string) (int, bool) {
	m := pattern(prefix).FindStringSubmatch(Normalize(tag))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Format собирает номер из префикса и порядкового числа.
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", strings.ToUpper(prefix), n)
}

// First — первый номер последовательности.
func First(prefix string) string {
	return Format(prefix, 1)
}

// Next возвращает номер, следующий за highest.
// Пустая строка или номер вне формата откатывают последовательность
// к первому значению.
func Next(prefix, highest string) string {
	n, ok := SuffixOf(prefix, highest)
	if !ok {
		return First(prefix)
	}
	return Format(prefix, n+1)
}
