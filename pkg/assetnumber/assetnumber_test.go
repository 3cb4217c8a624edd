package assetnumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "TOP-0001", Normalize("  top-0001 "))
	assert.Equal(t, "TOP-0001", Normalize("TOP-0001"))
	assert.Equal(t, "", Normalize("   "))
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		tag   string
		valid bool
	}{
		{"TOP-0001", true},
		{"TOP-9999", true},
		{"TOP-001", false},
		{"TOP-00001", false},
		{"TOP-", false},
		{"XXX-0001", false},
		{"TOP-12a4", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.valid, IsValid("TOP", c.tag), "tag=%q", c.tag)
	}
}

func TestSuffixOf(t *testing.T) {
	n, ok := SuffixOf("TOP", "TOP-0042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = SuffixOf("TOP", "TOP-abc")
	assert.False(t, ok)
}

func TestNext(t *testing.T) {
	assert.Equal(t, "TOP-0008", Next("TOP", "TOP-0007"))
	assert.Equal(t, "TOP-0100", Next("TOP", "TOP-0099"))
	// На пустой базе и на мусорном значении начинаем с первого номера.
	assert.Equal(t, "TOP-0001", Next("TOP", ""))
	assert.Equal(t, "TOP-0001", Next("TOP", "garbage"))
	// Переход через границу ширины не теряет номер.
	assert.Equal(t, "TOP-10000", Next("TOP", "TOP-9999"))
}

func TestFormatPadsToFourDigits(t *testing.T) {
	assert.Equal(t, "TOP-0003", Format("TOP", 3))
	assert.Equal(t, "TOP-0042", Format("TOP", 42))
	assert.Equal(t, "TOP-12345", Format("TOP", 12345))
}
