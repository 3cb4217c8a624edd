package dto

// Форматы дат, принимаемые и отдаваемые API.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)
