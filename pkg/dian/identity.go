package dian

import (
	"regexp"
	"strings"
)

// Formatos de teléfono colombianos, ya sin espacios, guiones ni paréntesis:
// móvil y fijo con +57, con 57 y locales.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+573[0-9]{9}$`),
	regexp.MustCompile(`^\+57[1-8][0-9]{7}$`),
	regexp.MustCompile(`^573[0-9]{9}$`),
	regexp.MustCompile(`^57[1-8][0-9]{7}$`),
	regexp.MustCompile(`^3[0-9]{9}$`),
	regexp.MustCompile(`^[1-8][0-9]{7}$`),
}

// ValidatePhone valida un teléfono colombiano (móvil o fijo, con o sin indicativo 57).
func ValidatePhone(phone string) bool {
	cleaned := stripChars(phone, "-()")
	for _, p := range phonePatterns {
		if p.MatchString(cleaned) {
			return true
		}
	}
	return false
}

// FormatPhone normaliza un teléfono válido a +57XXXXXXXXXX. Si no es válido lo devuelve sin cambios.
func FormatPhone(phone string) string {
	if !ValidatePhone(phone) {
		return phone
	}
	cleaned := stripChars(phone, "-()")
	switch {
	case strings.HasPrefix(cleaned, "+57"):
		return cleaned
	case strings.HasPrefix(cleaned, "57") && len(cleaned) >= 10:
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "3") && len(cleaned) == 10:
		return "+57" + cleaned
	case len(cleaned) == 8 || len(cleaned) == 10:
		return "+57" + cleaned
	}
	return phone
}

// ValidateCedula valida una cédula de ciudadanía: 7 a 10 dígitos, sin cero inicial.
// Acepta puntos de miles y espacios.
func ValidateCedula(cedula string) bool {
	cleaned := stripChars(cedula, ".")
	if !isDigits(cleaned) || len(cleaned) < 7 || len(cleaned) > 10 {
		return false
	}
	return cleaned[0] != '0'
}

// FormatCedula agrega puntos de miles contando desde la derecha ("1234567890" → "1.234.567.890").
func FormatCedula(cedula string) string {
	if !ValidateCedula(cedula) {
		return cedula
	}
	return groupThousands(stripChars(cedula, "."))
}

// groupThousands inserta '.' cada tres dígitos desde la derecha.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
