package dian

import "strings"

// pesos para el dígito de verificación del NIT (Orden Administrativa 4 de 1989, DIAN).
// Se aplican a los dígitos de la base tomados de derecha a izquierda.
var nitWeights = [15]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

const (
	nitMaxBaseDigits = 15
	nitMinFullLength = 9
	nitMaxFullLength = 11
	nitMinBaseLength = 8
	nitMaxBaseLength = 10
)

// ComputeNITCheckDigit calcula el dígito de verificación (módulo 11) de la base del NIT.
// Devuelve "" si la base está vacía, no es numérica o supera 15 dígitos.
func ComputeNITCheckDigit(base string) string {
	if base == "" || !isDigits(base) || len(base) > nitMaxBaseDigits {
		return ""
	}
	var sum int
	for i := 0; i < len(base); i++ {
		d := int(base[len(base)-1-i] - '0')
		sum += d * nitWeights[i]
	}
	r := sum % 11
	if r < 2 {
		return string(rune('0' + r))
	}
	return string(rune('0' + 11 - r))
}

// ValidateNIT valida un NIT completo (base + DV). Acepta "900123456-8", "900.123.456-8" o "9001234568".
func ValidateNIT(full string) bool {
	cleaned := stripChars(full, ".-")
	if !isDigits(cleaned) || len(cleaned) < nitMinFullLength || len(cleaned) > nitMaxFullLength {
		return false
	}
	base, dv := cleaned[:len(cleaned)-1], cleaned[len(cleaned)-1:]
	return ComputeNITCheckDigit(base) == dv
}

// FormatNIT devuelve el NIT como XXXXXXXXX-X. Si no es válido lo devuelve sin cambios.
func FormatNIT(full string) string {
	if !ValidateNIT(full) {
		return full
	}
	cleaned := stripChars(full, ".-")
	return cleaned[:len(cleaned)-1] + "-" + cleaned[len(cleaned)-1:]
}

// ValidateNITBase valida la base del NIT sin dígito de verificación (8 a 10 dígitos, sin cero inicial).
func ValidateNITBase(base string) bool {
	cleaned := stripChars(base, ".")
	if !isDigits(cleaned) || len(cleaned) < nitMinBaseLength || len(cleaned) > nitMaxBaseLength {
		return false
	}
	return cleaned[0] != '0'
}

// FormatNITBase quita puntos y espacios de una base válida.
func FormatNITBase(base string) string {
	if !ValidateNITBase(base) {
		return base
	}
	return stripChars(base, ".")
}

// NITBase extrae la base numérica de un número de documento ya formateado:
// quita separadores de miles y, si trae guión, descarta el DV.
func NITBase(idNumber string) string {
	s := stripChars(idNumber, ".")
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		s = s[:i]
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// stripChars elimina espacios en blanco y los caracteres indicados.
func stripChars(s, chars string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isSpace(r) || strings.ContainsRune(chars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
