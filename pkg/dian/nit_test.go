package dian

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeNITCheckDigit_NITsConocidos(t *testing.T) {
	// 800197268-4 es el NIT de la propia DIAN; 890903938-8 el de Bancolombia.
	assert.Equal(t, "4", ComputeNITCheckDigit("800197268"))
	assert.Equal(t, "8", ComputeNITCheckDigit("890903938"))
	assert.Equal(t, "8", ComputeNITCheckDigit("900123456"))
	assert.Equal(t, "3", ComputeNITCheckDigit("830063999"))
	assert.Equal(t, "3", ComputeNITCheckDigit("900373115"))
}

func TestComputeNITCheckDigit_ResiduoMenorADosSeDevuelveTalCual(t *testing.T) {
	// "1": 1*3 = 3 → 11-3 = 8; "4": 4*3 = 12, 12 % 11 = 1 → 1
	assert.Equal(t, "8", ComputeNITCheckDigit("1"))
	assert.Equal(t, "1", ComputeNITCheckDigit("4"))
	assert.Equal(t, "0", ComputeNITCheckDigit("0"))
}

func TestComputeNITCheckDigit_EntradasInvalidasDevuelvenVacio(t *testing.T) {
	assert.Equal(t, "", ComputeNITCheckDigit(""))
	assert.Equal(t, "", ComputeNITCheckDigit("90012345A"))
	assert.Equal(t, "", ComputeNITCheckDigit("900.123.456"))
	assert.Equal(t, "", ComputeNITCheckDigit("1234567890123456"))
	assert.NotEqual(t, "", ComputeNITCheckDigit("123456789012345"))
}

func TestValidateNIT(t *testing.T) {
	assert.True(t, ValidateNIT("900123456-8"))
	assert.True(t, ValidateNIT("900.123.456-8"))
	assert.True(t, ValidateNIT("9001234568"))
	assert.True(t, ValidateNIT(" 800197268-4 "))
	assert.False(t, ValidateNIT("900123456-1"))
	assert.False(t, ValidateNIT(""))
	assert.False(t, ValidateNIT("abc"))
	// longitud total: 9 a 11 dígitos
	assert.False(t, ValidateNIT("1234567-0"))
	assert.False(t, ValidateNIT("123456789012"))
}

func TestValidateNIT_LongitudesLimite(t *testing.T) {
	base8 := "12345678"
	assert.True(t, ValidateNIT(base8+ComputeNITCheckDigit(base8)))
	base10 := "1234567890"
	assert.True(t, ValidateNIT(base10+ComputeNITCheckDigit(base10)))
}

func TestFormatNIT(t *testing.T) {
	assert.Equal(t, "900123456-8", FormatNIT("900.123.456-8"))
	assert.Equal(t, "900123456-8", FormatNIT("9001234568"))
	assert.Equal(t, "900123456-1", FormatNIT("900123456-1"), "un NIT inválido se devuelve sin cambios")
}

func TestValidateNITBase(t *testing.T) {
	assert.True(t, ValidateNITBase("900123456"))
	assert.True(t, ValidateNITBase("900.123.456"))
	assert.True(t, ValidateNITBase("12345678"))
	assert.True(t, ValidateNITBase("1234567890"))
	assert.False(t, ValidateNITBase("1234567"))
	assert.False(t, ValidateNITBase("12345678901"))
	assert.False(t, ValidateNITBase("012345678"))
	assert.False(t, ValidateNITBase(""))
	assert.Equal(t, "900123456", FormatNITBase("900.123.456"))
}

func TestNITBase(t *testing.T) {
	assert.Equal(t, "900123456", NITBase("900.123.456"))
	assert.Equal(t, "900123456", NITBase("900123456-8"))
	assert.Equal(t, "900123456", NITBase("900123456"))
}
