package dian

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	validos := []string{
		"+573001234567", "573001234567", "3001234567", "300 123 4567",
		"(300) 123-4567", "+5712345678", "5712345678", "12345678",
	}
	for _, p := range validos {
		assert.True(t, ValidatePhone(p), p)
	}
	assert.False(t, ValidatePhone(""))
	assert.False(t, ValidatePhone("12345"))
	assert.False(t, ValidatePhone("601-2345"))
	assert.False(t, ValidatePhone("4001234567"), "móvil debe empezar por 3")
	assert.False(t, ValidatePhone("02345678"), "fijo no empieza por 0 ni 9")
	assert.False(t, ValidatePhone("+583001234567"))
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "+573001234567", FormatPhone("3001234567"))
	assert.Equal(t, "+573001234567", FormatPhone("573001234567"))
	assert.Equal(t, "+573001234567", FormatPhone("+57 300 123 4567"))
	assert.Equal(t, "+5712345678", FormatPhone("12345678"))
	assert.Equal(t, "+5712345678", FormatPhone("5712345678"))
	assert.Equal(t, "+5757123456", FormatPhone("57123456"))
	assert.Equal(t, "no-es-telefono", FormatPhone("no-es-telefono"))
}

func TestFormatPhone_EsIdempotente(t *testing.T) {
	for _, p := range []string{"3001234567", "573001234567", "12345678", "57123456", "(300) 123-4567"} {
		once := FormatPhone(p)
		assert.True(t, ValidatePhone(once), once)
		assert.Equal(t, once, FormatPhone(once), p)
	}
}

func TestValidateCedula(t *testing.T) {
	assert.True(t, ValidateCedula("1234567"))
	assert.True(t, ValidateCedula("1234567890"))
	assert.True(t, ValidateCedula("1.234.567.890"))
	assert.False(t, ValidateCedula("123456"))
	assert.False(t, ValidateCedula("12345678901"))
	assert.False(t, ValidateCedula("0123456789"))
	assert.False(t, ValidateCedula("12345AB"))
	assert.False(t, ValidateCedula(""))
}

func TestFormatCedula(t *testing.T) {
	assert.Equal(t, "1.234.567", FormatCedula("1234567"))
	assert.Equal(t, "12.345.678", FormatCedula("12345678"))
	assert.Equal(t, "123.456.789", FormatCedula("123456789"))
	assert.Equal(t, "1.234.567.890", FormatCedula("1234567890"))
	assert.Equal(t, "1.234.567.890", FormatCedula("1.234.567.890"))
	assert.Equal(t, "0123", FormatCedula("0123"))
}

func TestIsFiscalResponsibilityCode(t *testing.T) {
	assert.True(t, IsFiscalResponsibilityCode("O-13"))
	assert.True(t, IsFiscalResponsibilityCode("o-48"))
	assert.True(t, IsFiscalResponsibilityCode("0-47"))
	assert.True(t, IsFiscalResponsibilityCode("R-99-PN"))
	assert.False(t, IsFiscalResponsibilityCode("O-99"))
}

func TestIdentificationCode(t *testing.T) {
	assert.Equal(t, "31", IdentificationCode("NIT"))
	assert.Equal(t, "13", IdentificationCode("cc"))
	assert.Equal(t, "", IdentificationCode("RUT"))
}
