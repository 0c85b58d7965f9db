// Package contact contiene las reglas de dominio de un contacto: normalización
// de campos, validación fiscal (NIT, cédula, teléfonos) y reglas cruzadas.
// Utiliza los validadores y catálogos de pkg/dian.
package contact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/pkg/dian"

	"github.com/shopspring/decimal"
)

const (
	MaxNameLength      = 200
	MaxPaymentTermDays = 365
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeName recorta espacios; exige entre 1 y 200 caracteres.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", domain.Validation(domain.CodeMissingField, "name", "el nombre es requerido")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", domain.Validation(domain.CodeInvalidFormat, "name", fmt.Sprintf("el nombre no puede superar %d caracteres", MaxNameLength))
	}
	return name, nil
}

// NormalizeEmail valida el formato si no está vacío. Vacío = sin email.
func NormalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", nil
	}
	if !emailPattern.MatchString(email) {
		return "", domain.Validation(domain.CodeInvalidFormat, "email", "Formato de email inválido")
	}
	return email, nil
}

// NormalizePhone valida y lleva a formato +57 un teléfono no vacío.
func NormalizePhone(field, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	if !dian.ValidatePhone(raw) {
		return "", domain.Validation(domain.CodeInvalidFormat, field,
			"Formato de teléfono inválido. Use: +57XXXXXXXXXX, 57XXXXXXXXXX o XXXXXXXXXX")
	}
	return dian.FormatPhone(raw), nil
}

// IDNumberKind resultado de la clasificación heurística del documento.
type IDNumberKind int

const (
	IDNumberEmpty     IDNumberKind = iota
	IDNumberCedula                 // 7 a 10 dígitos: validado y formateado con puntos
	IDNumberNIT                    // contiene guión: validado como NIT completo
	IDNumberUnchecked              // otro formato (pasaporte, CE...): se guarda tal cual
)

// IDNumber documento ya clasificado y normalizado.
type IDNumber struct {
	Kind  IDNumberKind
	Value string
}

// ClassifyIDNumber aplica la heurística de formato sin mirar id_type:
// solo dígitos y 7-10 de largo → cédula; con guión → NIT; otro → sin verificar.
func ClassifyIDNumber(raw string) (IDNumber, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return IDNumber{Kind: IDNumberEmpty}, nil
	}
	if onlyDigits(v) && len(v) >= 7 && len(v) <= 10 {
		if !dian.ValidateCedula(v) {
			return IDNumber{}, domain.Validation(domain.CodeInvalidFormat, "id_number", "Cédula inválida")
		}
		return IDNumber{Kind: IDNumberCedula, Value: dian.FormatCedula(v)}, nil
	}
	if strings.Contains(v, "-") {
		if !dian.ValidateNIT(v) {
			return IDNumber{}, domain.Validation(domain.CodeInvalidFormat, "id_number", "NIT inválido o dígito de verificación incorrecto")
		}
		return IDNumber{Kind: IDNumberNIT, Value: dian.FormatNIT(v)}, nil
	}
	return IDNumber{Kind: IDNumberUnchecked, Value: v}, nil
}

// ParseContactType único punto de entrada para el tipo de contacto (sin importar mayúsculas).
func ParseContactType(raw string) (entity.ContactType, error) {
	switch entity.ContactType(strings.ToLower(strings.TrimSpace(raw))) {
	case entity.ContactTypeClient:
		return entity.ContactTypeClient, nil
	case entity.ContactTypeProvider:
		return entity.ContactTypeProvider, nil
	}
	return "", domain.Validation(domain.CodeInvalidEnumValue, "type", fmt.Sprintf("Tipo inválido: %s. Use 'client' o 'provider'", raw))
}

// NormalizeTypes parsea y deduplica los tipos conservando el orden. Vacío → [client].
func NormalizeTypes(raw []string) ([]entity.ContactType, error) {
	if len(raw) == 0 {
		return []entity.ContactType{entity.ContactTypeClient}, nil
	}
	out := make([]entity.ContactType, 0, len(raw))
	seen := make(map[entity.ContactType]bool, len(raw))
	for _, r := range raw {
		t, err := ParseContactType(r)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// ParseIDType único punto de entrada para el tipo de documento. Vacío = sin tipo.
func ParseIDType(raw string) (entity.IDType, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch entity.IDType(v) {
	case "":
		return "", nil
	case entity.IDTypeCC, entity.IDTypeNIT, entity.IDTypeCE, entity.IDTypePassport:
		return entity.IDType(v), nil
	}
	return "", domain.Validation(domain.CodeInvalidEnumValue, "id_type", fmt.Sprintf("Tipo de documento inválido: %s. Use CC, NIT, CE o PASSPORT", raw))
}

// ParsePersonType único punto de entrada para el tipo de persona. Vacío = sin definir.
func ParsePersonType(raw string) (entity.PersonType, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch entity.PersonType(v) {
	case "":
		return "", nil
	case entity.PersonTypeNatural, entity.PersonTypeJuridica:
		return entity.PersonType(v), nil
	}
	return "", domain.Validation(domain.CodeInvalidEnumValue, "person_type", "person_type debe ser 'natural' o 'juridica'")
}

// NormalizeFiscalResponsibilities valida contra la Tabla 17 DIAN, pasa a mayúsculas y deduplica.
func NormalizeFiscalResponsibilities(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		code := strings.ToUpper(strings.TrimSpace(c))
		if code == "" || seen[code] {
			continue
		}
		if !dian.IsFiscalResponsibilityCode(code) {
			return nil, domain.Validation(domain.CodeInvalidEnumValue, "fiscal_responsibilities", fmt.Sprintf("Responsabilidad fiscal desconocida: %s", c))
		}
		seen[code] = true
		out = append(out, code)
	}
	return out, nil
}

// NormalizeCreditLimit exige valor no negativo y redondea a 2 decimales (mitad al par).
func NormalizeCreditLimit(v decimal.Decimal) (decimal.Decimal, error) {
	if v.IsNegative() {
		return decimal.Zero, domain.Validation(domain.CodeInvalidFormat, "credit_limit", "El límite de crédito no puede ser negativo")
	}
	return v.RoundBank(2), nil
}

// ValidatePaymentTerms exige 0 a 365 días.
func ValidatePaymentTerms(days int) error {
	if days < 0 || days > MaxPaymentTermDays {
		return domain.Validation(domain.CodeInvalidFormat, "payment_terms_days", fmt.Sprintf("Los días de plazo deben estar entre 0 y %d", MaxPaymentTermDays))
	}
	return nil
}

func onlyDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
