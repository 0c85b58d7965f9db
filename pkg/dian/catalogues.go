// Package dian contiene catálogos y validaciones de identificación alineados
// a la DIAN (Colombia): NIT con dígito de verificación, cédula y teléfonos.
package dian

import "strings"

// =============================================================================
// Tabla 17 - Tipos de Responsabilidad Fiscal (Anexo 1.9 - 13.2.7.1)
// En el anexo figuran como "0-XX"; en sistemas se usa también "O-XX" (letra O).
// =============================================================================

const (
	TaxLevelGranContribuyente  = "O-13"    // Gran contribuyente
	TaxLevelAutorretenedor     = "O-15"    // Autorretenedor
	TaxLevelAgenteRetencionIVA = "O-23"    // Agente de retención en el impuesto sobre las ventas
	TaxLevelRegimenSimple      = "O-47"    // Régimen Simple de Tributación – SIMPLE
	TaxLevelResponsableIVA     = "O-48"    // Responsable de IVA
	TaxLevelNoResponsableIVA   = "O-49"    // No responsable de IVA
	TaxLevelNoAplicaOtros      = "R-99-PN" // No Aplica - Otros
)

// ValidFiscalResponsibilityCodes contiene los códigos de responsabilidad fiscal válidos (DIAN).
var ValidFiscalResponsibilityCodes = map[string]bool{
	TaxLevelGranContribuyente:  true,
	TaxLevelAutorretenedor:     true,
	TaxLevelAgenteRetencionIVA: true,
	TaxLevelRegimenSimple:      true,
	TaxLevelResponsableIVA:     true,
	TaxLevelNoResponsableIVA:   true,
	TaxLevelNoAplicaOtros:      true,
	"0-13": true, "0-15": true, "0-23": true, "0-47": true, "0-48": true, "0-49": true,
}

// IsFiscalResponsibilityCode indica si el código (sin importar mayúsculas) está en la Tabla 17.
func IsFiscalResponsibilityCode(code string) bool {
	return ValidFiscalResponsibilityCodes[strings.ToUpper(strings.TrimSpace(code))]
}

// =============================================================================
// Tabla 3 - Tipos de identificación (Anexo 1.9 - 13.2.1)
// =============================================================================

const (
	IdentificationTypeCC       = "13" // Cédula de ciudadanía
	IdentificationTypeCE       = "22" // Cédula de extranjería
	IdentificationTypeNIT      = "31" // NIT - requiere dígito de verificación
	IdentificationTypePassport = "41" // Pasaporte
)

// identificationCodes mapea el tipo de documento interno al código DIAN.
var identificationCodes = map[string]string{
	"CC":       IdentificationTypeCC,
	"CE":       IdentificationTypeCE,
	"NIT":      IdentificationTypeNIT,
	"PASSPORT": IdentificationTypePassport,
}

// IdentificationCode devuelve el código DIAN (Tabla 3) del tipo de documento, o "" si no aplica.
func IdentificationCode(idType string) string {
	return identificationCodes[strings.ToUpper(idType)]
}
