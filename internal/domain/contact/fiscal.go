package contact

import (
	"strings"

	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/pkg/dian"
)

// Fiscal datos de identificación que participan en las reglas cruzadas.
type Fiscal struct {
	IDType     entity.IDType
	IDNumber   string
	DV         string
	PersonType entity.PersonType
}

// CheckFiscal aplica las reglas cruzadas sobre valores ya normalizados y
// devuelve la versión ajustada (DV descartado fuera de NIT, persona natural por defecto).
//
//   - NIT exige id_number; si trae DV debe coincidir con el calculado sobre la base.
//   - CC no admite persona jurídica.
func CheckFiscal(f Fiscal) (Fiscal, error) {
	f.DV = strings.TrimSpace(f.DV)
	if f.IDType == entity.IDTypeNIT {
		if f.IDNumber == "" {
			return f, domain.Validation(domain.CodeMissingField, "id_number", "id_number es requerido para tipo NIT")
		}
		if f.DV != "" {
			expected := dian.ComputeNITCheckDigit(dian.NITBase(f.IDNumber))
			if expected == "" {
				return f, domain.Validation(domain.CodeCheckDigitMismatch, "dv", "No se puede calcular el dígito de verificación para este id_number")
			}
			if expected != f.DV {
				return f, domain.Validation(domain.CodeCheckDigitMismatch, "dv", "Dígito de verificación incorrecto. Debería ser: "+expected)
			}
		}
	} else {
		f.DV = ""
	}
	if f.IDType == entity.IDTypeCC && f.PersonType == entity.PersonTypeJuridica {
		return f, domain.Validation(domain.CodeInvalidCombination, "person_type", "Personas jurídicas no pueden usar cédula de ciudadanía")
	}
	if f.IDType != entity.IDTypeNIT && f.PersonType == "" {
		f.PersonType = entity.PersonTypeNatural
	}
	return f, nil
}
