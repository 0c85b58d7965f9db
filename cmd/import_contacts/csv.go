package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/contacts-api/internal/application/dto"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// columnAliases nombres de columna aceptados (en minúsculas, sin espacios extremos).
var columnAliases = map[string]string{
	"nombre":            "name",
	"razon_social":      "name",
	"razón social":      "name",
	"name":              "name",
	"tipo":              "type",
	"type":              "type",
	"email":             "email",
	"correo":            "email",
	"telefono":          "phone_primary",
	"teléfono":          "phone_primary",
	"phone":             "phone_primary",
	"celular":           "mobile",
	"mobile":            "mobile",
	"tipo_documento":    "id_type",
	"id_type":           "id_type",
	"documento":         "id_number",
	"numero_documento":  "id_number",
	"id_number":         "id_number",
	"nit":               "id_number",
	"dv":                "dv",
	"tipo_persona":      "person_type",
	"person_type":       "person_type",
	"plazo":             "payment_terms_days",
	"plazo_pago":        "payment_terms_days",
	"cupo":              "credit_limit",
	"cupo_credito":      "credit_limit",
	"credit_limit":      "credit_limit",
	"direccion":         "street",
	"dirección":         "street",
	"ciudad":            "city",
	"departamento":      "state",
	"pais":              "country",
	"país":              "country",
	"notas":             "notes",
	"observaciones":     "notes",
	"responsabilidades": "fiscal_responsibilities",
}

// row fila del archivo ya mapeada a la petición de alta.
type row struct {
	line int
	req  dto.CreateContactRequest
	err  error
}

// newReader decodifica ISO-8859-1 (exportaciones de software contable) o UTF-8.
func newReader(r io.Reader, encoding string) (*csv.Reader, error) {
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8", "":
	case "iso-8859-1", "latin1", "latin-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr, nil
}

// readRows lee el encabezado, detecta el separador ya configurado y mapea cada fila.
// Las filas vacías se omiten; los errores de una fila no detienen la lectura.
func readRows(cr *csv.Reader) ([]row, error) {
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("archivo vacío")
		}
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	cols := make([]string, len(header))
	hasName := false
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		cols[i] = columnAliases[key]
		if cols[i] == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, errors.New("el encabezado no tiene columna de nombre")
	}

	var out []row
	line := 1
	for {
		rec, err := cr.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			out = append(out, row{line: line, err: err})
			continue
		}
		if blank(rec) {
			continue
		}
		req, err := toRequest(cols, rec)
		out = append(out, row{line: line, req: req, err: err})
	}
	return out, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func toRequest(cols, rec []string) (dto.CreateContactRequest, error) {
	var req dto.CreateContactRequest
	var addr dto.AddressRequest
	for i, v := range rec {
		if i >= len(cols) || cols[i] == "" {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		switch cols[i] {
		case "name":
			req.Name = v
		case "type":
			req.Type = splitList(strings.ToLower(v))
		case "email":
			req.Email = v
		case "phone_primary":
			req.PhonePrimary = v
		case "mobile":
			req.Mobile = v
		case "id_type":
			req.IDType = strings.ToUpper(v)
		case "id_number":
			req.IDNumber = v
		case "dv":
			req.DV = v
		case "person_type":
			req.PersonType = strings.ToLower(v)
		case "payment_terms_days":
			n, err := strconv.Atoi(v)
			if err != nil {
				return req, fmt.Errorf("plazo inválido %q", v)
			}
			req.PaymentTermsDays = n
		case "credit_limit":
			d, err := parseAmount(v)
			if err != nil {
				return req, fmt.Errorf("cupo inválido %q", v)
			}
			req.CreditLimit = &d
		case "street":
			addr.Street = v
		case "city":
			addr.City = v
		case "state":
			addr.State = v
		case "country":
			addr.Country = v
		case "notes":
			req.Notes = v
		case "fiscal_responsibilities":
			req.FiscalResponsibilities = splitList(strings.ToUpper(v))
		}
	}
	if addr != (dto.AddressRequest{}) {
		req.BillingAddress = &addr
	}
	return req, nil
}

// splitList separa "client|provider" o "O-13;O-15".
func splitList(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == '|' || r == ';' || r == '/' })
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseAmount acepta "1500000.50", "1.500.000,50" y "$ 1.500.000".
func parseAmount(v string) (decimal.Decimal, error) {
	v = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "$"))
	v = strings.ReplaceAll(v, " ", "")
	if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	} else if strings.Count(v, ".") > 1 {
		v = strings.ReplaceAll(v, ".", "")
	}
	return decimal.NewFromString(v)
}
