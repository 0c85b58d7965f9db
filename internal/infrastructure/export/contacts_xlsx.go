// Package export genera el listado de contactos en Excel con excelize.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Contactos"

// ContactsHeader encabezados de la hoja exportada.
var ContactsHeader = []string{
	"Nombre",
	"Tipo",
	"Tipo documento",
	"Documento",
	"DV",
	"Persona",
	"Email",
	"Teléfono",
	"Móvil",
	"Plazo (días)",
	"Cupo",
	"Ciudad",
	"Activo",
	"Creado",
}

var columnWidths = []float64{36, 18, 14, 18, 5, 10, 30, 16, 16, 12, 16, 18, 8, 18}

// XLSXWriter implementa contacts.SpreadsheetWriter.
type XLSXWriter struct{}

// NewXLSXWriter construye el exportador.
func NewXLSXWriter() *XLSXWriter { return &XLSXWriter{} }

// WriteContacts escribe una hoja con una fila por contacto.
func (XLSXWriter) WriteContacts(w io.Writer, list []*entity.Contact) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("xlsx: borrar hoja por defecto: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo de encabezado: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &ContactsHeader); err != nil {
		return fmt.Errorf("xlsx: encabezado: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(ContactsHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: estilo de encabezado: %w", err)
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}

	for i, c := range list {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := contactRow(c)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("xlsx: fijar encabezado: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

func contactRow(c *entity.Contact) []any {
	types := make([]string, len(c.Types))
	for i, t := range c.Types {
		types[i] = string(t)
	}
	var credit any = ""
	if c.CreditLimit.Valid {
		credit, _ = c.CreditLimit.Decimal.Float64()
	}
	city := ""
	if c.BillingAddress != nil {
		city = c.BillingAddress.City
	}
	active := "No"
	if c.IsActive {
		active = "Sí"
	}
	return []any{
		c.Name,
		strings.Join(types, ", "),
		string(c.IDType),
		c.IDNumber,
		c.DV,
		string(c.PersonType),
		c.Email,
		c.PhonePrimary,
		c.Mobile,
		c.PaymentTermsDays,
		credit,
		city,
		active,
		c.CreatedAt.Format("2006-01-02 15:04"),
	}
}
