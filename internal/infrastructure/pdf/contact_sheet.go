// Package pdf genera la ficha imprimible de un contacto con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + Tipo       │  Documento + Estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  IDENTIFICACIÓN FISCAL: tipo / número / DV / responsabilidades│
//	│  CONTACTO: email / teléfonos                                 │
//	│  COMERCIAL: plazo / cupo / vendedor                          │
//	│  DIRECCIONES: facturación / envío                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA ADJUNTOS: Archivo | Tipo | Tamaño | Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS + QR con el identificador del contacto                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/contacts-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ContactSheetGenerator implementa contacts.SheetRenderer usando Maroto v2.
type ContactSheetGenerator struct{}

// NewContactSheetGenerator construye el generador.
func NewContactSheetGenerator() *ContactSheetGenerator { return &ContactSheetGenerator{} }

// RenderContactSheet genera la ficha y devuelve sus bytes.
func (g *ContactSheetGenerator) RenderContactSheet(c *entity.Contact, attachments []*entity.ContactAttachment) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de contacto", true).
		WithAuthor(c.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(fiscalRow(c))
	m.AddRows(contactRow(c))
	m.AddRows(commercialRow(c))
	m.AddRows(addressRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("ADJUNTOS"))
	if len(attachments) == 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Sin adjuntos", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		m.AddRows(attachmentRows(attachments)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(c)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(c *entity.Contact) core.Row {
	status, statusColor := "ACTIVO", colorPrimary
	switch {
	case c.IsDeleted():
		status, statusColor = "ELIMINADO", colorDanger
	case !c.IsActive:
		status, statusColor = "INACTIVO", colorGray
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(typeLabel(c), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(documentLabel(c), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 9, Color: statusColor,
			}),
		),
	)
}

func fiscalRow(c *entity.Contact) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("IDENTIFICACIÓN FISCAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Tipo: %s   |   Persona: %s   |   Responsabilidades: %s",
				nonEmpty(string(c.IDType), "—"),
				nonEmpty(string(c.PersonType), "—"),
				nonEmpty(strings.Join(c.FiscalResponsibilities, ", "), "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func contactRow(c *entity.Contact) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTACTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   Tel 2: %s   |   Móvil: %s",
				nonEmpty(c.Email, "—"),
				nonEmpty(c.PhonePrimary, "—"),
				nonEmpty(c.PhoneSecondary, "—"),
				nonEmpty(c.Mobile, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func commercialRow(c *entity.Contact) core.Row {
	credit := "—"
	if c.CreditLimit.Valid {
		credit = "$" + formatMoney(c.CreditLimit.Decimal.StringFixed(0))
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONDICIONES COMERCIALES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Plazo: %d días   |   Cupo: %s   |   Vendedor: %s",
				c.PaymentTermsDays, credit, nonEmpty(c.SellerID, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func addressRow(c *entity.Contact) core.Row {
	block := func(title string, a *entity.Address) core.Col {
		return col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(formatAddress(a), props.Text{Size: 8, Top: 7, Color: colorGray}),
		)
	}
	return row.New(16).Add(
		block("DIRECCIÓN DE FACTURACIÓN", c.BillingAddress),
		block("DIRECCIÓN DE ENVÍO", c.ShippingAddress),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Archivo", 5, align.Left),
		h("Tipo", 3, align.Left),
		h("Tamaño", 2, align.Right),
		h("Fecha", 2, align.Center),
	)
}

// attachmentRows: una fila por adjunto.
func attachmentRows(list []*entity.ContactAttachment) []core.Row {
	result := make([]core.Row, 0, len(list))
	for _, a := range list {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(a.FileName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(a.ContentType, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatSize(a.FileSize), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(a.CreatedAt.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func footerRows(c *entity.Contact) []core.Row {
	notes := nonEmpty(strings.TrimSpace(c.Notes), "Sin notas")
	return []core.Row{
		row.New(40).Add(
			col.New(8).Add(
				text.New("NOTAS", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(notes, props.Text{Size: 8, Top: 7, Color: colorGray}),
			),
			col.New(4).Add(code.NewQr(c.ID, props.Rect{
				Percent: 80,
				Center:  true,
			})),
		),
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Creado: %s   |   Actualizado: %s",
				c.CreatedAt.Format("02/01/2006 15:04"), c.UpdatedAt.Format("02/01/2006 15:04"),
			), props.Text{Size: 6.5, Color: colorGray, Top: 1}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func typeLabel(c *entity.Contact) string {
	switch {
	case c.IsClient() && c.IsProvider():
		return "Cliente y proveedor"
	case c.IsProvider():
		return "Proveedor"
	}
	return "Cliente"
}

func documentLabel(c *entity.Contact) string {
	if c.IDNumber == "" {
		return "Sin documento"
	}
	doc := c.IDNumber
	if c.DV != "" {
		doc += "-" + c.DV
	}
	if c.IDType != "" {
		doc = string(c.IDType) + " " + doc
	}
	return doc
}

func formatAddress(a *entity.Address) string {
	if a == nil || a.IsZero() {
		return "—"
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.Street2, a.City, a.State, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	n := len(s)
	buf := make([]byte, 0, n+n/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return strconv.FormatFloat(float64(bytes)/(1<<20), 'f', 1, 64) + " MB"
	case bytes >= 1<<10:
		return strconv.FormatFloat(float64(bytes)/(1<<10), 'f', 1, 64) + " KB"
	}
	return strconv.FormatInt(bytes, 10) + " B"
}
