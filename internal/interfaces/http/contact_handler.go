package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/contacts-api/internal/application/contacts"
	"github.com/jhoicas/contacts-api/internal/application/dto"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ContactHandler expone el ciclo de vida de contactos.
type ContactHandler struct {
	uc     *contacts.ContactUseCase
	export *contacts.ExportUseCase
}

// NewContactHandler construye el handler. export puede ser nil (rutas de exportación responden 501).
func NewContactHandler(uc *contacts.ContactUseCase, export *contacts.ExportUseCase) *ContactHandler {
	return &ContactHandler{uc: uc, export: export}
}

// Create godoc
// @Summary      Crear contacto
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateContactRequest  true  "Contacto"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContactRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar contactos
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        search     query  string  false  "nombre, email o documento"
// @Param        type       query  string  false  "client | provider"
// @Param        is_active  query  bool    false  "estado"
// @Param        seller_id  query  string  false  "vendedor"
// @Param        limit      query  int     false  "máximo 500"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ContactListResponse
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	var in dto.ContactListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener contacto con sus adjuntos
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id               path   string  true   "Contact ID"
// @Param        include_deleted  query  bool    false  "incluir eliminados"
// @Success      200  {object}  dto.ContactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [get]
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	includeDeleted := c.QueryBool("include_deleted", false)
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"), includeDeleted)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar contacto (parcial)
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "Contact ID"
// @Param        body  body  dto.UpdateContactRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.ContactResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [put]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateContactRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar contacto (borrado lógico)
// @Tags         contacts
// @Security     BearerAuth
// @Param        id  path  string  true  "Contact ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar contacto eliminado
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true   "Contact ID"
// @Param        body  body  dto.RestoreContactRequest  false  "Motivo"
// @Success      200  {object}  dto.ContactResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id}/restore [post]
func (h *ContactHandler) Restore(c *fiber.Ctx) error {
	var in dto.RestoreContactRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.Restore(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas de contactos del tenant
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ContactStatsResponse
// @Router       /api/contacts/stats/summary [get]
func (h *ContactHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ClientsForInvoices godoc
// @Summary      Clientes activos para facturación
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "búsqueda"
// @Success      200  {array}  dto.ContactSummary
// @Router       /api/contacts/clients/for-invoices [get]
func (h *ContactHandler) ClientsForInvoices(c *fiber.Ctx) error {
	out, err := h.uc.ListClientsForInvoices(c.UserContext(), GetCompanyID(c), c.Query("search"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProvidersForBills godoc
// @Summary      Proveedores activos para compras
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "búsqueda"
// @Success      200  {array}  dto.ContactSummary
// @Router       /api/contacts/providers/for-bills [get]
func (h *ContactHandler) ProvidersForBills(c *fiber.Ctx) error {
	out, err := h.uc.ListProvidersForBills(c.UserContext(), GetCompanyID(c), c.Query("search"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkActivate POST /api/contacts/bulk/activate
func (h *ContactHandler) BulkActivate(c *fiber.Ctx) error {
	return h.bulk(c, true)
}

// BulkDeactivate POST /api/contacts/bulk/deactivate
func (h *ContactHandler) BulkDeactivate(c *fiber.Ctx) error {
	return h.bulk(c, false)
}

func (h *ContactHandler) bulk(c *fiber.Ctx, active bool) error {
	var in dto.BulkContactsRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.uc.BulkSetActive(c.UserContext(), GetCompanyID(c), GetUserID(c), in.ContactIDs, active))
}

// ExportXLSX godoc
// @Summary      Exportar contactos a Excel
// @Tags         contacts
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}  file
// @Router       /api/contacts/export.xlsx [get]
func (h *ContactHandler) ExportXLSX(c *fiber.Ctx) error {
	if h.export == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "exportación no configurada"})
	}
	var in dto.ContactListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	data, err := h.export.ExportXLSX(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="contactos.xlsx"`)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(data)))
	return c.Send(data)
}

// ContactSheet godoc
// @Summary      Ficha PDF del contacto
// @Tags         contacts
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "Contact ID"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id}/sheet.pdf [get]
func (h *ContactHandler) ContactSheet(c *fiber.Ctx) error {
	if h.export == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "exportación no configurada"})
	}
	data, filename, err := h.export.ContactSheetPDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimePDF)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}
