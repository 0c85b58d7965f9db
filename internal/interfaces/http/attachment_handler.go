package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/contacts-api/internal/application/contacts"
	"github.com/jhoicas/contacts-api/internal/application/dto"
)

// AttachmentHandler metadatos de adjuntos de contactos.
type AttachmentHandler struct {
	uc *contacts.AttachmentUseCase
}

// NewAttachmentHandler construye el handler.
func NewAttachmentHandler(uc *contacts.AttachmentUseCase) *AttachmentHandler {
	return &AttachmentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar adjunto
// @Tags         attachments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "Contact ID"
// @Param        body  body  dto.CreateAttachmentRequest  true  "Metadatos del archivo"
// @Success      201  {object}  dto.AttachmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id}/attachments [post]
func (h *AttachmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAttachmentRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/contacts/:id/attachments
func (h *AttachmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar adjunto
// @Tags         attachments
// @Security     BearerAuth
// @Param        attachment_id  path  string  true  "Attachment ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/attachments/{attachment_id} [delete]
func (h *AttachmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("attachment_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
