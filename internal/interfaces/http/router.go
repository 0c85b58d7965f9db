package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/contacts-api/internal/application/auth"
	"github.com/jhoicas/contacts-api/internal/application/contacts"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ContactUC    *contacts.ContactUseCase
	AttachmentUC *contacts.AttachmentUseCase
	ExportUC     *contacts.ExportUseCase
	Modules      moduleChecker
	JWTSecret    string
}

// Conjuntos de roles por operación.
var (
	rolesRead    = []string{entity.RoleOwner, entity.RoleAdmin, entity.RoleSeller, entity.RoleAccountant, entity.RoleViewer}
	rolesWrite   = []string{entity.RoleOwner, entity.RoleAdmin, entity.RoleSeller}
	rolesManage  = []string{entity.RoleOwner, entity.RoleAdmin}
	rolesReports = []string{entity.RoleOwner, entity.RoleAdmin, entity.RoleAccountant, entity.RoleViewer}
	rolesExport  = []string{entity.RoleOwner, entity.RoleAdmin, entity.RoleAccountant}
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Contactos (Bearer Token + módulo CRM activo)
	guards := []fiber.Handler{AuthMiddleware(deps.JWTSecret)}
	if deps.Modules != nil {
		guards = append(guards, RequireModule(entity.ModuleCRM, deps.Modules))
	}
	contactsGroup := api.Group("/contacts", guards...)
	contactHandler := NewContactHandler(deps.ContactUC, deps.ExportUC)
	attachmentHandler := NewAttachmentHandler(deps.AttachmentUC)

	// Rutas estáticas antes de /:id
	contactsGroup.Get("/", RequireRole(rolesRead...), contactHandler.List)
	contactsGroup.Post("/", RequireRole(rolesWrite...), contactHandler.Create)
	contactsGroup.Get("/stats/summary", RequireRole(rolesReports...), contactHandler.Stats)
	contactsGroup.Get("/clients/for-invoices", RequireRole(rolesRead...), contactHandler.ClientsForInvoices)
	contactsGroup.Get("/providers/for-bills", RequireRole(rolesRead...), contactHandler.ProvidersForBills)
	contactsGroup.Get("/export.xlsx", RequireRole(rolesExport...), contactHandler.ExportXLSX)
	contactsGroup.Post("/bulk/activate", RequireRole(rolesManage...), contactHandler.BulkActivate)
	contactsGroup.Post("/bulk/deactivate", RequireRole(rolesManage...), contactHandler.BulkDeactivate)
	contactsGroup.Delete("/attachments/:attachment_id", RequireRole(rolesManage...), attachmentHandler.Delete)

	contactsGroup.Get("/:id", RequireRole(rolesRead...), contactHandler.Get)
	contactsGroup.Put("/:id", RequireRole(rolesWrite...), contactHandler.Update)
	contactsGroup.Delete("/:id", RequireRole(rolesManage...), contactHandler.Delete)
	contactsGroup.Post("/:id/restore", RequireRole(rolesManage...), contactHandler.Restore)
	contactsGroup.Get("/:id/sheet.pdf", RequireRole(rolesRead...), contactHandler.ContactSheet)
	contactsGroup.Get("/:id/attachments", RequireRole(rolesRead...), attachmentHandler.List)
	contactsGroup.Post("/:id/attachments", RequireRole(rolesWrite...), attachmentHandler.Create)
}
