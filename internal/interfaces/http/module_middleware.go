package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// moduleChecker lo implementa *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// RequireModule deja pasar solo a empresas con el módulo contratado y vigente.
// Va después de AuthMiddleware: 401 sin empresa en el token, 403 módulo inactivo,
// 503 si no se pudo consultar.
func RequireModule(moduleName string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return abort(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "company_id no encontrado en el token")
		}
		active, err := checker.HasActiveModule(c.UserContext(), companyID, moduleName)
		switch {
		case err != nil:
			log.Error().Err(err).Str("tenant_id", companyID).Str("module", moduleName).Msg("no se pudo verificar el módulo")
			return abort(c, fiber.StatusServiceUnavailable, "MODULE_CHECK_FAILED", "no se pudo verificar el módulo, intente más tarde")
		case !active:
			return abort(c, fiber.StatusForbidden, "MODULE_DISABLED", "el módulo '"+moduleName+"' no está activo para esta empresa")
		}
		return c.Next()
	}
}
