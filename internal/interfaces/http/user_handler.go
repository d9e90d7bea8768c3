package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-builder/internal/application/dto"
)

// Me devuelve el usuario de la sesión.
//
// @Summary      Usuario autenticado
// @Description  Identidad extraída del Bearer Token. Sin token válido responde 401.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/user [get]
func Me(c *fiber.Ctx) error {
	return c.JSON(dto.UserResponse{UserID: GetUserID(c)})
}
