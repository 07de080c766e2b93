package handler

import (
	"github.com/gofiber/fiber/v2"

	"docflow/internal/http/middleware"
)

// pagination is the page block attached to list responses.
type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// successPayload is the standard success envelope.
type successPayload struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(successPayload{Success: true, Data: data})
}

func respondMessage(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(successPayload{Success: true, Data: data, Message: message})
}

func respondPage(c *fiber.Ctx, data any, page, limit, total int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return c.Status(fiber.StatusOK).JSON(successPayload{
		Success: true,
		Data:    data,
		Pagination: &pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// tenantID returns the organization scope set by the auth middleware.
func tenantID(c *fiber.Ctx) string {
	if v, ok := c.Locals(middleware.OrganizationIDLocalKey).(string); ok {
		return v
	}
	return ""
}

func userID(c *fiber.Ctx) string {
	if v, ok := c.Locals(middleware.UserIDLocalKey).(string); ok {
		return v
	}
	return ""
}

func userRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(middleware.RoleLocalKey).(string); ok {
		return v
	}
	return ""
}
