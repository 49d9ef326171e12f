package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Post("/change-secret", handler.AuthRequired, handler.ChangeSecret)

	user := api.Group("/users/:userId", handler.AuthRequired, handler.SameUser)
	user.Get("/dashboard", handler.Dashboard)

	records := user.Group("/records")
	records.Get("", handler.ListRecords)
	records.Delete("/id/:id", handler.DeleteRecordByID)
	records.Get("/:date", handler.GetRecord)
	records.Put("/:date", handler.UpsertRecord)
	records.Delete("/:date", handler.ResetRecord)

	categories := user.Group("/categories/:category")
	categories.Get("", handler.ListCategory)
	categories.Post("/:date", handler.RecordCategory)
	categories.Delete("/:date", handler.ResetCategory)

	app.Use(handler.NotFound)
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, codeNotFound, "route not found")
}
