package main

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"attendee.link/configs"
	"attendee.link/configs/configsdatabase"
	"attendee.link/configs/configslog"
	"attendee.link/routes"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configs.LoadEnv()
	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	app := fiber.New(fiber.Config{
		AppName:   "attendee.link",
		BodyLimit: 12 * 1024 * 1024, // leave headroom above the 10 MB per-file cap
	})

	routes.SetupRoutes(app)

	port := configs.GetEnv("PORT", "3000")
	configslog.SLog.Infof("listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		configslog.Log.Fatal("server stopped", zap.Error(err))
	}
}
