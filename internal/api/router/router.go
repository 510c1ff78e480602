package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/reminder-notifier/internal/api/handlers/reminder"
	"github.com/aliskhannn/reminder-notifier/internal/middlewares"
)

func New(handler *reminder.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(middlewares.RequestID())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/users/:owner")
	{
		api.POST("/reminders", handler.Create)
		api.POST("/reminders/dated", handler.CreateDated)
		api.POST("/reminders/weekly", handler.CreateWeekly)
		api.POST("/reminders/monthly", handler.CreateMonthly)
		api.GET("/reminders", handler.List)
		api.DELETE("/reminders/:ref", handler.Delete)
		api.PATCH("/reminders/:id", handler.Reschedule)
		api.GET("/timezone", handler.GetTimezone)
		api.PUT("/timezone", handler.SetTimezone)
	}

	return e
}
