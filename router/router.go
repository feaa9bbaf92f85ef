package router

import (
	"github.com/gin-gonic/gin"
	"github.com/thiru0454/time-sub001/controllers"
	"github.com/thiru0454/time-sub001/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	timetableCtrl := controllers.NewTimetableController(db)
	exportCtrl := controllers.NewExportController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	rescheduleCtrl := controllers.NewRescheduleController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      TIMETABLES
	// ----------------------------------------------------------------
	// Timetable datang dari generator eksternal, layer ini hanya menerima
	r.POST("/timetables", timetableCtrl.CreateTimetable)
	r.GET("/timetables", timetableCtrl.GetAllTimetables)
	r.GET("/timetables/:timetable_id", timetableCtrl.GetTimetableByID)

	// Mutasi assignment (mengisi stream "assignments")
	r.POST("/timetables/:timetable_id/assignments", timetableCtrl.CreateAssignment)
	r.PATCH("/assignments/:assignment_id", timetableCtrl.UpdateAssignment)
	r.DELETE("/assignments/:assignment_id", timetableCtrl.DeleteAssignment)

	// ----------------------------------------------------------------
	//                      EXPORT
	// ----------------------------------------------------------------
	r.GET("/timetables/:timetable_id/export/csv", exportCtrl.ExportCSV)
	r.GET("/timetables/:timetable_id/export/pdf", exportCtrl.ExportPDF)
	r.GET("/timetables/:timetable_id/print", exportCtrl.PrintTimetable)
	r.GET("/timetables/:timetable_id/mailto", exportCtrl.MailtoTimetable)

	// ----------------------------------------------------------------
	//                      NOTIFICATIONS
	// ----------------------------------------------------------------
	r.GET("/notifications", notificationCtrl.GetNotifications)
	r.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkRead)
	r.POST("/notifications/read-all", notificationCtrl.MarkAllRead)

	// Rate limiter ketat untuk write path notifikasi
	writes := r.Group("/")
	writes.Use(middlewares.NewStrictRateLimiter())
	{
		writes.POST("/notifications", notificationCtrl.CreateNotification)
	}

	// ----------------------------------------------------------------
	//                      RESCHEDULE REQUESTS
	// ----------------------------------------------------------------
	r.POST("/reschedule-requests", rescheduleCtrl.CreateRescheduleRequest)
	r.GET("/reschedule-requests", rescheduleCtrl.GetRescheduleRequests)
	r.PATCH("/reschedule-requests/:req_id", rescheduleCtrl.UpdateRescheduleStatus)

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketSessionMiddleware())
	{
		wsGroup.GET("", controllers.DashboardWSHandler)
	}

	return r
}
