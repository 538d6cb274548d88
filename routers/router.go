package routers

import (
	"techstorm/config"
	"techstorm/middleware"
	"techstorm/routers/adminRoutes"
	"techstorm/routers/authRoutes"
	"techstorm/routers/contentRoutes"
	"techstorm/routers/courseRoutes"
	"techstorm/routers/eventRoutes"
	"techstorm/routers/galleryRoutes"
	"techstorm/routers/invitationRoutes"
	"techstorm/routers/meetingRoutes"
	"techstorm/routers/publicRoutes"
	"techstorm/routers/reportRoutes"
	"techstorm/routers/sponsorRoutes"
	"techstorm/routers/studentRoutes"
	"techstorm/routers/testimonialRoutes"
	"techstorm/routers/uploadRoutes"
	"techstorm/routers/usersRoutes"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the fiber app with the shared middleware stack and every route group
func NewApp(requestLog bool) *fiber.App {
	cfg := config.AppConfig

	bodyLimit := fiber.DefaultBodyLimit
	if cfg.UploadMaxBytes > bodyLimit {
		bodyLimit = cfg.UploadMaxBytes + 1<<20
	}

	app := fiber.New(fiber.Config{
		AppName:      "TechStorm API",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    bodyLimit,
		ProxyHeader:  fiber.HeaderXForwardedFor,

		// forwarded headers count only when the peer is a configured proxy
		EnableTrustedProxyCheck: true,
		TrustedProxies:          cfg.TrustedProxies,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(requestid.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	if requestLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}

	// Serve locally stored uploads
	app.Static("/uploads", cfg.UploadDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", fiber.Map{"service": "techstorm-api"})
	})

	authRoutes.SetupAuthRoutes(app)
	usersRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	contentRoutes.SetupContentRoutes(app)
	eventRoutes.SetupEventRoutes(app)
	galleryRoutes.SetupGalleryRoutes(app)
	meetingRoutes.SetupMeetingRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	publicRoutes.SetupPublicRoutes(app)
	sponsorRoutes.SetupSponsorRoutes(app)
	testimonialRoutes.SetupTestimonialRoutes(app)
	invitationRoutes.SetupInvitationRoutes(app)
	studentRoutes.SetupStudentRoutes(app)
	reportRoutes.SetupReportRoutes(app)
	uploadRoutes.SetupUploadRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Route not found!", nil)
	})

	return app
}
