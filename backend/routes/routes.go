package routes

import (
	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/presenters"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// Deps is what the routes need. A nil Limiter disables rate limiting.
type Deps struct {
	Presenters *presenters.Presenters
	Logger     *utils.Logger
	Cfg        *config.Config
	// Limiter may be nil.
	Limiter *middleware.RateLimiter
}

// SetupRoutes registers every API route under /api.
func SetupRoutes(app *fiber.App, d Deps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return utils.OK(c, fiber.Map{"status": "ok"})
	})

	// Middleware
	authMiddleware := middleware.AuthMiddleware(d.Cfg.JWTSecret)
	studentOnly := middleware.RoleMiddleware(string(models.RoleStudent))
	instructorOnly := middleware.RoleMiddleware(string(models.RoleInstructor))
	limit := func(name string) fiber.Handler {
		return d.Limiter.Limit(name, d.Cfg.RateLimit, d.Cfg.RateWindow)
	}

	// Auth routes
	authController := controllers.NewAuthController(d.Presenters, d.Logger)
	api.Post("/auth/login", limit("login"), authController.Login)

	// Catalog routes
	coursesController := controllers.NewCoursesController(d.Presenters, d.Logger)
	api.Get("/courses", coursesController.ListCourses)
	api.Get("/courses/filters", coursesController.GetFilters)
	api.Get("/courses/:slug", coursesController.GetCourseDetails)
	api.Get("/instructors/:id", coursesController.GetInstructor)

	// Overview routes
	overviewController := controllers.NewOverviewController(d.Presenters, d.Logger)
	api.Get("/faq", overviewController.GetFAQ)
	api.Get("/about", overviewController.GetAbout)
	api.Post("/contact", limit("contact"), overviewController.Contact)

	// Community routes
	communityController := controllers.NewCommunityController(d.Presenters, d.Logger)
	community := api.Group("/community/posts")
	community.Get("/", communityController.GetFeed)
	community.Get("/:id", communityController.GetPost)
	community.Post("/", authMiddleware, limit("community"), communityController.CreatePost)
	community.Post("/:id/like", authMiddleware, limit("community"), communityController.LikePost)
	community.Post("/:id/comments", authMiddleware, limit("community"), communityController.AddComment)

	// Student routes
	userController := controllers.NewUserController(d.Presenters, d.Logger)
	progressController := controllers.NewProgressController(d.Presenters, d.Logger)
	api.Get("/leaderboard", authMiddleware, studentOnly, progressController.GetLeaderboard)

	me := api.Group("/me", authMiddleware, studentOnly)
	me.Get("/dashboard", userController.GetDashboard)
	me.Get("/courses", userController.GetMyCourses)
	me.Get("/wishlist", userController.GetWishlist)
	me.Post("/wishlist/:courseId", limit("wishlist"), userController.AddToWishlist)
	me.Delete("/wishlist/:courseId", limit("wishlist"), userController.RemoveFromWishlist)
	me.Get("/settings", userController.GetSettings)
	me.Put("/settings", limit("settings"), userController.UpdateSettings)
	me.Get("/achievements", progressController.GetAchievements)
	me.Get("/certificates", progressController.GetCertificates)
	me.Get("/certificates/:id", progressController.GetCertificate)

	// Instructor routes; /instructors/:id above is matched before this group's guards
	instructorController := controllers.NewInstructorController(d.Presenters, d.Logger)
	instructor := api.Group("/instructor", authMiddleware, instructorOnly)
	instructor.Get("/dashboard", instructorController.GetDashboard)
	instructor.Get("/analytics", instructorController.GetAnalytics)
	instructor.Get("/reviews", instructorController.GetReviews)
	instructor.Post("/reviews/:id/reply", limit("reviews"), instructorController.ReplyToReview)
	instructor.Post("/withdrawals", limit("withdrawals"), instructorController.RequestWithdrawal)
}
