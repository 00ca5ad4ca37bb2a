package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"formloom/cmd/fx/account_fx"
	"formloom/cmd/fx/admin_fx"
	"formloom/cmd/fx/billing_fx"
	"formloom/cmd/fx/coupon_fx"
	"formloom/cmd/fx/db_fx"
	"formloom/cmd/fx/payment_fx"
	"formloom/cmd/fx/question_fx"
	"formloom/cmd/fx/redis_fx"
	"formloom/cmd/fx/response_fx"
	"formloom/cmd/fx/survey_fx"
	"formloom/internal/api/controllers"
	"formloom/internal/questions"
	"formloom/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		redis_fx.Module,
		account_fx.Module,
		survey_fx.Module,
		question_fx.Module,
		response_fx.Module,
		billing_fx.Module,
		payment_fx.Module,
		coupon_fx.Module,
		admin_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	surveyController *controllers.SurveyController,
	questionController *controllers.QuestionController,
	responseController *controllers.ResponseController,
	billingController *controllers.BillingController,
	paymentController *controllers.PaymentController,
	couponController *controllers.CouponController,
	adminController *controllers.AdminController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r,
		accountController, surveyController, questionController, responseController,
		billingController, paymentController, couponController, adminController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	surveyController *controllers.SurveyController,
	questionController *controllers.QuestionController,
	responseController *controllers.ResponseController,
	billingController *controllers.BillingController,
	paymentController *controllers.PaymentController,
	couponController *controllers.CouponController,
	adminController *controllers.AdminController,
) {
	auth := r.Group("/auth")
	auth.POST("/signup", accountController.SignUp)
	auth.POST("/login", accountController.Login)
	auth.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)
	auth.PATCH("/me", middleware.JWTAuthMiddleware(), accountController.UpdateProfile)

	r.GET("/question-types", middleware.JWTAuthMiddleware(), questionController.ListQuestionTypes)

	surveys := r.Group("/surveys", middleware.JWTAuthMiddleware())
	surveys.POST("", middleware.RateLimitSurveyCreate(), surveyController.CreateSurvey)
	surveys.GET("", surveyController.ListSurveys)
	surveys.GET("/:surveyId", surveyController.GetSurvey)
	surveys.PATCH("/:surveyId", surveyController.SaveSurvey)
	surveys.PATCH("/:surveyId/autosave", surveyController.AutoSaveSurvey)
	surveys.POST("/:surveyId/publish", surveyController.PublishSurvey)
	surveys.POST("/:surveyId/unpublish", surveyController.UnpublishSurvey)
	surveys.POST("/:surveyId/clone", surveyController.CloneSurvey)
	surveys.DELETE("/:surveyId", surveyController.DeleteSurvey)

	surveys.POST("/:surveyId/questions", questionController.AddQuestion)
	surveys.PUT("/:surveyId/questions/reorder", questionController.ReorderQuestions)
	surveys.PATCH("/:surveyId/questions/:questionId", questionController.UpdateQuestion)
	surveys.POST("/:surveyId/questions/:questionId/duplicate", questionController.DuplicateQuestion)
	surveys.DELETE("/:surveyId/questions/:questionId", questionController.DeleteQuestion)

	surveys.GET("/:surveyId/responses", responseController.ListResponses)
	surveys.GET("/:surveyId/summary", responseController.Summary)

	// Respondent-facing, no auth.
	public := r.Group("/s")
	public.GET("/:token", responseController.GetPublicSurvey)
	public.POST("/:token/submit", middleware.RateLimitSubmit(), responseController.Submit)

	billing := r.Group("/billing")
	billing.GET("/plans", billingController.ListPlans)
	billing.GET("/subscription", middleware.JWTAuthMiddleware(), billingController.CurrentSubscription)
	billing.GET("/subscription/history", middleware.JWTAuthMiddleware(), billingController.SubscriptionHistory)
	billing.POST("/subscription/cancel", middleware.JWTAuthMiddleware(), billingController.CancelSubscription)
	billing.GET("/analytics", middleware.JWTAuthMiddleware(), billingController.Analytics)

	payments := r.Group("/payments")
	payments.POST("/webhook", paymentController.Webhook)
	payments.POST("/checkout", middleware.JWTAuthMiddleware(), paymentController.CreateCheckout)
	payments.POST("/checkout/cancel", middleware.JWTAuthMiddleware(), paymentController.CancelCheckout)
	payments.POST("/coupon", middleware.JWTAuthMiddleware(), paymentController.ApplyCoupon)

	admin := r.Group("/admin",
		middleware.JWTAuthMiddleware(),
		middleware.RoleMiddleware(questions.RoleAdmin, questions.RoleSuperAdmin))
	admin.GET("/users", adminController.ListUsers)
	admin.PATCH("/users/:userId", adminController.UpdateUser)
	admin.DELETE("/users/:userId", adminController.DeleteUser)
	admin.GET("/dashboard", adminController.Dashboard)
	admin.GET("/coupons", couponController.ListCoupons)
	admin.POST("/coupons", couponController.CreateCoupon)
	admin.PATCH("/coupons/:couponId", couponController.UpdateCoupon)
	admin.DELETE("/coupons/:couponId", couponController.DeleteCoupon)
}
