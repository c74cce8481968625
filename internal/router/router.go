package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/brokerdesk/backend/config"
	"github.com/brokerdesk/backend/internal/handler"
	"github.com/brokerdesk/backend/internal/service"
)

func Setup(
	cfg *config.Config,
	authService *service.AuthService,
	viewHandler *handler.ViewHandler,
	assessmentHandler *handler.AssessmentHandler,
	inquiryHandler *handler.InquiryHandler,
	authHandler *handler.AuthHandler,
	planHandler *handler.PlanHandler,
	caseHandler *handler.CaseHandler,
	questionHandler *handler.QuestionHandler,
	customerHandler *handler.CustomerHandler,
	contractHandler *handler.ContractHandler,
	suggestionHandler *handler.SuggestionHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		// 公开接口：落地页与评估问卷
		api.GET("/view", handler.OptionalAuth(authService), viewHandler.Resolve)
		api.GET("/plans", viewHandler.Plans)
		api.GET("/cases", viewHandler.Cases)
		api.GET("/testimonials", viewHandler.Testimonials)
		api.GET("/knowledge", viewHandler.Knowledge)
		api.POST("/inquiries", inquiryHandler.Submit)

		sessions := api.Group("/assessment/sessions")
		{
			sessions.POST("", assessmentHandler.Start)
			sessions.GET("/:id", assessmentHandler.Get)
			sessions.PUT("/:id/input", assessmentHandler.SetInput)
			sessions.POST("/:id/toggle", assessmentHandler.ToggleOption)
			sessions.POST("/:id/advance", assessmentHandler.Advance)
			sessions.DELETE("/:id", assessmentHandler.Abandon)
		}

		// 运营后台，全部要求登录
		admin := api.Group("/admin", handler.AuthMiddleware(authService))
		{
			inquiries := admin.Group("/inquiries")
			{
				inquiries.GET("", inquiryHandler.List)
				inquiries.GET("/export", inquiryHandler.Export)
				inquiries.GET("/:id", inquiryHandler.Get)
				inquiries.PUT("/:id/status", inquiryHandler.UpdateStatus)
				inquiries.POST("/:id/transfer", inquiryHandler.Transfer)
				inquiries.GET("/:id/report", inquiryHandler.Report)
			}

			plans := admin.Group("/plans")
			{
				plans.GET("", planHandler.List)
				plans.POST("", planHandler.Upsert)
				plans.DELETE("/:id", planHandler.Delete)
				plans.POST("/:id/set-latest", planHandler.SetLatest)
			}

			cases := admin.Group("/cases")
			{
				cases.GET("", caseHandler.List)
				cases.POST("", caseHandler.Upsert)
				cases.DELETE("/:id", caseHandler.Delete)
				cases.PUT("/:id/archive", caseHandler.SetArchived)
			}

			questions := admin.Group("/questions")
			{
				questions.GET("", questionHandler.List)
				questions.POST("", questionHandler.Upsert)
				questions.DELETE("/:id", questionHandler.Delete)
			}

			customers := admin.Group("/customers")
			{
				customers.GET("", customerHandler.List)
				customers.POST("", customerHandler.Upsert)
				customers.GET("/:id", customerHandler.Get)
				customers.PUT("/:id/status", customerHandler.UpdateStatus)
				customers.GET("/:id/interactions", customerHandler.Interactions)
				customers.POST("/:id/interactions", customerHandler.LogInteraction)
				customers.GET("/:id/relationships", customerHandler.Relationships)
				customers.POST("/:id/relationships", customerHandler.AddRelationship)
				customers.DELETE("/:id/relationships/:relId", customerHandler.DeleteRelationship)
			}
			admin.GET("/interactions/recent", customerHandler.RecentInteractions)

			contracts := admin.Group("/contracts")
			{
				contracts.GET("", contractHandler.List)
				contracts.POST("", contractHandler.Upload)
				contracts.GET("/:id/download", contractHandler.Download)
				contracts.PUT("/:id/link", contractHandler.LinkCustomer)
				contracts.PUT("/:id/status", contractHandler.UpdateStatus)
				contracts.DELETE("/:id", contractHandler.Delete)
			}

			admin.GET("/suggestions", suggestionHandler.List)
		}
	}

	return r
}
