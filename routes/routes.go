package routes

import (
	"platewise-backend/config"
	"platewise-backend/controllers"
	"platewise-backend/middlewares"
	"platewise-backend/services"
	"platewise-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	log := utils.Logger()

	api := services.NewFoodAPIService(config.FoodAPIBaseURL())
	users := services.NewGormUserRepository(config.DB)

	foodCtl := controllers.NewFoodController(api, log)
	histCtl := controllers.NewHistoryController(services.NewHistoryService(config.KV, log))
	cmpCtl := controllers.NewComparisonController(services.NewComparisonService(config.KV, log))
	regCtl := controllers.NewRegistrationController(services.NewRegistrationService(config.KV, users, log))
	liveCtl := controllers.NewLiveSearchController(services.NewLiveSearchHub(api, log))
	authCtl := controllers.NewAuthController(users)

	r.POST("/session", controllers.NewSession)

	foods := r.Group("/foods")
	{
		foods.GET("/search", foodCtl.SearchFoods)
		foods.GET("/compare", foodCtl.CompareFoods)
		foods.POST("/image", middlewares.AuthMiddleware(), controllers.UploadFoodImage)
	}

	history := r.Group("/history")
	{
		history.GET("/:session", histCtl.GetHistory)
		history.POST("/:session", histCtl.AddToHistory)
	}

	comparison := r.Group("/comparison")
	{
		comparison.GET("/:session", cmpCtl.GetSet)
		comparison.POST("/:session/items", cmpCtl.AddItem)
		comparison.DELETE("/:session/items/:id", cmpCtl.RemoveItem)
		comparison.DELETE("/:session", cmpCtl.ClearSet)
	}

	registration := r.Group("/registration")
	{
		registration.GET("/:session", regCtl.GetDraft)
		registration.POST("/:session/step", regCtl.UpdateFields)
		registration.POST("/:session/next", regCtl.Next)
		registration.POST("/:session/back", regCtl.Back)
		registration.POST("/:session/complete", regCtl.Complete)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
	}

	r.GET("/ws/search", liveCtl.SearchWS)

	return r
}
