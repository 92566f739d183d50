package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/container"
	"github.com/joshua-takyi/resort/internal/handlers"
	"github.com/joshua-takyi/resort/internal/middleware"
	"github.com/joshua-takyi/resort/internal/models"
)

const (
	frontDesk  = models.RoleFrontDesk
	manager    = models.RoleManager
	restaurant = models.RoleRestaurant
	bar        = models.RoleBar
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(ct *container.Container) *gin.Engine {
	if ct.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	secure := ct.Config.IsProduction()

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     ct.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", handlers.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", handlers.SessionHeader},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(ct.Logger))
	r.Use(middleware.ErrorHandler(ct.Logger))
	r.Use(gin.Recovery())

	auth := middleware.Auth(ct.Verifier, ct.AuthService, secure, ct.Logger)
	optionalAuth := middleware.OptionalAuth(ct.Verifier, ct.AuthService, ct.Logger)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "resort-api",
			})
		})

		v1.POST("/auth/register", handlers.Register(ct.AuthService))
		v1.POST("/auth/login", handlers.Login(ct.AuthService, secure))
		v1.POST("/auth/refresh", handlers.Refresh(ct.AuthService, secure))
		v1.POST("/auth/logout", optionalAuth, handlers.Logout(ct.AuthService, secure))
		v1.GET("/auth/me", auth, handlers.Me(ct.AuthService))

		// public catalogue
		v1.GET("/rooms", handlers.ListRooms(ct.RoomService))
		v1.GET("/rooms/availability", handlers.RoomAvailability(ct.RoomService))
		v1.GET("/rooms/:id", handlers.GetRoom(ct.RoomService))
		v1.GET("/rooms/:id/tours", handlers.ListRoomTours(ct.TourService))
		v1.GET("/venues", handlers.ListVenues(ct.EventService))
		v1.GET("/venues/:id", handlers.GetVenue(ct.EventService))
		v1.GET("/packages", handlers.ListPackages(ct.EventService))
		v1.GET("/food-items", handlers.ListFoodItems(ct.CatalogService))
		v1.GET("/drinks", handlers.ListDrinks(ct.CatalogService))
		v1.GET("/tables", handlers.ListTables(ct.TableService))
		v1.GET("/tables/availability", handlers.TableAvailability(ct.TableService))
		v1.GET("/tours", handlers.ListTours(ct.TourService))
		v1.POST("/tours/:id/views", optionalAuth, handlers.RecordTourView(ct.TourService))
	}

	protected := v1.Group("/")
	protected.Use(auth)

	guestRoutes := protected.Group("/guests")
	{
		guestRoutes.GET("", middleware.StaffOnly(frontDesk, manager), handlers.ListGuests(ct.GuestService))
		guestRoutes.GET("/:id", handlers.GetGuest(ct.GuestService))
		guestRoutes.PUT("/:id", handlers.UpdateGuest(ct.GuestService))
		guestRoutes.GET("/:id/room-reservations", handlers.ListGuestRoomReservations(ct.RoomService))
		guestRoutes.GET("/:id/event-reservations", handlers.ListGuestEventReservations(ct.EventService))
	}

	staffRoutes := protected.Group("/staff", middleware.StaffOnly(manager))
	{
		staffRoutes.GET("", handlers.ListStaff(ct.StaffService))
		staffRoutes.POST("", handlers.CreateStaff(ct.StaffService))
		staffRoutes.GET("/on-shift", handlers.StaffOnShift(ct.StaffService))
		staffRoutes.PUT("/:id", handlers.UpdateStaff(ct.StaffService))
		staffRoutes.PUT("/:id/status", handlers.ChangeStaffStatus(ct.StaffService))
	}

	roomRoutes := protected.Group("/rooms")
	{
		roomRoutes.POST("", middleware.StaffOnly(manager), handlers.CreateRoom(ct.RoomService))
		roomRoutes.PUT("/:id", middleware.StaffOnly(manager), handlers.UpdateRoom(ct.RoomService))
		roomRoutes.PUT("/:id/status", middleware.StaffOnly(manager, frontDesk), handlers.ChangeRoomStatus(ct.RoomService))
	}

	roomReservations := protected.Group("/room-reservations")
	{
		roomReservations.POST("", middleware.GuestsOr(frontDesk), handlers.CreateRoomReservation(ct.RoomService))
		roomReservations.GET("", middleware.StaffOnly(frontDesk, manager), handlers.ListRoomReservationsForDate(ct.RoomService))
		roomReservations.GET("/:id", handlers.GetRoomReservation(ct.RoomService))
		roomReservations.PUT("/:id/status", middleware.GuestsOr(frontDesk, manager), handlers.ChangeRoomReservationStatus(ct.RoomService))
	}

	venueRoutes := protected.Group("/venues", middleware.StaffOnly(manager))
	{
		venueRoutes.POST("", handlers.CreateVenue(ct.EventService))
		venueRoutes.PUT("/:id", handlers.UpdateVenue(ct.EventService))
		venueRoutes.PUT("/:id/status", handlers.ChangeVenueStatus(ct.EventService))
	}

	packageRoutes := protected.Group("/packages", middleware.StaffOnly(manager))
	{
		packageRoutes.POST("", handlers.CreatePackage(ct.EventService))
		packageRoutes.PUT("/:id", handlers.UpdatePackage(ct.EventService))
		packageRoutes.PUT("/:id/status", handlers.ChangePackageStatus(ct.EventService))
	}

	eventReservations := protected.Group("/event-reservations")
	{
		eventReservations.POST("", middleware.GuestsOr(frontDesk, manager), handlers.CreateEventReservation(ct.EventService))
		eventReservations.GET("", middleware.StaffOnly(manager, restaurant), handlers.ListEventReservationsForDate(ct.EventService))
		eventReservations.GET("/:id", handlers.GetEventReservation(ct.EventService))
		eventReservations.PUT("/:id/status", middleware.GuestsOr(manager, restaurant), handlers.ChangeEventReservationStatus(ct.EventService))
	}

	foodRoutes := protected.Group("/food-items", middleware.StaffOnly(restaurant, manager))
	{
		foodRoutes.POST("", handlers.CreateFoodItem(ct.CatalogService))
		foodRoutes.PUT("/:id", handlers.UpdateFoodItem(ct.CatalogService))
		foodRoutes.PUT("/:id/status", handlers.ChangeFoodItemStatus(ct.CatalogService))
	}

	drinkRoutes := protected.Group("/drinks", middleware.StaffOnly(bar, manager))
	{
		drinkRoutes.POST("", handlers.CreateDrink(ct.CatalogService))
		drinkRoutes.PUT("/:id", handlers.UpdateDrink(ct.CatalogService))
		drinkRoutes.PUT("/:id/status", handlers.ChangeDrinkStatus(ct.CatalogService))
	}

	tableRoutes := protected.Group("/tables", middleware.StaffOnly(restaurant, manager))
	{
		tableRoutes.POST("", handlers.CreateTable(ct.TableService))
		tableRoutes.PUT("/:id/status", handlers.ChangeTableStatus(ct.TableService))
	}

	tableReservations := protected.Group("/table-reservations")
	{
		tableReservations.POST("", middleware.GuestsOr(restaurant, frontDesk, manager), handlers.CreateTableReservation(ct.TableService))
		tableReservations.GET("", middleware.StaffOnly(restaurant, manager), handlers.ListTableReservationsForDate(ct.TableService))
		tableReservations.PUT("/:id/status", middleware.StaffOnly(restaurant, manager), handlers.ChangeTableReservationStatus(ct.TableService))
	}

	tourRoutes := protected.Group("/tours", middleware.StaffOnly(manager))
	{
		tourRoutes.POST("", handlers.CreateTour(ct.TourService))
		tourRoutes.PUT("/:id/status", handlers.ChangeTourStatus(ct.TourService))
		tourRoutes.GET("/:id/stats", handlers.TourStats(ct.TourService))
	}

	wishlistRoutes := protected.Group("/wishlist", middleware.GuestsOr())
	{
		wishlistRoutes.GET("", handlers.GetWishlist(ct.WishlistService))
		wishlistRoutes.POST("/:item_id", handlers.AddToWishlist(ct.WishlistService))
		wishlistRoutes.DELETE("/:item_id", handlers.RemoveFromWishlist(ct.WishlistService))
	}

	reportRoutes := protected.Group("/reports", middleware.StaffOnly(manager))
	{
		reportRoutes.GET("/summary", handlers.ReportSummary(ct.ReportService))
		reportRoutes.GET("/audit", handlers.AuditTrail(ct.ReportService))
	}

	return r
}
