package container

import (
	"context"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/resort/internal/config"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stores groups the persistence and identity backends the services run on.
type Stores struct {
	Guests    models.GuestRepo
	Staff     models.StaffRepo
	Rooms     models.RoomRepo
	Events    models.EventRepo
	Catalog   models.CatalogRepo
	Tables    models.TableRepo
	Tours     models.TourRepo
	Status    models.StatusRepo
	Audit     models.AuditRepo
	TourViews models.TourViewsRepo
	Wishlists models.WishlistRepo
	Identity  models.IdentityProvider
}

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Verifier helpers.TokenVerifier

	AuthService     *services.AuthService
	GuestService    *services.GuestService
	StaffService    *services.StaffService
	RoomService     *services.RoomService
	EventService    *services.EventService
	CatalogService  *services.CatalogService
	TableService    *services.TableService
	TourService     *services.TourService
	WishlistService *services.WishlistService
	ReportService   *services.ReportService
}

// HostedStores binds every store to Supabase, MongoDB and GoTrue.
func HostedStores(supabaseClient *supabase.Client, mongoClient *mongo.Client, cfg *config.Config, logger *slog.Logger) Stores {
	supa := models.SupabaseNewRepo(supabaseClient, logger)
	mdb := models.MongodbNewRepo(mongoClient, cfg.MongoDBDatabase)
	return Stores{
		Guests:    supa,
		Staff:     supa,
		Rooms:     supa,
		Events:    supa,
		Catalog:   supa,
		Tables:    supa,
		Tours:     supa,
		Status:    supa,
		Audit:     mdb,
		TourViews: mdb,
		Wishlists: mdb,
		Identity:  models.NewGoTrueIdentity(supabaseClient.Auth),
	}
}

// NewVerifier prefers the shared secret when one is configured and the JWKS endpoint otherwise.
func NewVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (helpers.TokenVerifier, error) {
	if cfg.SupabaseJWTSecret != "" {
		return helpers.NewSecretVerifier(cfg.SupabaseJWTSecret), nil
	}
	return helpers.NewJWKSVerifier(ctx, cfg.SupabaseJWKSURL, logger)
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger, stores Stores, verifier helpers.TokenVerifier, cld *cloudinary.Cloudinary) *Container {
	media := helpers.NewMediaUploader(cld)
	status := services.NewStatusChanger(stores.Status, stores.Audit, logger)
	placeholder := cfg.PlaceholderImageURL

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Verifier: verifier,

		AuthService:     services.NewAuthService(stores.Guests, stores.Staff, stores.Identity, logger),
		GuestService:    services.NewGuestService(stores.Guests, stores.Identity, logger),
		StaffService:    services.NewStaffService(stores.Staff, stores.Identity, status, logger),
		RoomService:     services.NewRoomService(stores.Rooms, stores.Guests, media, status, placeholder, logger),
		EventService:    services.NewEventService(stores.Events, stores.Catalog, stores.Guests, media, status, placeholder, logger),
		CatalogService:  services.NewCatalogService(stores.Catalog, status, logger),
		TableService:    services.NewTableService(stores.Tables, stores.Guests, status, logger),
		TourService:     services.NewTourService(stores.Tours, stores.Rooms, stores.TourViews, media, status, placeholder, logger),
		WishlistService: services.NewWishlistService(stores.Wishlists, stores.Rooms, stores.Events, logger),
		ReportService:   services.NewReportService(stores.Rooms, stores.Events, stores.Tables, stores.Audit, logger),
	}
}
