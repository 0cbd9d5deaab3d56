package api

import (
	"github.com/gin-gonic/gin"
	"github.com/skydesk/reservations/internal/auth"
	"github.com/skydesk/reservations/internal/domain"
)

// NewRouter assembles the /api surface: public search and auth routes,
// token-guarded reservation routes, and admin-only administration routes.
func NewRouter(
	tokens *auth.Manager,
	authHandler *AuthHandler,
	flightHandler *FlightHandler,
	reservationHandler *ReservationHandler,
	promotionHandler *PromotionHandler,
	fleetHandler *FleetHandler,
	reportHandler *ReportHandler,
) *gin.Engine {
	router := gin.Default()

	apiGroup := router.Group("/api")
	authHandler.Register(apiGroup)
	flightHandler.Register(apiGroup)
	promotionHandler.Register(apiGroup)

	authed := apiGroup.Group("", Authenticate(tokens))
	reservationHandler.Register(authed)

	admin := apiGroup.Group("", Authenticate(tokens), RequireRole(domain.RoleAdmin))
	flightHandler.RegisterAdmin(admin)
	promotionHandler.RegisterAdmin(admin)
	fleetHandler.RegisterAdmin(admin)
	reportHandler.RegisterAdmin(admin)

	return router
}
