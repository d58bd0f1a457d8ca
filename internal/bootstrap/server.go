package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groupsix/gymbook/api"
	"github.com/groupsix/gymbook/internal/auth"
	"github.com/groupsix/gymbook/internal/service/booking"
	"github.com/groupsix/gymbook/internal/service/schedule"
)

// NewAdminRouter builds the management surface: login/logout plus the
// session-guarded schedule CRUD and booking listings.
func NewAdminRouter(
	scheduleSvc schedule.ScheduleUseCase,
	bookingSvc booking.BookingUseCase,
	verifier api.AdminVerifier,
	sessions *auth.Manager,
) *gin.Engine {
	router := gin.Default()
	router.GET("/health", health)

	authHandler := api.NewAuthHandler(verifier, sessions)
	authHandler.Register(&router.RouterGroup)

	guarded := router.Group("/", authHandler.RequireAdmin())
	api.NewScheduleHandler(scheduleSvc).RegisterAdmin(guarded)
	api.NewBookingHandler(bookingSvc).RegisterAdmin(guarded)

	return router
}

// NewCustomerRouter builds the public surface: browse the upcoming
// schedule and book a spot. No authentication.
func NewCustomerRouter(scheduleSvc schedule.ScheduleUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.Default()
	router.GET("/health", health)

	api.NewScheduleHandler(scheduleSvc).RegisterCustomer(&router.RouterGroup)
	api.NewBookingHandler(bookingSvc).RegisterCustomer(&router.RouterGroup)

	return router
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves the handler on addr and blocks until the context is
// canceled or the server fails, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
