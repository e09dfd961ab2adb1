package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"wastewise-pickup-demo/internal/handler"
	custommw "wastewise-pickup-demo/internal/middleware"
	"wastewise-pickup-demo/internal/service"
)

type Server struct {
	echo            *echo.Echo
	authService     service.AuthService
	authHandler     *handler.AuthHandler
	locationHandler *handler.LocationHandler
	paymentHandler  *handler.PaymentHandler
	checkoutHandler *handler.CheckoutHandler
}

func NewServer(
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	locationHandler *handler.LocationHandler,
	paymentHandler *handler.PaymentHandler,
	checkoutHandler *handler.CheckoutHandler,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		authService:     authService,
		authHandler:     authHandler,
		locationHandler: locationHandler,
		paymentHandler:  paymentHandler,
		checkoutHandler: checkoutHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/locations", s.locationHandler.List)
	api.GET("/estimate", s.locationHandler.Estimate)

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/logout", s.authHandler.Logout)
	auth.GET("/me", s.authHandler.Me, custommw.AuthMiddleware(s.authService))

	// -------- payment --------
	pay := api.Group("/payment")
	pay.GET("/methods", s.paymentHandler.ListMethods)
	pay.POST("/create-snap-token", s.paymentHandler.CreateSnapToken, custommw.AuthMiddleware(s.authService))
	pay.POST("/save-transaction", s.paymentHandler.SaveTransaction, custommw.AuthMiddleware(s.authService))

	// gateway callback, no session
	pay.POST("/webhook", s.paymentHandler.Webhook)

	// -------- checkout flow --------
	co := api.Group("/checkout", custommw.AuthMiddleware(s.authService))
	co.GET("/state", s.checkoutHandler.State)
	co.POST("/details", s.checkoutHandler.SetDetails)
	co.POST("/location", s.checkoutHandler.SelectLocation)
	co.POST("/position", s.checkoutHandler.SetPosition)
	co.POST("/advance", s.checkoutHandler.Advance)
	co.POST("/back", s.checkoutHandler.Back)
	co.POST("/pay", s.checkoutHandler.Pay)
	co.POST("/submit", s.checkoutHandler.Submit)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
