package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/realtime"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/security"
	"toolshare-backend/internal/service"
	"toolshare-backend/internal/storage"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth         service.AuthService
	Tool         service.ToolService
	Cart         service.CartService
	Booking      service.BookingService
	Payment      service.PaymentService
	Chat         service.ChatService
	Notification service.NotificationService
	Dashboard    service.DashboardService
}

// NewRouter builds the full REST and websocket surface.
func NewRouter(
	svcs Services,
	tokens security.TokenManager,
	userRepo repository.UserRepository,
	hub *realtime.Hub,
	imageStore storage.ImageStore,
) *mux.Router {
	r := mux.NewRouter()
	authMw := NewAuthMiddleware(tokens, userRepo)

	authHandler := NewAuthHandler(svcs.Auth)
	toolHandler := NewToolHandler(svcs.Tool)
	cartHandler := NewCartHandler(svcs.Cart)
	bookingHandler := NewBookingHandler(svcs.Booking)
	paymentHandler := NewPaymentHandler(svcs.Payment)
	chatHandler := NewChatHandler(svcs.Chat)
	notificationHandler := NewNotificationHandler(svcs.Notification)
	dashboardHandler := NewDashboardHandler(svcs.Dashboard)
	imageHandler := NewImageHandler(imageStore)
	wsHandler := NewWSHandler(hub, tokens)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public auth endpoints
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/google", authHandler.GoogleLogin).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodPost)
	auth.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Public catalog browsing
	api.HandleFunc("/tools", toolHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/tools/{id:[0-9]+}", toolHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/images/{key}", imageHandler.Download).Methods(http.MethodGet)

	// Everything below requires a valid access token.
	protected := api.NewRoute().Subrouter()
	protected.Use(authMw.Require)

	protected.HandleFunc("/tools", toolHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/tools/my", toolHandler.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/upload", imageHandler.Upload).Methods(http.MethodPost)

	protected.HandleFunc("/cart", cartHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/cart/items", cartHandler.AddItem).Methods(http.MethodPost)
	protected.HandleFunc("/cart/items/{toolId:[0-9]+}", cartHandler.UpdateItem).Methods(http.MethodPut)
	protected.HandleFunc("/cart/items/{toolId:[0-9]+}", cartHandler.RemoveItem).Methods(http.MethodDelete)
	protected.HandleFunc("/cart", cartHandler.Clear).Methods(http.MethodDelete)

	protected.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/my", bookingHandler.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/owner", bookingHandler.ListOwner).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id:[0-9]+}/status", bookingHandler.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookingHandler.Cancel).Methods(http.MethodPatch)

	protected.HandleFunc("/payment/create-order", paymentHandler.CreateOrder).Methods(http.MethodPost)
	protected.HandleFunc("/payment/verify", paymentHandler.Verify).Methods(http.MethodPost)
	protected.HandleFunc("/payment/my-payments", paymentHandler.ListMine).Methods(http.MethodGet)

	protected.HandleFunc("/chat/send", chatHandler.Send).Methods(http.MethodPost)
	protected.HandleFunc("/chat/conversations", chatHandler.Conversations).Methods(http.MethodGet)
	protected.HandleFunc("/chat/{userId:[0-9]+}", chatHandler.GetRoom).Methods(http.MethodGet)

	protected.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkRead).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications", notificationHandler.DeleteAll).Methods(http.MethodDelete)
	protected.HandleFunc("/notifications/devices", notificationHandler.RegisterDevice).Methods(http.MethodPost)

	protected.HandleFunc("/dashboard/earnings", dashboardHandler.Earnings).Methods(http.MethodGet)

	// Websocket upgrade does its own token check.
	r.HandleFunc("/ws", wsHandler.Serve).Methods(http.MethodGet)

	return r
}
