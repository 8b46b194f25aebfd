package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteRoot = "/"

	// Auth pages
	RouteLogin          = "/login"
	RouteForgotPassword = "/forgot-password"

	// Auth form submissions
	RouteAuthLogin            = "/auth/login"
	RouteAuthSignup           = "/auth/signup"
	RouteAuthValidatePassword = "/auth/signup/validate-password"
	RouteAuthForgotPassword   = "/auth/forgot-password"
	RouteAuthLogout           = "/auth/logout"

	// Public pages
	RouteHome = "/home"

	// Protected pages
	RouteDashboard        = "/dashboard"
	RouteNotificationRead = "/dashboard/notifications/{id}/read"
	RouteReviews          = "/dashboard/reviews"
	RouteSettings         = "/settings"
	RouteBusinessAccount  = "/home/business-account"
	RouteValidateAddress  = "/home/business-account/validate-address"

	// API Routes
	RouteAPISession = "/api/session"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
