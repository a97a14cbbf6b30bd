package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("POST "+RouteAPIToken, s.TokenExchangeHandler())
	s.RegisterRouteFunc("OPTIONS "+RouteAnyPath, s.PreflightHandler())
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// Must stay last: the allowed-method table is complete by now
	s.RegisterRouteFunc(RouteAnyPath, s.NotFoundHandler())
}
