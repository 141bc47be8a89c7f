package handlers

import (
	"context"
	"net/http"

	"slideforge/internal/handlers/middleware"
	"slideforge/internal/logger"
	"slideforge/internal/models"
)

type authenticator interface {
	authService
	Authenticate(ctx context.Context, access string) (models.User, error)
}

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	auth authenticator,
	credentials credentialManager,
	generator generationService,
	records recordStore,
	defaultTemplateID string,
	log logger.Logger,
) http.Handler {
	authHandler := NewAuth(auth)
	credentialHandler := NewCredential(credentials)
	presentationHandler := NewPresentation(generator, records, defaultTemplateID)

	withAuth := middleware.AuthMiddleware(auth)

	apiuser := http.NewServeMux()
	apiuser.Handle("/register", authHandler.Handler())
	apiuser.Handle("/login", authHandler.Handler())
	apiuser.Handle("/refresh", authHandler.Handler())
	apiuser.Handle("/credential", withAuth(credentialHandler.Handler()))
	apiuser.Handle("/credential/", withAuth(credentialHandler.Handler()))
	apiuser.Handle("/presentations", withAuth(presentationHandler.Handler()))
	apiuser.Handle("/presentations/", withAuth(presentationHandler.Handler()))

	root := http.NewServeMux()
	root.Handle("/api/user/", http.StripPrefix("/api/user", apiuser))

	return chain(root,
		middleware.LoggerMiddleware(log),
	)
}
