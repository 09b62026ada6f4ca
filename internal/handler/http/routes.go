package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// XRPC method paths.
const (
	pathHealth                       = "/xrpc/_health"
	pathDescribeServer               = "/xrpc/com.atproto.server.describeServer"
	pathCreateAccount                = "/xrpc/com.atproto.server.createAccount"
	pathCreateSession                = "/xrpc/com.atproto.server.createSession"
	pathGetSession                   = "/xrpc/com.atproto.server.getSession"
	pathRequestPasswordReset         = "/xrpc/com.atproto.server.requestPasswordReset"
	pathResetPassword                = "/xrpc/com.atproto.server.resetPassword"
	pathCreateInviteCode             = "/xrpc/com.atproto.server.createInviteCode"
	pathDisableInviteCodes           = "/xrpc/com.atproto.admin.disableInviteCodes"
	pathResolveHandle                = "/xrpc/com.atproto.identity.resolveHandle"
	pathGetRecommendedDIDCredentials = "/xrpc/com.atproto.identity.getRecommendedDidCredentials"
	pathUploadBlob                   = "/xrpc/com.atproto.repo.uploadBlob"
	pathGetBlob                      = "/xrpc/com.atproto.sync.getBlob"

	pathMetrics = "/metrics"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withMetrics)

	// promhttp negotiates its own compression
	router.Handle(pathMetrics, promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		// routes without authorization
		r.Get(pathHealth, h.health)
		r.Get(pathDescribeServer, h.describeServer)
		r.Post(pathCreateAccount, h.createAccount)
		r.Post(pathCreateSession, h.createSession)
		r.Post(pathRequestPasswordReset, h.requestPasswordReset)
		r.Post(pathResetPassword, h.resetPassword)
		r.Get(pathResolveHandle, h.resolveHandle)
		r.Get(pathGetBlob, h.getBlob)

		// account routes
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get(pathGetSession, h.getSession)
			r.Get(pathGetRecommendedDIDCredentials, h.getRecommendedDIDCredentials)
			r.Post(pathUploadBlob, h.uploadBlob)
		})

		// admin routes
		r.Group(func(r chi.Router) {
			r.Use(h.adminAuth)

			r.Post(pathCreateInviteCode, h.createInviteCode)
			r.Post(pathDisableInviteCodes, h.disableInviteCodes)
		})
	})

	router.NotFound(methodNotImplemented)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
