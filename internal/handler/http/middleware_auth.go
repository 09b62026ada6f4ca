package http

import (
	"net/http"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/utils"
)

const adminUsername = "admin"

// auth enforces bearer authentication with an access token.
//
// On success the DID of the token subject is stored in the request context
// (see [utils.GetDIDFromContext]). A missing or malformed header is answered
// with 401 AuthRequired, a rejected token with 401 InvalidToken.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Info().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteXRPCError(w, http.StatusUnauthorized, errNameAuthRequired, ErrEmptyAuthorizationHeader.Error())
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Info().Err(err).Send()
			utils.WriteXRPCError(w, http.StatusUnauthorized, errNameAuthRequired, ErrInvalidAuthorizationHeader.Error())
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseAccessToken(ctx, tokenString)
		if err != nil {
			log.Info().Err(err).Msg("access token rejected")
			utils.WriteXRPCError(w, http.StatusUnauthorized, errNameInvalidToken, "token is expired or invalid")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithDID(ctx, token.DID)))
	})
}

// adminAuth enforces HTTP basic authentication as user "admin" with the
// configured admin password.
func (h *Handler) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || username != adminUsername || !h.services.AuthService.CheckAdminPassword(password) {
			logger.FromRequest(r).Warn().Err(ErrInvalidAdminCredentials).Str("path", r.URL.Path).Send()

			w.Header().Set("WWW-Authenticate", `Basic realm="admin", charset="UTF-8"`)
			utils.WriteXRPCError(w, http.StatusUnauthorized, errNameAuthRequired, ErrInvalidAdminCredentials.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
