// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pds/internal/utils"
)

// CheckHTTPMethod returns the handler to register with
// [chi.Mux.MethodNotAllowed].
//
// A request whose path matches a registered XRPC method but whose HTTP
// method does not (e.g. GET on a procedure) is answered with 405 and an
// InvalidRequest XRPC error naming the allowed method, instead of chi's bare
// 405. If the route does handle the method the request is forwarded to the
// router.
//
// Only exact pattern matches against [http.Request.URL.Path] are considered.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var foundRoute chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[r.Method]; ok {
			router.ServeHTTP(w, r)
			return
		}

		if allowed := slices.Sorted(maps.Keys(foundRoute.Handlers)); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}

		utils.WriteXRPCError(w, http.StatusMethodNotAllowed, errNameInvalidRequest, "HTTP method "+r.Method+" is not supported by "+r.URL.Path)
	}
}
