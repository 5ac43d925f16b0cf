// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meterio/sealed-auction/api/auction"
	"github.com/meterio/sealed-auction/chain"
	"github.com/meterio/sealed-auction/logdb"
	"github.com/meterio/sealed-auction/script"
	"github.com/meterio/sealed-auction/state"
)

// New return api router
func New(stateCreator *state.Creator, ch *chain.Chain, engine *script.ScriptEngine, logDB *logdb.LogDB, allowedOrigins string) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	router.Path("/metrics").Handler(promhttp.Handler())

	auction.New(stateCreator, ch, engine, logDB).
		Mount(router, "/auction")

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}))(router).ServeHTTP
}
