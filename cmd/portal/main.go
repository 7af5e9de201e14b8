package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/aims-retail/aims-backend/internal/cache"
	"github.com/aims-retail/aims-backend/internal/config"
	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/mailer"
	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// The portal serves the approve/reject links embedded in supplier
// restock emails. It shares the token store with the main server, so
// either process can settle a request.
func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Approval tokens are minted by the main server, so the portal can
	// only resolve them through the shared Redis store. The in-memory
	// fallback is per-process and would answer every link as expired.
	if !cfg.Cache.Enabled {
		log.Fatal("portal requires the shared token store: set CACHE_ENABLED=true and point REDIS_* at the same instance as the server")
	}

	store, err := cache.NewRequestStore(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize request store: %v", err)
	}

	mail := mailer.New(cfg.Mail)
	restock := service.NewRestockService(store, mail, cfg.Server.PublicBaseURL)

	r := mux.NewRouter()
	r.HandleFunc("/approve", settleHandler(restock.Approve, "approved")).Methods("GET")
	r.HandleFunc("/reject", settleHandler(restock.Reject, "rejected")).Methods("GET")

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.PortalPort)
	log.Printf("Supplier portal starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func settleHandler(settle func(context.Context, string) (*domain.RestockRequest, error), verb string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			writePage(w, http.StatusBadRequest, "Invalid Link",
				"This link is missing its approval token.")
			return
		}

		request, err := settle(r.Context(), token)
		if errors.Is(err, domain.ErrTokenNotFound) {
			writePage(w, http.StatusNotFound, "Link Expired",
				"This restock request was already handled or the link has expired.")
			return
		}
		if err != nil {
			log.Printf("settle failed: %v", err)
			writePage(w, http.StatusInternalServerError, "Something Went Wrong",
				"We could not process your response. Please try again later.")
			return
		}

		writePage(w, http.StatusOK,
			fmt.Sprintf("Request %s", verb),
			fmt.Sprintf("Thank you, %s. Restock request %s has been %s and the store manager was notified.",
				request.SupplierName, request.ID, verb))
	}
}

func writePage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="font-family: sans-serif; max-width: 40em; margin: 4em auto;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`, title, title, message)
}
