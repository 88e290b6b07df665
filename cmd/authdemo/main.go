// Command authdemo is a small backend-for-frontend that shows how the
// authclient packages fit together: it restores a session on start, keeps
// the access token renewed, and exposes thin JSON endpoints over the
// protected API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jwill9999/authclient/pkg/apiclient"
	"github.com/jwill9999/authclient/pkg/config"
	"github.com/jwill9999/authclient/pkg/credential"
	"github.com/jwill9999/authclient/pkg/logger"
	"github.com/jwill9999/authclient/pkg/session"
)

type appConfig struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	ProfileDir string `env:"PROFILE_DIR" envDefault:".authdemo"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

func main() {
	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(appCfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(appCfg.LogFormat)),
		logger.WithAttr(slog.String("service", "authdemo")),
	)

	var apiCfg apiclient.Config
	config.MustLoad(&apiCfg)
	var sessCfg session.Config
	config.MustLoad(&sessCfg)

	creds := credential.NewStore()
	client := apiclient.New(creds,
		apiclient.WithConfig(apiCfg),
		apiclient.WithLogger(log),
	)
	manager := session.New(client, creds,
		session.WithConfig(sessCfg),
		session.WithProfileStore(session.NewFileStore(appCfg.ProfileDir)),
		session.WithLogger(log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager.Start(ctx)
	defer manager.Close()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/login", func(w http.ResponseWriter, req *http.Request) {
		var payload credentialsPayload
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := manager.Login(req.Context(), payload.Email, payload.Password); err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": manager.CurrentUser()})
	})

	r.Post("/api/register", func(w http.ResponseWriter, req *http.Request) {
		var payload credentialsPayload
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := manager.Register(req.Context(), payload.Email, payload.Password, payload.Name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	r.Post("/api/logout", func(w http.ResponseWriter, req *http.Request) {
		manager.Logout(req.Context())
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	r.Post("/api/logout-all", func(w http.ResponseWriter, req *http.Request) {
		manager.LogoutAll(req.Context())
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	r.Get("/auth/google", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, manager.GoogleLoginURL(), http.StatusFound)
	})
	r.Get("/auth/callback", manager.CallbackHandler("/api/me", "/auth/google"))

	r.Group(func(r chi.Router) {
		r.Use(manager.RequireAuth("/auth/google"))

		r.Get("/api/me", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"user": manager.CurrentUser()})
		})

		r.Get("/api/data", func(w http.ResponseWriter, req *http.Request) {
			data, err := client.GetData(req.Context())
			if err != nil {
				status := http.StatusBadGateway
				var statusErr *apiclient.StatusError
				if errors.As(err, &statusErr) {
					status = statusErr.Status
				}
				writeError(w, status, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, data)
		})
	})

	srv := &http.Server{Addr: appCfg.ListenAddr, Handler: r}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Info("authdemo listening", "addr", appCfg.ListenAddr, "backend", apiCfg.BaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}
