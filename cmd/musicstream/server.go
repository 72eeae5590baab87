package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"musicstream/internal/app/playlists"
	"musicstream/internal/app/songs"
	"musicstream/internal/app/users"
	"musicstream/internal/config"
	"musicstream/internal/graphqlapi"
	"musicstream/internal/httpapi"
	"musicstream/internal/middleware"
	"musicstream/internal/repository"
	"musicstream/internal/soapapi"
)

type services struct {
	users     users.Service
	songs     songs.Service
	playlists playlists.Service
}

func newServices(repo repository.Repository) services {
	return services{
		users:     users.New(repo),
		songs:     songs.New(repo),
		playlists: playlists.New(repo),
	}
}

// newHTTPHandler mounts every adapter on one router so they share the same services.
func newHTTPHandler(cfg *config.Config, svc services) (http.Handler, error) {
	router := mux.NewRouter()

	httpapi.New(svc.users, svc.songs, svc.playlists).Register(router)
	soapapi.New(svc.users, svc.songs, svc.playlists).Register(router)

	schema, err := graphqlapi.NewSchema(svc.users, svc.songs, svc.playlists)
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}
	graphqlapi.NewHandler(schema).Register(router)

	return middleware.Chain(router,
		middleware.RequestLogging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	), nil
}
