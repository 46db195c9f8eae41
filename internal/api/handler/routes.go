package handler

import (
	"github.com/hszk-dev/monostack/internal/api/route"
	"github.com/hszk-dev/monostack/pkg/contract"
)

// NewRegistry declares the API routes. The users routes are built as their
// own registry and mounted under contract.UsersPrefix.
func NewRegistry(health *HealthHandler, users *UserHandler) *route.Registry {
	usersRoutes := route.New()
	route.Handle(usersRoutes, contract.ListUsers, users.List)
	route.Handle(usersRoutes, contract.CreateUser, users.Create)

	reg := route.New()
	reg.Mount(contract.UsersPrefix, usersRoutes)
	route.Handle(reg, contract.Health, health.Health)
	return reg
}
