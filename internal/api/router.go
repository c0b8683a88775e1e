// Package api wires the HTTP routes of the file drop service to its
// use cases.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/filedrop/internal/intake"
	"github.com/rise-and-shine/filedrop/internal/usecase"
	"github.com/rise-and-shine/filedrop/pkg/http/server/forward"
)

// Router registers the service routes on a Fiber router.
type Router struct {
	upload *usecase.UploadFile
	list   *usecase.ListFiles
	health *usecase.HealthCheck
	index  indexData
}

// NewRouter creates a Router. The policy supplies the constraints shown
// on the upload form.
func NewRouter(
	policy *intake.Policy,
	upload *usecase.UploadFile,
	list *usecase.ListFiles,
	health *usecase.HealthCheck,
) *Router {
	return &Router{
		upload: upload,
		list:   list,
		health: health,
		index:  newIndexData(policy),
	}
}

// Register mounts all routes.
func (rt *Router) Register(r fiber.Router) {
	r.Get("/", rt.handleIndex)
	r.Post("/upload", rt.handleUpload)
	r.Get("/files", forward.ToUserAction(rt.list))
	r.Get("/health", forward.ToUserAction(rt.health))
}
