package usecase

import (
	"context"
	"time"

	"github.com/rise-and-shine/filedrop/pkg/ucdef"
)

var _ ucdef.UserAction[*HealthCheckInput, *HealthCheckOutput] = (*HealthCheck)(nil)

// HealthCheckInput is empty; the health probe takes no parameters.
type HealthCheckInput struct{}

// HealthCheckOutput is the wire payload of the health probe.
type HealthCheckOutput struct {
	Status       string `json:"status"`
	UploadFolder string `json:"upload_folder"`
	Timestamp    string `json:"timestamp"`
}

// HealthCheck reports service liveness along with the absolute storage
// root path.
type HealthCheck struct {
	storageRoot string
	opts        options
}

// NewHealthCheck creates the health_check use case. storageRoot is the
// absolute path reported to callers.
func NewHealthCheck(storageRoot string, opts ...Option) *HealthCheck {
	return &HealthCheck{
		storageRoot: storageRoot,
		opts:        newOptions(opts),
	}
}

// OperationID returns the unique identifier of the use case.
func (uc *HealthCheck) OperationID() string {
	return "health_check"
}

// Execute reports the service as healthy.
func (uc *HealthCheck) Execute(_ context.Context, _ *HealthCheckInput) (*HealthCheckOutput, error) {
	return &HealthCheckOutput{
		Status:       "healthy",
		UploadFolder: uc.storageRoot,
		Timestamp:    uc.opts.now().Format(time.RFC3339),
	}, nil
}
