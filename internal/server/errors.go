package server

import (
	"errors"
	"net/http"

	"github.com/moobydog0324-a11y/GSENR-NEW/internal/miso"
)

// HTTPStatus returns the appropriate HTTP status code for a collection
// error. Upstream transport and workflow failures surface as 502 because
// this service is a gateway in front of the workflow engine; its own
// misconfiguration stays a 500.
func HTTPStatus(err error) int {
	var (
		configErr   *miso.ConfigError
		clientErr   *miso.ClientError
		serverErr   *miso.ServerError
		networkErr  *miso.NetworkError
		contentErr  *miso.ContentTypeError
		timeoutErr  *miso.TimeoutError
		workflowErr *miso.WorkflowError
	)

	switch {
	case errors.As(err, &configErr):
		return http.StatusInternalServerError
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &clientErr),
		errors.As(err, &serverErr),
		errors.As(err, &networkErr),
		errors.As(err, &contentErr),
		errors.As(err, &workflowErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
