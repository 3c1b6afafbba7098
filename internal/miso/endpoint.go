package miso

import "strings"

const (
	apiRoot   = "/ext/v1"
	runSuffix = "/workflows/run"
)

// NormalizeEndpoint derives the workflow run URL from any of the endpoint
// forms operators configure: the full run URL, the API root, an API-root URL
// with extra path segments, or a bare domain. The run suffix is appended
// exactly once.
func NormalizeEndpoint(endpoint string) string {
	e := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	switch {
	case strings.Contains(e, runSuffix):
		return e
	case strings.HasSuffix(e, apiRoot):
		return e + runSuffix
	default:
		if idx := strings.Index(e, apiRoot+"/"); idx >= 0 {
			return e[:idx+len(apiRoot)] + runSuffix
		}
		return e + apiRoot + runSuffix
	}
}
