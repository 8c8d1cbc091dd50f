package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// AllowedOrigins feeds both the CORS config and the websocket origin check.
// The defaults cover the taskhive web client's vite dev and preview servers;
// deployments extend the list through CLIENT_URL and ALLOWED_ORIGINS
// (comma-separated).
var AllowedOrigins = allowedOrigins()

func allowedOrigins() []string {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:4173",
	}

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
