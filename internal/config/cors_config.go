package config

import (
	"sort"
	"strings"
)

const corsOriginVar = "CORS_ORIGIN"

type Cors struct{}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return strings.Join(origins, ", ")
}

// GetAllowedOrigins reads CORS_ORIGIN as a comma separated list, falling back to CLIENT_URL
func (Cors) GetAllowedOrigins() AllowedOrigins {
	origins := getList(corsOriginVar)
	if len(origins) == 0 {
		origins = []string{EnvVars{}.GetClientURL()}
	}
	allowed := make(AllowedOrigins, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = nullValue{}
	}
	return allowed
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, DELETE, OPTIONS"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
