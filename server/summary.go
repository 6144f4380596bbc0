package server

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kbukum/authgate/component"
)

// versionPath is mounted by the server, not the API.
const versionPath = "/version"

var methodRank = map[string]int{"GET": 0, "POST": 1, "PUT": 2, "PATCH": 3, "DELETE": 4}

func rank(method string) int {
	if r, ok := methodRank[method]; ok {
		return r
	}
	return len(methodRank)
}

// Routes lists the engine's routes for the startup summary: API routes by
// path, then /version marked as a system route.
func (s *Server) Routes() []component.Route {
	var routes []component.Route
	for _, r := range s.engine.Routes() {
		name := formatHandlerName(r.Handler)
		if r.Path == versionPath {
			name += " (system)"
		}
		routes = append(routes, component.Route{Method: r.Method, Path: r.Path, Handler: name})
	}

	slices.SortFunc(routes, func(a, b component.Route) int {
		aSys, bSys := a.Path == versionPath, b.Path == versionPath
		if aSys != bSys {
			if aSys {
				return 1
			}
			return -1
		}
		return cmp.Or(strings.Compare(a.Path, b.Path), cmp.Compare(rank(a.Method), rank(b.Method)))
	})
	return routes
}

// formatHandlerName turns gin's function name into something readable:
//
//	github.com/kbukum/authgate/internal/api.(*Handler).Login-fm -> Handler.Login
//	github.com/kbukum/authgate/server/endpoint.Version.func1   -> version
func formatHandlerName(fn string) string {
	fn = strings.TrimSuffix(fn, "-fm")
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		fn = fn[i+1:]
	}
	fn = strings.NewReplacer("(*", "", ")", "").Replace(fn)

	parts := strings.Split(fn, ".")
	if strings.HasPrefix(parts[len(parts)-1], "func") {
		// closure: name it after the enclosing function
		for i := len(parts) - 1; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				return strings.ToLower(parts[i])
			}
		}
	}
	if len(parts) > 1 && parts[0] == strings.ToLower(parts[0]) {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
