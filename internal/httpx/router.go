package httpx

import (
	"fmt"
	"net/http"
	"strings"
)

const (
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Gray   = "\033[90m"

	ResetColor = "\033[0m"
)

var methodColors = map[string]string{
	"GET":    Green,
	"POST":   Blue,
	"DELETE": Yellow,
}

// Router is a ServeMux that remembers its route patterns so they can be
// printed at startup.
type Router struct {
	mux    *http.ServeMux
	routes []string
}

func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

func (rt *Router) RegisterRouteFunc(pattern string, handler http.HandlerFunc) {
	rt.routes = append(rt.routes, pattern)
	rt.mux.HandleFunc(pattern, handler)
}

func (rt *Router) Routes() []string {
	return append([]string(nil), rt.routes...)
}

// LogRoutes prints the route table with coloured methods.
func (rt *Router) LogRoutes() {
	for _, route := range rt.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			fmt.Println(FormatRoute(parts[0], parts[1]))
		} else {
			fmt.Println(FormatRoute("", parts[0]))
		}
	}
}

func FormatRoute(method, path string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	return fmt.Sprintf("[%-19s] %s", color+paddedMethod+ResetColor, path)
}
