package bootstrap

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/kbukum/authgate/component"
)

// Summary is printed once after startup: infrastructure, routes and
// health, each as a small tree.
type Summary struct {
	service, version string
	took             time.Duration
	extra            []component.Description
	out              io.Writer
}

// TrackInfrastructure adds a line for something that is not a component,
// such as the auth setup.
func (s *Summary) TrackInfrastructure(name, kind, details string, port int) {
	s.extra = append(s.extra, component.Description{Name: name, Type: kind, Details: details, Port: port})
}

// Display prints the summary. Describable and RouteProvider components in
// reg contribute their own lines. reg may be nil.
func (s *Summary) Display(ctx context.Context, reg *component.Registry) {
	infra := slices.Clone(s.extra)
	var routes, health []string
	if reg != nil {
		for _, c := range reg.All() {
			if d, ok := c.(component.Describable); ok {
				desc := d.Describe()
				if desc.Name == "" {
					desc.Name = c.Name()
				}
				infra = append(infra, desc)
			}
			if rp, ok := c.(component.RouteProvider); ok {
				for _, r := range rp.Routes() {
					routes = append(routes, fmt.Sprintf("%-7s %s → %s", r.Method, r.Path, r.Handler))
				}
			}
		}
		for _, h := range reg.HealthAll(ctx) {
			line := fmt.Sprintf("%s %s: %s", healthStatusIcon(h.Status), h.Name, h.Status)
			if h.Message != "" {
				line += " (" + h.Message + ")"
			}
			health = append(health, line)
		}
	}

	lines := make([]string, 0, len(infra))
	for _, d := range infra {
		details := d.Details
		if port := fmt.Sprintf(":%d", d.Port); d.Port > 0 && !strings.Contains(details, port) {
			details += " (" + port + ")"
		}
		lines = append(lines, fmt.Sprintf("%s [%s]: %s", d.Name, d.Type, details))
	}

	fmt.Fprintf(s.out, "\n🚀 %s %s started in %.2fs\n", s.service, s.version, s.took.Seconds())
	section(s.out, "📊 Infrastructure", lines)
	section(s.out, fmt.Sprintf("🌐 Routes (%d)", len(routes)), routes)
	section(s.out, "🏥 Health", health)
	fmt.Fprintln(s.out)
}

func section(w io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for i, l := range lines {
		branch := "├──"
		if i == len(lines)-1 {
			branch = "└──"
		}
		fmt.Fprintf(w, "   %s %s\n", branch, l)
	}
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
