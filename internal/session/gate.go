package session

// Well-known redirect targets used by the gate decisions.
const (
	PathLogin       = "/login"
	PathVerifyEmail = "/verify-email"
	PathChoosePlan  = "/choose-plan"
	PathDashboard   = "/dashboard"
)

// Route describes a dashboard route and the gates protecting it.
type Route struct {
	Path         string
	RequiresPlan bool
	AdminOnly    bool
}

// Decision is the outcome of checking a session against a route's gates.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision               { return Decision{Allowed: true} }
func redirect(path string) Decision { return Decision{RedirectTo: path} }

// Routes is the dashboard route table. Paths mirror the web dashboard so CLI/TUI
// navigation and tests speak the same names.
var Routes = []Route{
	{Path: "/dashboard", RequiresPlan: true},
	{Path: "/dashboard/hooks", RequiresPlan: true},
	{Path: "/dashboard/formats", RequiresPlan: true},
	{Path: "/dashboard/discovery", RequiresPlan: true},
	{Path: "/dashboard/trending", RequiresPlan: true},
	{Path: "/dashboard/accounts", RequiresPlan: true},
	{Path: "/dashboard/support"},
	{Path: "/dashboard/settings"},
	{Path: "/dashboard/admin", AdminOnly: true},
	{Path: "/dashboard/admin/tickets", AdminOnly: true},
	{Path: "/dashboard/admin/users", AdminOnly: true},
}

// FindRoute returns the route entry for path, defaulting to a plan-gated dashboard
// route for unknown paths under /dashboard.
func FindRoute(path string) Route {
	for _, r := range Routes {
		if r.Path == path {
			return r
		}
	}
	return Route{Path: path, RequiresPlan: true}
}

// Check applies the gate predicates in the order the dashboard shell does:
// authentication, email verification, admin role, then subscription plan.
func Check(s *Session, route Route) Decision {
	if s == nil || s.Token == "" || s.Expired() {
		return redirect(PathLogin)
	}

	if !s.EmailVerified {
		return redirect(PathVerifyEmail)
	}

	if route.AdminOnly && !s.IsAdmin() {
		return redirect(PathDashboard)
	}

	if route.RequiresPlan && !s.HasActivePlan() && !s.IsAdmin() {
		return redirect(PathChoosePlan)
	}

	return allow()
}

// CheckPath is Check against the route table entry for path.
func CheckPath(s *Session, path string) Decision {
	return Check(s, FindRoute(path))
}
