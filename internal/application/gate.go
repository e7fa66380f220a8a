package application

import (
	"context"
	"net/http"
	"strings"

	"github.com/oksasatya/movierama/internal/domain/apperror"
	"github.com/oksasatya/movierama/internal/domain/entity"
	repo "github.com/oksasatya/movierama/internal/domain/repository"
	"github.com/oksasatya/movierama/pkg/helpers"
)

// GateState is the per-request progress of authentication.
type GateState int

const (
	Unauthenticated GateState = iota
	TokenPresent
	TokenVerified
	UserResolved
	Authorized
	Rejected
)

func (s GateState) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case TokenPresent:
		return "token_present"
	case TokenVerified:
		return "token_verified"
	case UserResolved:
		return "user_resolved"
	case Authorized:
		return "authorized"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Route identifies an endpoint by method and route pattern, e.g. GET /api/movies/:name/all.
type Route struct {
	Method string
	Path   string
}

// PublicRoutes are reachable without a bearer token.
var PublicRoutes = []Route{
	{http.MethodPost, "/api/auth/register"},
	{http.MethodPost, "/api/auth/login"},
	{http.MethodGet, "/api/movies"},
	{http.MethodGet, "/api/movies/:name/all"},
	{http.MethodGet, "/api/movies/search"},
}

var (
	ErrMissingToken   = apperror.Authentication("missing bearer token")
	ErrMalformedToken = apperror.Authentication("malformed token")
	ErrBadToken       = apperror.Authentication("invalid token")
	ErrUnknownUser    = apperror.Authentication("user does not exist")
)

// Decision is the outcome of one pass through the gate.
// State is terminal (Authorized or Rejected) and Reached is the last step
// passed before it. Principal is nil for public routes.
type Decision struct {
	State     GateState
	Reached   GateState
	Principal *entity.Principal
	Err       error
}

func (d Decision) Allowed() bool { return d.State == Authorized }

type Gate struct {
	Tokens *helpers.TokenManager
	Users  repo.UserRepository
	public map[Route]struct{}
}

func NewGate(tokens *helpers.TokenManager, users repo.UserRepository, public []Route) *Gate {
	g := &Gate{Tokens: tokens, Users: users, public: make(map[Route]struct{}, len(public))}
	for _, r := range public {
		g.public[r] = struct{}{}
	}
	return g
}

func (g *Gate) IsPublic(method, path string) bool {
	_, ok := g.public[Route{Method: method, Path: path}]
	return ok
}

// Resolve authenticates one request from its route and Authorization header.
func (g *Gate) Resolve(ctx context.Context, method, path, authHeader string) Decision {
	if g.IsPublic(method, path) {
		return Decision{State: Authorized, Reached: Unauthenticated}
	}

	if strings.TrimSpace(authHeader) == "" {
		return reject(Unauthenticated, ErrMissingToken)
	}
	parts := strings.Fields(authHeader)
	if len(parts) < 2 || !strings.EqualFold(parts[0], "Bearer") {
		return reject(Unauthenticated, ErrMalformedToken)
	}

	name, err := g.Tokens.Verify(parts[1])
	if err != nil {
		return reject(TokenPresent, ErrBadToken.Wrap(err))
	}

	u, err := g.Users.GetByName(ctx, name)
	if err != nil {
		return Decision{State: Rejected, Reached: TokenVerified, Err: err}
	}
	if u == nil {
		return reject(TokenVerified, ErrUnknownUser)
	}

	return Decision{
		State:     Authorized,
		Reached:   UserResolved,
		Principal: &entity.Principal{Name: u.Name, ID: u.ID},
	}
}

func reject(reached GateState, err error) Decision {
	return Decision{State: Rejected, Reached: reached, Err: err}
}
