package notion

import (
	"net/url"
	"strings"
)

// Endpoint describes one API operation.
type Endpoint struct {
	Method     string
	Path       string
	Idempotent bool // safe to retry on 5xx
}

// With substitutes id into the {id} placeholder.
func (e Endpoint) With(id string) string {
	return strings.Replace(e.Path, "{id}", url.PathEscape(id), 1)
}

// EndpointRegistry holds all API endpoints.
type EndpointRegistry struct {
	Pages     PagesEndpoints
	Blocks    BlocksEndpoints
	Databases DatabasesEndpoints
	Users     UsersEndpoints
	Search    Endpoint
}

type PagesEndpoints struct {
	Get    Endpoint
	Create Endpoint
	Update Endpoint
}

type BlocksEndpoints struct {
	Get      Endpoint
	Update   Endpoint
	Delete   Endpoint
	Children Endpoint
	Append   Endpoint
}

type DatabasesEndpoints struct {
	Get    Endpoint
	Create Endpoint
	List   Endpoint
	Query  Endpoint
}

type UsersEndpoints struct {
	Get  Endpoint
	List Endpoint
	Me   Endpoint
}

// Endpoints is the registry of every operation the client performs.
var Endpoints = EndpointRegistry{
	Pages: PagesEndpoints{
		Get:    Endpoint{Method: "GET", Path: "/pages/{id}", Idempotent: true},
		Create: Endpoint{Method: "POST", Path: "/pages"},
		Update: Endpoint{Method: "PATCH", Path: "/pages/{id}"},
	},
	Blocks: BlocksEndpoints{
		Get:      Endpoint{Method: "GET", Path: "/blocks/{id}", Idempotent: true},
		Update:   Endpoint{Method: "PATCH", Path: "/blocks/{id}"},
		Delete:   Endpoint{Method: "DELETE", Path: "/blocks/{id}"},
		Children: Endpoint{Method: "GET", Path: "/blocks/{id}/children", Idempotent: true},
		Append:   Endpoint{Method: "PATCH", Path: "/blocks/{id}/children"},
	},
	Databases: DatabasesEndpoints{
		Get:    Endpoint{Method: "GET", Path: "/databases/{id}", Idempotent: true},
		Create: Endpoint{Method: "POST", Path: "/databases"},
		List:   Endpoint{Method: "GET", Path: "/databases", Idempotent: true},
		Query:  Endpoint{Method: "POST", Path: "/databases/{id}/query", Idempotent: true},
	},
	Users: UsersEndpoints{
		Get:  Endpoint{Method: "GET", Path: "/users/{id}", Idempotent: true},
		List: Endpoint{Method: "GET", Path: "/users", Idempotent: true},
		Me:   Endpoint{Method: "GET", Path: "/users/me", Idempotent: true},
	},
	Search: Endpoint{Method: "POST", Path: "/search", Idempotent: true},
}
