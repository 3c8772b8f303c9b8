// Package extension defines what a loaded extension is and how it may
// contribute endpoint groups to the host's routing table during the
// startup registration window.
package extension

import (
	"go.uber.org/zap"

	"github.com/inkframe-labs/inkframe/internal/lifecycle"
	"github.com/inkframe-labs/inkframe/internal/router"
)

// Extension is a loaded unit of functionality, built-in or installed.
type Extension interface {
	// ID returns the unique extension identifier.
	ID() string

	// DisplayName returns the human-readable extension name.
	DisplayName() string
}

// EndpointProvider is the optional capability an extension implements to
// contribute request-routable endpoints. Extensions that do not implement
// it are simply skipped during registration; providing zero groups is valid
// and common.
type EndpointProvider interface {
	Extension

	// EndpointGroups returns the named endpoint groups to register. Called
	// exactly once, during the startup registration window.
	EndpointGroups() []router.EndpointGroup
}

// Context carries the host collaborators handed to built-in extension
// factories.
type Context struct {
	Lifecycle   *lifecycle.Manager
	Logger      *zap.Logger
	HostVersion string
}

// Factory creates a built-in extension instance at host startup.
type Factory func(ctx *Context) (Extension, error)
