// Package application provides the application interface for zonemeta commands.
//
// Commands accept an Application rather than the concrete App so they can be
// tested against a Mock backed by the in-memory catalog service:
//
//	mock := &application.Mock{
//	    ManagerFunc: func(ctx context.Context) (*zonemeta.Manager, error) {
//	        return zonemeta.New(ctx, memory.New(), zonemeta.WithDomain("dzd_test"))
//	    },
//	}
//	cmd := show.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/zonemeta"
)

// Application provides what commands need from the running process.
type Application interface {
	// Manager returns the sync manager, creating it lazily. Creating it
	// resolves the domain's form type revisions.
	Manager(ctx context.Context) (*zonemeta.Manager, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
