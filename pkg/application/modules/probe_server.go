package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"flat_price/pkg/probe"
)

type ProbeServer struct {
	Name          string
	Version       string
	ListenAddress string
	// Ready is optional; without it /ready always answers 200.
	Ready func() bool
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	probeServer := probe.NewServer(
		p.ListenAddress,
		probe.Options{
			Name:    p.Name,
			Version: p.Version,
		},
	).WithReadiness(p.Ready)

	g.Go(func() error {
		if err := probeServer.Run(ctx); err != nil {
			return fmt.Errorf("probeServer.Run: %w", err)
		}

		return nil
	})
}
