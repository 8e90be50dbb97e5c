package main

import (
	"context"

	"github.com/BrandonKowalski/tnav/pkg/tnav"
	"github.com/BrandonKowalski/tnav/pkg/tnav/input"
)

func watchBackButton(ctx context.Context, path string, nav *tnav.Nav) error {
	r, err := input.Open(path, nav)
	if err != nil {
		return err
	}
	go func() {
		if err := r.Run(ctx); err != nil {
			tnav.GetLogger().Error("Back button reader stopped", "error", err)
		}
	}()
	return nil
}
