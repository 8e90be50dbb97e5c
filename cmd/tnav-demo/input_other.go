//go:build !linux

package main

import (
	"context"
	"errors"

	"github.com/BrandonKowalski/tnav/pkg/tnav"
)

func watchBackButton(context.Context, string, *tnav.Nav) error {
	return errors.New("--device is only supported on linux")
}
