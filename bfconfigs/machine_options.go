package bfconfigs

import (
	"github.com/reusee/bf/bflang"
	"github.com/reusee/bf/configs"
	"github.com/reusee/bf/vars"
)

// MachineOptions derives machine construction options from config.
// Everything defaults to the bflang defaults when no config is found.
func (Module) MachineOptions(
	loader configs.Loader,
) *bflang.Options {
	return &bflang.Options{
		TapeSize: vars.FirstNonZero(
			configs.First[int](loader, "tapeSize"),
			bflang.TapeSize,
		),
	}
}
