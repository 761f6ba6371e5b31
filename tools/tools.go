//go:build tools
// +build tools

package tools

import (
	_ "github.com/Songmu/gocredits/cmd/gocredits"
)
