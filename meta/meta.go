// Package meta holds application metadata such as the app name and version.
package meta

import version "github.com/hashicorp/go-version"

const AppName = "protodart"

var (
	Version = version.Must(version.NewSemver("0.2.0"))
)
