// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X github.com/strukt-dev/strukt/pkg/buildinfo.Var=value" to
// "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/strukt-dev/strukt/pkg/prog"
)

// Version identifies the version of strukt. On development commits, it
// identifies the next release.
const Version = "v0.3.0"

// VersionSuffix is appended to Version in the output of "strukt -version" and
// "strukt -buildinfo" to build the full version string. This can be overridden
// when building strukt.
var VersionSuffix = "-dev.unknown"

// Reproducible identifies whether the build is reproducible. This can be
// overridden when building strukt.
var Reproducible = "false"

// Program is the buildinfo subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	switch {
	case f.BuildInfo:
		fullVersion := Version + VersionSuffix
		if f.JSON {
			fmt.Fprintf(fds[1],
				`{"version":%s,"goversion":%s,"reproducible":%v}`+"\n",
				quoteJSON(fullVersion), quoteJSON(runtime.Version()),
				Reproducible)
		} else {
			fmt.Fprintln(fds[1], "Version:", fullVersion)
			fmt.Fprintln(fds[1], "Go version:", runtime.Version())
			fmt.Fprintln(fds[1], "Reproducible build:", Reproducible)
		}
		return nil
	case f.Version:
		fmt.Fprintln(fds[1], Version+VersionSuffix)
		return nil
	}
	return prog.ErrNotSuitable
}

func quoteJSON(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// Marshaling a string can only fail on invalid UTF-8, which
		// json.Marshal replaces rather than rejects.
		panic(err)
	}
	return string(b)
}
