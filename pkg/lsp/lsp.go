// Package lsp implements a language server for structogram pseudocode.
package lsp

import (
	"context"
	"os"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/strukt-dev/strukt/pkg/dialect"
	"github.com/strukt-dev/strukt/pkg/prog"
)

// Program is the LSP subprogram.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.LSP {
		return prog.ErrNotSuitable
	}
	d, err := dialect.ByName(f.Dialect)
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := newServer(d)
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(transport{fds[0], fds[1]}, jsonrpc2.VSCodeObjectCodec{}),
		handler(s))
	<-conn.DisconnectNotify()
	return nil
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}
