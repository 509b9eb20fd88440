package lspserver

import (
	"context"
	"io"

	"github.com/sourcegraph/jsonrpc2"
)

type stdrwc struct {
	in  io.ReadCloser
	out io.WriteCloser
}

func (s stdrwc) Read(p []byte) (int, error)  { return s.in.Read(p) }
func (s stdrwc) Write(p []byte) (int, error) { return s.out.Write(p) }
func (s stdrwc) Close() error {
	if err := s.in.Close(); err != nil {
		return err
	}
	return s.out.Close()
}

// ServeStdio runs the JSON-RPC 2.0 dispatcher over in/out using the LSP
// Content-Length header framing, blocking until the connection closes
// (on the exit notification, or on a transport error).
func (s *Server) ServeStdio(ctx context.Context, in io.ReadCloser, out io.WriteCloser) error {
	stream := jsonrpc2.NewBufferedStream(stdrwc{in: in, out: out}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, s)
	<-conn.DisconnectNotify()
	return nil
}
