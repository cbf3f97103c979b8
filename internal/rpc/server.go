package rpc

import (
	"log/slog"

	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"
)

func New(logger *slog.Logger, manager *oldruins.Manager) *zenrpc.Server {
	rpcService := NewPostService(manager)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("posts", rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "old-ruins", nil))

	return rpcServer
}
