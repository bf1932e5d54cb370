package resolve_policy

import (
	"context"

	resolvePolicy "github.com/vkotelnikov/HVS-VisitService/internal/usecase/resolve_policy"
)

type ResolvePolicyUseCase interface {
	Execute(ctx context.Context, req *resolvePolicy.Request) (*resolvePolicy.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
