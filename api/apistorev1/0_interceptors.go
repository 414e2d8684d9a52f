package apistorev1

import (
	"context"

	"github.com/fulldump/docdb/service"
)

const ContextServicerKey = "5d3c55a2-8b1e-11f1-a0c4-3f6a2b9e10d7"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}
