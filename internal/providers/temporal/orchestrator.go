package temporal

import (
	"context"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
)

//go:generate mockgen -source=orchestrator.go -destination=../../mocks/temporal_orchestrator.go -package=mocks -mock_names=TemporalOrchestrator=MockTemporalOrchestrator
type TemporalOrchestrator interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// ClientOptions builds dial options that route Temporal SDK logs through zap
func ClientOptions(hostPort, namespace string, logger *zap.Logger) client.Options {
	return client.Options{
		HostPort:  hostPort,
		Namespace: namespace,
		Logger:    NewZapLoggerAdapter(logger.With(zap.String("component", "temporal"))),
	}
}
