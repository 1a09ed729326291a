package telemetry

import (
	"context"
	"testing"
)

// SetupForTesting installs exporter-less providers so instrumented code
// under test records spans without needing collector endpoints.
func SetupForTesting(t testing.TB, serviceName string) func() {
	ctx := context.Background()
	tel, err := Setup(ctx, serviceName, Config{})
	if err != nil {
		t.Fatal(err)
	}
	return func() {
		err := tel.Shutdown(ctx)
		if err != nil {
			t.Fatal(err)
		}
	}
}
