package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/aequitally/internal/metrics"
	"github.com/mmynk/aequitally/internal/validation"
	"github.com/mmynk/aequitally/pkg/api"
	"github.com/mmynk/aequitally/pkg/api/apiconnect"
)

// rejectingHandler fails every AddExpense with a validation error.
type rejectingHandler struct {
	apiconnect.UnimplementedTallyServiceHandler
}

func (rejectingHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeInvalidArgument, &validation.Error{
		Kind:      validation.ErrPercentageMismatch,
		ExpenseID: "e1",
	})
}

func (rejectingHandler) ListTallies(context.Context, *connect.Request[api.ListTalliesRequest]) (*connect.Response[api.ListTalliesResponse], error) {
	return connect.NewResponse(&api.ListTalliesResponse{}), nil
}

func setup(t *testing.T) (apiconnect.TallyServiceClient, *metrics.Metrics) {
	t.Helper()

	m := metrics.New()
	path, handler := apiconnect.NewTallyServiceHandler(rejectingHandler{}, connect.WithInterceptors(
		LoggingInterceptor(),
		MetricsInterceptor(m),
	))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return apiconnect.NewTallyServiceClient(http.DefaultClient, server.URL), m
}

func TestInterceptors(t *testing.T) {
	client, m := setup(t)
	ctx := context.Background()

	if _, err := client.ListTallies(ctx, connect.NewRequest(&api.ListTalliesRequest{})); err != nil {
		t.Fatalf("ListTallies failed: %v", err)
	}

	_, err := client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{TallyID: "t1"}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Fatalf("code = %v, want InvalidArgument", connect.CodeOf(err))
	}

	_, err = client.GetTally(ctx, connect.NewRequest(&api.GetTallyRequest{TallyID: "t1"}))
	if connect.CodeOf(err) != connect.CodeUnimplemented {
		t.Fatalf("code = %v, want Unimplemented", connect.CodeOf(err))
	}

	series, err := testutil.GatherAndCount(m.Registry(), "aequitally_rpc_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if series != 3 {
		t.Errorf("rpc_requests_total has %d series, want 3 (ok, invalid_argument, unimplemented)", series)
	}

	failures, err := testutil.GatherAndCount(m.Registry(), "aequitally_validation_failures_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if failures != 1 {
		t.Errorf("validation_failures_total has %d series, want 1", failures)
	}
}

func TestMetricsInterceptor_NilMetrics(t *testing.T) {
	interceptor := MetricsInterceptor(nil)
	next := connect.UnaryFunc(func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeInvalidArgument, &validation.Error{Kind: validation.ErrEmptyShareSet})
	})

	_, err := interceptor(next)(context.Background(), connect.NewRequest(&api.ListTalliesRequest{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("code = %v, want InvalidArgument", connect.CodeOf(err))
	}
}
