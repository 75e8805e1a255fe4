// Package apiconnect wires the aequitally.v1.TallyService messages to Connect
// handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/aequitally/pkg/api"
)

// TallyServiceName is the fully-qualified name of the TallyService service.
const TallyServiceName = "aequitally.v1.TallyService"

// Procedure names, also the HTTP paths of each RPC.
const (
	TallyServiceCreateTallyProcedure       = "/aequitally.v1.TallyService/CreateTally"
	TallyServiceGetTallyProcedure          = "/aequitally.v1.TallyService/GetTally"
	TallyServiceListTalliesProcedure       = "/aequitally.v1.TallyService/ListTallies"
	TallyServiceUpdateTallyProcedure       = "/aequitally.v1.TallyService/UpdateTally"
	TallyServiceDeleteTallyProcedure       = "/aequitally.v1.TallyService/DeleteTally"
	TallyServiceAddParticipantProcedure    = "/aequitally.v1.TallyService/AddParticipant"
	TallyServiceRemoveParticipantProcedure = "/aequitally.v1.TallyService/RemoveParticipant"
	TallyServiceAddExpenseProcedure        = "/aequitally.v1.TallyService/AddExpense"
	TallyServiceEditExpenseProcedure       = "/aequitally.v1.TallyService/EditExpense"
	TallyServiceRemoveExpenseProcedure     = "/aequitally.v1.TallyService/RemoveExpense"
	TallyServiceAllocateSharesProcedure    = "/aequitally.v1.TallyService/AllocateShares"
	TallyServiceGetBalancesProcedure       = "/aequitally.v1.TallyService/GetBalances"
	TallyServiceGetSettlementsProcedure    = "/aequitally.v1.TallyService/GetSettlements"
)

// TallyServiceClient is a client for the aequitally.v1.TallyService service.
type TallyServiceClient interface {
	CreateTally(context.Context, *connect.Request[api.CreateTallyRequest]) (*connect.Response[api.CreateTallyResponse], error)
	GetTally(context.Context, *connect.Request[api.GetTallyRequest]) (*connect.Response[api.GetTallyResponse], error)
	ListTallies(context.Context, *connect.Request[api.ListTalliesRequest]) (*connect.Response[api.ListTalliesResponse], error)
	UpdateTally(context.Context, *connect.Request[api.UpdateTallyRequest]) (*connect.Response[api.UpdateTallyResponse], error)
	DeleteTally(context.Context, *connect.Request[api.DeleteTallyRequest]) (*connect.Response[api.DeleteTallyResponse], error)
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	EditExpense(context.Context, *connect.Request[api.EditExpenseRequest]) (*connect.Response[api.EditExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error)
	AllocateShares(context.Context, *connect.Request[api.AllocateSharesRequest]) (*connect.Response[api.AllocateSharesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetSettlements(context.Context, *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error)
}

// NewTallyServiceClient constructs a client for the aequitally.v1.TallyService
// service. It always speaks JSON.
//
// The URL supplied here should be the base URL for the Connect server
// (for example, http://api.acme.com or https://acme.com/grpc).
func NewTallyServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TallyServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &tallyServiceClient{
		createTally:       connect.NewClient[api.CreateTallyRequest, api.CreateTallyResponse](httpClient, baseURL+TallyServiceCreateTallyProcedure, opts...),
		getTally:          connect.NewClient[api.GetTallyRequest, api.GetTallyResponse](httpClient, baseURL+TallyServiceGetTallyProcedure, opts...),
		listTallies:       connect.NewClient[api.ListTalliesRequest, api.ListTalliesResponse](httpClient, baseURL+TallyServiceListTalliesProcedure, opts...),
		updateTally:       connect.NewClient[api.UpdateTallyRequest, api.UpdateTallyResponse](httpClient, baseURL+TallyServiceUpdateTallyProcedure, opts...),
		deleteTally:       connect.NewClient[api.DeleteTallyRequest, api.DeleteTallyResponse](httpClient, baseURL+TallyServiceDeleteTallyProcedure, opts...),
		addParticipant:    connect.NewClient[api.AddParticipantRequest, api.AddParticipantResponse](httpClient, baseURL+TallyServiceAddParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[api.RemoveParticipantRequest, api.RemoveParticipantResponse](httpClient, baseURL+TallyServiceRemoveParticipantProcedure, opts...),
		addExpense:        connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+TallyServiceAddExpenseProcedure, opts...),
		editExpense:       connect.NewClient[api.EditExpenseRequest, api.EditExpenseResponse](httpClient, baseURL+TallyServiceEditExpenseProcedure, opts...),
		removeExpense:     connect.NewClient[api.RemoveExpenseRequest, api.RemoveExpenseResponse](httpClient, baseURL+TallyServiceRemoveExpenseProcedure, opts...),
		allocateShares:    connect.NewClient[api.AllocateSharesRequest, api.AllocateSharesResponse](httpClient, baseURL+TallyServiceAllocateSharesProcedure, opts...),
		getBalances:       connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+TallyServiceGetBalancesProcedure, opts...),
		getSettlements:    connect.NewClient[api.GetSettlementsRequest, api.GetSettlementsResponse](httpClient, baseURL+TallyServiceGetSettlementsProcedure, opts...),
	}
}

type tallyServiceClient struct {
	createTally       *connect.Client[api.CreateTallyRequest, api.CreateTallyResponse]
	getTally          *connect.Client[api.GetTallyRequest, api.GetTallyResponse]
	listTallies       *connect.Client[api.ListTalliesRequest, api.ListTalliesResponse]
	updateTally       *connect.Client[api.UpdateTallyRequest, api.UpdateTallyResponse]
	deleteTally       *connect.Client[api.DeleteTallyRequest, api.DeleteTallyResponse]
	addParticipant    *connect.Client[api.AddParticipantRequest, api.AddParticipantResponse]
	removeParticipant *connect.Client[api.RemoveParticipantRequest, api.RemoveParticipantResponse]
	addExpense        *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	editExpense       *connect.Client[api.EditExpenseRequest, api.EditExpenseResponse]
	removeExpense     *connect.Client[api.RemoveExpenseRequest, api.RemoveExpenseResponse]
	allocateShares    *connect.Client[api.AllocateSharesRequest, api.AllocateSharesResponse]
	getBalances       *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	getSettlements    *connect.Client[api.GetSettlementsRequest, api.GetSettlementsResponse]
}

func (c *tallyServiceClient) CreateTally(ctx context.Context, req *connect.Request[api.CreateTallyRequest]) (*connect.Response[api.CreateTallyResponse], error) {
	return c.createTally.CallUnary(ctx, req)
}

func (c *tallyServiceClient) GetTally(ctx context.Context, req *connect.Request[api.GetTallyRequest]) (*connect.Response[api.GetTallyResponse], error) {
	return c.getTally.CallUnary(ctx, req)
}

func (c *tallyServiceClient) ListTallies(ctx context.Context, req *connect.Request[api.ListTalliesRequest]) (*connect.Response[api.ListTalliesResponse], error) {
	return c.listTallies.CallUnary(ctx, req)
}

func (c *tallyServiceClient) UpdateTally(ctx context.Context, req *connect.Request[api.UpdateTallyRequest]) (*connect.Response[api.UpdateTallyResponse], error) {
	return c.updateTally.CallUnary(ctx, req)
}

func (c *tallyServiceClient) DeleteTally(ctx context.Context, req *connect.Request[api.DeleteTallyRequest]) (*connect.Response[api.DeleteTallyResponse], error) {
	return c.deleteTally.CallUnary(ctx, req)
}

func (c *tallyServiceClient) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *tallyServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *tallyServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *tallyServiceClient) EditExpense(ctx context.Context, req *connect.Request[api.EditExpenseRequest]) (*connect.Response[api.EditExpenseResponse], error) {
	return c.editExpense.CallUnary(ctx, req)
}

func (c *tallyServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *tallyServiceClient) AllocateShares(ctx context.Context, req *connect.Request[api.AllocateSharesRequest]) (*connect.Response[api.AllocateSharesResponse], error) {
	return c.allocateShares.CallUnary(ctx, req)
}

func (c *tallyServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *tallyServiceClient) GetSettlements(ctx context.Context, req *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error) {
	return c.getSettlements.CallUnary(ctx, req)
}

// TallyServiceHandler is an implementation of the aequitally.v1.TallyService service.
type TallyServiceHandler interface {
	CreateTally(context.Context, *connect.Request[api.CreateTallyRequest]) (*connect.Response[api.CreateTallyResponse], error)
	GetTally(context.Context, *connect.Request[api.GetTallyRequest]) (*connect.Response[api.GetTallyResponse], error)
	ListTallies(context.Context, *connect.Request[api.ListTalliesRequest]) (*connect.Response[api.ListTalliesResponse], error)
	UpdateTally(context.Context, *connect.Request[api.UpdateTallyRequest]) (*connect.Response[api.UpdateTallyResponse], error)
	DeleteTally(context.Context, *connect.Request[api.DeleteTallyRequest]) (*connect.Response[api.DeleteTallyResponse], error)
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	EditExpense(context.Context, *connect.Request[api.EditExpenseRequest]) (*connect.Response[api.EditExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error)
	AllocateShares(context.Context, *connect.Request[api.AllocateSharesRequest]) (*connect.Response[api.AllocateSharesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetSettlements(context.Context, *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error)
}

// NewTallyServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTallyServiceHandler(svc TallyServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	handlers := map[string]http.Handler{
		TallyServiceCreateTallyProcedure:       connect.NewUnaryHandler(TallyServiceCreateTallyProcedure, svc.CreateTally, opts...),
		TallyServiceGetTallyProcedure:          connect.NewUnaryHandler(TallyServiceGetTallyProcedure, svc.GetTally, opts...),
		TallyServiceListTalliesProcedure:       connect.NewUnaryHandler(TallyServiceListTalliesProcedure, svc.ListTallies, opts...),
		TallyServiceUpdateTallyProcedure:       connect.NewUnaryHandler(TallyServiceUpdateTallyProcedure, svc.UpdateTally, opts...),
		TallyServiceDeleteTallyProcedure:       connect.NewUnaryHandler(TallyServiceDeleteTallyProcedure, svc.DeleteTally, opts...),
		TallyServiceAddParticipantProcedure:    connect.NewUnaryHandler(TallyServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		TallyServiceRemoveParticipantProcedure: connect.NewUnaryHandler(TallyServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		TallyServiceAddExpenseProcedure:        connect.NewUnaryHandler(TallyServiceAddExpenseProcedure, svc.AddExpense, opts...),
		TallyServiceEditExpenseProcedure:       connect.NewUnaryHandler(TallyServiceEditExpenseProcedure, svc.EditExpense, opts...),
		TallyServiceRemoveExpenseProcedure:     connect.NewUnaryHandler(TallyServiceRemoveExpenseProcedure, svc.RemoveExpense, opts...),
		TallyServiceAllocateSharesProcedure:    connect.NewUnaryHandler(TallyServiceAllocateSharesProcedure, svc.AllocateShares, opts...),
		TallyServiceGetBalancesProcedure:       connect.NewUnaryHandler(TallyServiceGetBalancesProcedure, svc.GetBalances, opts...),
		TallyServiceGetSettlementsProcedure:    connect.NewUnaryHandler(TallyServiceGetSettlementsProcedure, svc.GetSettlements, opts...),
	}
	return "/" + TallyServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// UnimplementedTallyServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTallyServiceHandler struct{}

func unimplemented(method string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(TallyServiceName+"."+method+" is not implemented"))
}

func (UnimplementedTallyServiceHandler) CreateTally(context.Context, *connect.Request[api.CreateTallyRequest]) (*connect.Response[api.CreateTallyResponse], error) {
	return nil, unimplemented("CreateTally")
}

func (UnimplementedTallyServiceHandler) GetTally(context.Context, *connect.Request[api.GetTallyRequest]) (*connect.Response[api.GetTallyResponse], error) {
	return nil, unimplemented("GetTally")
}

func (UnimplementedTallyServiceHandler) ListTallies(context.Context, *connect.Request[api.ListTalliesRequest]) (*connect.Response[api.ListTalliesResponse], error) {
	return nil, unimplemented("ListTallies")
}

func (UnimplementedTallyServiceHandler) UpdateTally(context.Context, *connect.Request[api.UpdateTallyRequest]) (*connect.Response[api.UpdateTallyResponse], error) {
	return nil, unimplemented("UpdateTally")
}

func (UnimplementedTallyServiceHandler) DeleteTally(context.Context, *connect.Request[api.DeleteTallyRequest]) (*connect.Response[api.DeleteTallyResponse], error) {
	return nil, unimplemented("DeleteTally")
}

func (UnimplementedTallyServiceHandler) AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return nil, unimplemented("AddParticipant")
}

func (UnimplementedTallyServiceHandler) RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	return nil, unimplemented("RemoveParticipant")
}

func (UnimplementedTallyServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, unimplemented("AddExpense")
}

func (UnimplementedTallyServiceHandler) EditExpense(context.Context, *connect.Request[api.EditExpenseRequest]) (*connect.Response[api.EditExpenseResponse], error) {
	return nil, unimplemented("EditExpense")
}

func (UnimplementedTallyServiceHandler) RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	return nil, unimplemented("RemoveExpense")
}

func (UnimplementedTallyServiceHandler) AllocateShares(context.Context, *connect.Request[api.AllocateSharesRequest]) (*connect.Response[api.AllocateSharesResponse], error) {
	return nil, unimplemented("AllocateShares")
}

func (UnimplementedTallyServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, unimplemented("GetBalances")
}

func (UnimplementedTallyServiceHandler) GetSettlements(context.Context, *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error) {
	return nil, unimplemented("GetSettlements")
}
