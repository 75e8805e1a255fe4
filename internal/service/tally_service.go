package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/aequitally/internal/calculator"
	"github.com/mmynk/aequitally/internal/events"
	"github.com/mmynk/aequitally/internal/metrics"
	"github.com/mmynk/aequitally/internal/models"
	"github.com/mmynk/aequitally/internal/storage"
	"github.com/mmynk/aequitally/internal/tally"
	"github.com/mmynk/aequitally/pkg/api"
	"github.com/mmynk/aequitally/pkg/api/apiconnect"
)

// TallyService implements the Connect TallyService
type TallyService struct {
	apiconnect.UnimplementedTallyServiceHandler
	store     storage.Store
	publisher events.Publisher
	metrics   *metrics.Metrics
	epsilon   float64
	now       func() time.Time
}

// Option configures a TallyService.
type Option func(*TallyService)

// WithPublisher sets where committed changes are announced. Defaults to events.NopPublisher.
func WithPublisher(p events.Publisher) Option {
	return func(s *TallyService) { s.publisher = p }
}

// WithMetrics records settlement sizes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *TallyService) { s.metrics = m }
}

// WithEpsilon sets the settlement noise floor. Defaults to calculator.DefaultEpsilon.
func WithEpsilon(eps float64) Option {
	return func(s *TallyService) { s.epsilon = eps }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *TallyService) { s.now = now }
}

// NewTallyService creates a new TallyService with the given storage backend.
func NewTallyService(store storage.Store, opts ...Option) *TallyService {
	s := &TallyService{
		store:     store,
		publisher: events.NopPublisher{},
		epsilon:   calculator.DefaultEpsilon,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mutate applies fn to the stored tally inside a single store transaction.
func (s *TallyService) mutate(ctx context.Context, tallyID string, fn func(models.Tally, time.Time) (models.Tally, error)) (*models.Tally, error) {
	if tallyID == "" {
		return nil, errTallyIDRequired
	}
	return s.store.MutateTally(ctx, tallyID, func(t *models.Tally) error {
		next, err := fn(*t, s.now())
		if err != nil {
			return err
		}
		*t = next
		return nil
	})
}

func (s *TallyService) load(ctx context.Context, tallyID string) (*models.Tally, error) {
	if tallyID == "" {
		return nil, errTallyIDRequired
	}
	return s.store.GetTally(ctx, tallyID)
}

// publish announces a committed change. Failures are logged, never returned:
// the write has already happened.
func (s *TallyService) publish(ctx context.Context, e events.Event) {
	e.OccurredAt = s.now().UTC()
	if err := s.publisher.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "Failed to publish tally event", "type", e.Type, "tally_id", e.TallyID, "error", err)
	}
}

// CreateTally validates and stores a new tally
func (s *TallyService) CreateTally(ctx context.Context, req *connect.Request[api.CreateTallyRequest]) (*connect.Response[api.CreateTallyResponse], error) {
	slog.Info("CreateTally called",
		"name", req.Msg.Name,
		"participants", len(req.Msg.Participants),
		"expenses", len(req.Msg.Expenses),
	)

	t, err := tally.New(tally.Draft{
		Name:         req.Msg.Name,
		Description:  req.Msg.Description,
		Date:         req.Msg.Date,
		Participants: participantsFromAPI(req.Msg.Participants),
		Expenses:     expensesFromAPI(req.Msg.Expenses),
	}, s.now())
	if err != nil {
		return nil, toConnectError(ctx, "CreateTally", err)
	}

	if err := s.store.CreateTally(ctx, &t); err != nil {
		return nil, toConnectError(ctx, "CreateTally", err)
	}

	slog.Info("Tally created", "tally_id", t.ID)
	s.publish(ctx, events.Event{Type: events.TallyCreated, TallyID: t.ID})

	return connect.NewResponse(&api.CreateTallyResponse{Tally: tallyToAPI(&t)}), nil
}

// GetTally returns a stored tally
func (s *TallyService) GetTally(ctx context.Context, req *connect.Request[api.GetTallyRequest]) (*connect.Response[api.GetTallyResponse], error) {
	t, err := s.load(ctx, req.Msg.TallyID)
	if err != nil {
		return nil, toConnectError(ctx, "GetTally", err)
	}
	return connect.NewResponse(&api.GetTallyResponse{Tally: tallyToAPI(t)}), nil
}

// ListTallies returns a summary of every tally, newest first
func (s *TallyService) ListTallies(ctx context.Context, req *connect.Request[api.ListTalliesRequest]) (*connect.Response[api.ListTalliesResponse], error) {
	summaries, err := s.store.ListTallies(ctx)
	if err != nil {
		return nil, toConnectError(ctx, "ListTallies", err)
	}

	out := make([]api.TallySummary, len(summaries))
	for i, sum := range summaries {
		out[i] = summaryToAPI(sum)
	}
	return connect.NewResponse(&api.ListTalliesResponse{Tallies: out}), nil
}

// UpdateTally patches tally details and optionally replaces participants or expenses
func (s *TallyService) UpdateTally(ctx context.Context, req *connect.Request[api.UpdateTallyRequest]) (*connect.Response[api.UpdateTallyResponse], error) {
	slog.Info("UpdateTally called",
		"tally_id", req.Msg.TallyID,
		"replace_participants", req.Msg.Participants != nil,
		"replace_expenses", req.Msg.Expenses != nil,
	)

	patch := tally.Patch{
		Name:         req.Msg.Name,
		Description:  req.Msg.Description,
		Date:         req.Msg.Date,
		Participants: participantsFromAPI(req.Msg.Participants),
		Expenses:     expensesFromAPI(req.Msg.Expenses),
	}
	t, err := s.mutate(ctx, req.Msg.TallyID, func(t models.Tally, now time.Time) (models.Tally, error) {
		return tally.Update(t, patch, now)
	})
	if err != nil {
		return nil, toConnectError(ctx, "UpdateTally", err)
	}

	s.publish(ctx, events.Event{Type: events.TallyUpdated, TallyID: t.ID})
	return connect.NewResponse(&api.UpdateTallyResponse{Tally: tallyToAPI(t)}), nil
}

// DeleteTally removes a tally with all its participants and expenses
func (s *TallyService) DeleteTally(ctx context.Context, req *connect.Request[api.DeleteTallyRequest]) (*connect.Response[api.DeleteTallyResponse], error) {
	slog.Info("DeleteTally called", "tally_id", req.Msg.TallyID)

	if req.Msg.TallyID == "" {
		return nil, toConnectError(ctx, "DeleteTally", errTallyIDRequired)
	}
	if err := s.store.DeleteTally(ctx, req.Msg.TallyID); err != nil {
		return nil, toConnectError(ctx, "DeleteTally", err)
	}

	s.publish(ctx, events.Event{Type: events.TallyDeleted, TallyID: req.Msg.TallyID})
	return connect.NewResponse(&api.DeleteTallyResponse{}), nil
}

// AddParticipant adds a member to a tally
func (s *TallyService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	p := models.Participant{UserID: req.Msg.Participant.UserID, Name: req.Msg.Participant.Name}
	slog.Info("AddParticipant called", "tally_id", req.Msg.TallyID, "participant_id", p.UserID)

	t, err := s.mutate(ctx, req.Msg.TallyID, func(t models.Tally, now time.Time) (models.Tally, error) {
		return tally.AddParticipant(t, p, now)
	})
	if err != nil {
		return nil, toConnectError(ctx, "AddParticipant", err)
	}

	s.publish(ctx, events.Event{Type: events.ParticipantAdded, TallyID: t.ID, ParticipantID: p.UserID})
	return connect.NewResponse(&api.AddParticipantResponse{Tally: tallyToAPI(t)}), nil
}

// RemoveParticipant removes a member and their shares from every expense
func (s *TallyService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	slog.Info("RemoveParticipant called", "tally_id", req.Msg.TallyID, "participant_id", req.Msg.ParticipantID)

	var report tally.Removal
	t, err := s.mutate(ctx, req.Msg.TallyID, func(t models.Tally, now time.Time) (models.Tally, error) {
		next, r, err := tally.RemoveParticipant(t, req.Msg.ParticipantID, now)
		report = r
		return next, err
	})
	if err != nil {
		return nil, toConnectError(ctx, "RemoveParticipant", err)
	}

	if len(report.Emptied) > 0 || len(report.Inconsistent) > 0 {
		slog.Warn("Participant removal left expenses needing attention",
			"tally_id", t.ID,
			"participant_id", req.Msg.ParticipantID,
			"emptied", report.Emptied,
			"inconsistent", report.Inconsistent,
		)
	}
	s.publish(ctx, events.Event{Type: events.ParticipantRemoved, TallyID: t.ID, ParticipantID: req.Msg.ParticipantID})

	return connect.NewResponse(&api.RemoveParticipantResponse{
		Tally:                  tallyToAPI(t),
		AffectedExpenseIDs:     report.Affected,
		EmptiedExpenseIDs:      report.Emptied,
		InconsistentExpenseIDs: report.Inconsistent,
	}), nil
}

// AddExpense validates and appends an expense
func (s *TallyService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense called",
		"tally_id", req.Msg.TallyID,
		"amount", req.Msg.Expense.Amount,
		"share_method", req.Msg.Expense.ShareMethod,
		"shares", len(req.Msg.Expense.ShareBetween),
	)

	var added models.Expense
	t, err := s.mutate(ctx, req.Msg.TallyID, func(t models.Tally, now time.Time) (models.Tally, error) {
		next, e, err := tally.AddExpense(t, expenseFromAPI(req.Msg.Expense), now)
		added = e
		return next, err
	})
	if err != nil {
		return nil, toConnectError(ctx, "AddExpense", err)
	}

	s.publish(ctx, events.Event{Type: events.ExpenseAdded, TallyID: t.ID, ExpenseID: added.ID})
	e := expenseToAPI(added)
	return connect.NewResponse(&api.AddExpenseResponse{Tally: tallyToAPI(t), Expense: &e}), nil
}

// EditExpense overlays changes onto an existing expense
func (s *TallyService) EditExpense(ctx context.Context, req *connect.Request[api.EditExpenseRequest]) (*connect.Response[api.EditExpenseResponse], error) {
	slog.Info("EditExpense called", "tally_id", req.Msg.TallyID, "expense_id", req.Msg.ExpenseID)

	var edited models.Expense
	t, err := s.mutate(ctx, req.Msg.TallyID, func(t models.Tally, now time.Time) (models.Tally, error) {
		next, e, err := tally.EditExpense(t, req.Msg.ExpenseID, expenseFromAPI(req.Msg.Expense), now)
		edited = e
		return next, err
	})
	if err != nil {
		return nil, toConnectError(ctx, "EditExpense", err)
	}

	s.publish(ctx, events.Event{Type: events.ExpenseEdited, TallyID: t.ID, ExpenseID: edited.ID})
	e := expenseToAPI(edited)
	return connect.NewResponse(&api.EditExpenseResponse{Tally: tallyToAPI(t), Expense: &e}), nil
}

// RemoveExpense deletes an expense from a tally
func (s *TallyService) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	slog.Info("RemoveExpense called", "tally_id", req.Msg.TallyID, "expense_id", req.Msg.ExpenseID)

	t, err := s.mutate(ctx, req.Msg.TallyID, func(t models.Tally, now time.Time) (models.Tally, error) {
		return tally.RemoveExpense(t, req.Msg.ExpenseID, now)
	})
	if err != nil {
		return nil, toConnectError(ctx, "RemoveExpense", err)
	}

	s.publish(ctx, events.Event{Type: events.ExpenseRemoved, TallyID: t.ID, ExpenseID: req.Msg.ExpenseID})
	return connect.NewResponse(&api.RemoveExpenseResponse{Tally: tallyToAPI(t)}), nil
}

// AllocateShares computes shareBetween for a prospective expense. It stores nothing.
func (s *TallyService) AllocateShares(ctx context.Context, req *connect.Request[api.AllocateSharesRequest]) (*connect.Response[api.AllocateSharesResponse], error) {
	alloc := calculator.AllocateShares(calculator.AllocationInput{
		Amount:            req.Msg.Amount,
		Method:            models.ShareMethod(req.Msg.ShareMethod),
		Selected:          req.Msg.SelectedParticipants,
		CustomShares:      req.Msg.CustomShares,
		CustomPercentages: req.Msg.CustomPercentages,
		CustomAmounts:     req.Msg.CustomAmounts,
	})

	slog.Debug("Shares allocated",
		"share_method", req.Msg.ShareMethod,
		"amount", alloc.Amount,
		"shares", len(alloc.ShareBetween),
	)
	return connect.NewResponse(&api.AllocateSharesResponse{
		Amount:       alloc.Amount,
		ShareBetween: sharesToAPI(alloc.ShareBetween),
	}), nil
}

// GetBalances computes balances from the stored tally
func (s *TallyService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	t, err := s.load(ctx, req.Msg.TallyID)
	if err != nil {
		return nil, toConnectError(ctx, "GetBalances", err)
	}

	var balances []calculator.ParticipantBalance
	if id := req.Msg.ParticipantID; id != "" {
		if !t.HasParticipant(id) {
			return nil, toConnectError(ctx, "GetBalances", tally.ErrParticipantNotFound)
		}
		balances = []calculator.ParticipantBalance{calculator.CalculateBalance(*t, id)}
	} else {
		balances = calculator.CalculateBalances(*t)
	}

	out := make([]api.Balance, len(balances))
	for i, b := range balances {
		out[i] = balanceToAPI(t, b)
	}
	return connect.NewResponse(&api.GetBalancesResponse{Balances: out}), nil
}

// GetSettlements computes the transfers that settle the tally
func (s *TallyService) GetSettlements(ctx context.Context, req *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error) {
	t, err := s.load(ctx, req.Msg.TallyID)
	if err != nil {
		return nil, toConnectError(ctx, "GetSettlements", err)
	}

	balances := calculator.CalculateBalances(*t)
	transfers := calculator.PlanSettlements(balances, s.epsilon)
	summary := calculator.Summarize(*t, transfers)
	s.metrics.SettlementPlanned(len(transfers))

	slog.Debug("Settlements computed",
		"tally_id", t.ID,
		"participants", len(balances),
		"transfers", len(transfers),
	)

	resp := &api.GetSettlementsResponse{
		Transfers: make([]api.Transfer, len(transfers)),
		Balances:  make([]api.Balance, len(balances)),
		Summary: &api.SettlementSummary{
			TotalAmount:     summary.TotalAmount,
			TransferCount:   summary.TransferCount,
			LargestTransfer: summary.LargestTransfer,
			TotalToSettle:   summary.TotalToSettle,
		},
	}
	for i, tr := range transfers {
		resp.Transfers[i] = transferToAPI(t, tr)
	}
	for i, b := range balances {
		resp.Balances[i] = balanceToAPI(t, b)
	}
	return connect.NewResponse(resp), nil
}
