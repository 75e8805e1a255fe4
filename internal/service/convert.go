package service

import (
	"github.com/mmynk/aequitally/internal/calculator"
	"github.com/mmynk/aequitally/internal/models"
	"github.com/mmynk/aequitally/pkg/api"
)

func participantsFromAPI(in []api.Participant) []models.Participant {
	if in == nil {
		return nil
	}
	out := make([]models.Participant, len(in))
	for i, p := range in {
		out[i] = models.Participant{UserID: p.UserID, Name: p.Name}
	}
	return out
}

func participantsToAPI(in []models.Participant) []api.Participant {
	out := make([]api.Participant, len(in))
	for i, p := range in {
		out[i] = api.Participant{UserID: p.UserID, Name: p.Name}
	}
	return out
}

func sharesFromAPI(in []api.Share) []models.Share {
	out := make([]models.Share, len(in))
	for i, s := range in {
		out[i] = models.Share{
			ParticipantID: s.ParticipantID,
			Amount:        s.Amount,
			Shares:        s.Shares,
			Percentage:    s.Percentage,
		}
	}
	return out
}

func sharesToAPI(in []models.Share) []api.Share {
	out := make([]api.Share, len(in))
	for i, s := range in {
		out[i] = api.Share{
			ParticipantID: s.ParticipantID,
			Amount:        s.Amount,
			Shares:        s.Shares,
			Percentage:    s.Percentage,
		}
	}
	return out
}

func expenseFromAPI(e api.Expense) models.Expense {
	return models.Expense{
		ID:            e.ID,
		Title:         e.Title,
		Amount:        e.Amount,
		PaidBy:        e.PaidBy,
		ShareMethod:   models.ShareMethod(e.ShareMethod),
		ShareBetween:  sharesFromAPI(e.ShareBetween),
		Description:   e.Description,
		Date:          e.Date,
		Category:      e.Category,
		Tags:          e.Tags,
		Merchant:      e.Merchant,
		Location:      e.Location,
		ReceiptURL:    e.ReceiptURL,
		PaymentMethod: e.PaymentMethod,
		Notes:         e.Notes,
		Tax:           e.Tax,
		Tip:           e.Tip,
		ServiceFee:    e.ServiceFee,
	}
}

func expensesFromAPI(in []api.Expense) []models.Expense {
	if in == nil {
		return nil
	}
	out := make([]models.Expense, len(in))
	for i, e := range in {
		out[i] = expenseFromAPI(e)
	}
	return out
}

func expenseToAPI(e models.Expense) api.Expense {
	return api.Expense{
		ID:            e.ID,
		Title:         e.Title,
		Amount:        e.Amount,
		PaidBy:        e.PaidBy,
		ShareMethod:   string(e.ShareMethod),
		ShareBetween:  sharesToAPI(e.ShareBetween),
		Description:   e.Description,
		Date:          e.Date,
		Category:      e.Category,
		Tags:          e.Tags,
		Merchant:      e.Merchant,
		Location:      e.Location,
		ReceiptURL:    e.ReceiptURL,
		PaymentMethod: e.PaymentMethod,
		Notes:         e.Notes,
		Tax:           e.Tax,
		Tip:           e.Tip,
		ServiceFee:    e.ServiceFee,
	}
}

func tallyToAPI(t *models.Tally) *api.Tally {
	out := &api.Tally{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Date:         t.Date,
		Participants: participantsToAPI(t.Participants),
		Expenses:     make([]api.Expense, len(t.Expenses)),
		CreatedAt:    api.UnixTimestamp(t.CreatedAt),
		UpdatedAt:    api.UnixTimestamp(t.UpdatedAt),
	}
	for i, e := range t.Expenses {
		out.Expenses[i] = expenseToAPI(e)
	}
	return out
}

func summaryToAPI(s models.TallySummary) api.TallySummary {
	return api.TallySummary{
		ID:               s.ID,
		Name:             s.Name,
		ParticipantCount: s.ParticipantCount,
		ExpenseCount:     s.ExpenseCount,
		CreatedAt:        api.UnixTimestamp(s.CreatedAt),
		UpdatedAt:        api.UnixTimestamp(s.UpdatedAt),
	}
}

func balanceToAPI(t *models.Tally, b calculator.ParticipantBalance) api.Balance {
	return api.Balance{
		UserID:    b.ParticipantID,
		Name:      t.ParticipantName(b.ParticipantID),
		TotalPaid: b.TotalPaid,
		TotalOwed: b.TotalOwed,
		Balance:   b.Balance,
		Status:    string(b.Status()),
	}
}

func transferToAPI(t *models.Tally, tr models.Transfer) api.Transfer {
	return api.Transfer{
		FromParticipantID: tr.FromParticipantID,
		FromName:          t.ParticipantName(tr.FromParticipantID),
		ToParticipantID:   tr.ToParticipantID,
		ToName:            t.ParticipantName(tr.ToParticipantID),
		Amount:            tr.Amount,
	}
}
