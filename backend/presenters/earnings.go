package presenters

import "context"

type WithdrawalRequest struct {
	Amount int    `json:"amount" validate:"required,gt=0"`
	Method string `json:"method" validate:"required,oneof=bank paypal"`
}

// EarningsPresenter handles instructor payouts.
type EarningsPresenter struct {
	base
}

// RequestWithdrawal checks the amount against the instructor's recorded
// revenue and acknowledges the request. No payout is created.
func (p *EarningsPresenter) RequestWithdrawal(ctx context.Context, instructorID string, req WithdrawalRequest) (ActionResult, error) {
	if err := validateStruct(req); err != nil {
		return ActionResult{}, err
	}
	inst, err := p.findInstructor(ctx, instructorID)
	if err != nil {
		return ActionResult{}, err
	}
	if req.Amount > inst.TotalRevenue {
		return ActionResult{}, invalidField("amount", "exceeds available balance")
	}
	return p.stub("withdrawal.request", true, "instructor_id", instructorID, "amount", req.Amount, "method", req.Method), nil
}
