// Package credit implements the credit assessment decision engine.
//
// # Input Fields
//
//   - credit_score       [300,850], default 600
//   - annual_income      currency units per year, default 40000
//   - debt_to_income     [0,1], default 0.35
//   - loan_amount        currency units, default 10000
//   - employment_years   years, default 3
//   - prior_defaults     count, default 0
//   - collateral         bool, default false
//
// # Rule Table
//
//	F1  credit_score < 500                  -> DENIED (hard floor)
//	C2  debt_to_income > 0.6                -> DENIED
//	C3  prior_defaults >= 2                 -> DENIED
//	C4  loan_amount > 5x annual_income      -> MANUAL_REVIEW
//	C5  employment_years < 1                -> MANUAL_REVIEW
//	C6  score >= 740 and dti <= 0.35        -> APPROVED
//	C7  approval composite                  -> band by thresholds
//	C8  collateral                          -> collateral_backed flag
//	C9  500 <= credit_score < 580           -> subprime, MANUAL_REVIEW
//	C10 >= 3 prior triggers                 -> at least MANUAL_REVIEW
//
// DENIED is terminal: the escalation-only merge guarantees no later rule
// (including C6's prime-borrower upgrade and C10's multi-trigger
// escalation) can soften it. C10 escalates only from APPROVED; it never
// manufactures a denial.
package credit
