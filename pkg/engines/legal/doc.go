// Package legal implements the legal compliance decision engine.
//
// # Input Fields
//
//   - regulatory_violations    count, default 0
//   - contract_risk_score      [0,1], default 0.5
//   - litigation_history       count, default 0
//   - disclosure_completeness  [0,1], default 0.5
//   - jurisdiction_complexity  [0,1], default 0.5
//   - sanctions_match          bool, default false
//
// # Rule Table
//
//	L1  sanctions_match                    -> NON_COMPLIANT (hard)
//	L2  regulatory_violations >= 3         -> NON_COMPLIANT (hard)
//	L3  disclosure_completeness < 0.5      -> NON_COMPLIANT
//	L4  contract_risk_score > 0.8          -> REQUIRES_COUNSEL
//	L5  litigation_history >= 2            -> REQUIRES_COUNSEL
//	L6  jurisdiction_complexity > 0.7      -> REQUIRES_COUNSEL
//	L7  compliance composite               -> band by thresholds
//	L8  regulatory_violations in [1,2]     -> REQUIRES_COUNSEL
//	L9  full disclosure, zero violations   -> clean_record flag
//	L10 >= 3 prior triggers                -> at least REQUIRES_COUNSEL
//
// NON_COMPLIANT is terminal. L10 escalates only from COMPLIANT; a matter
// already referred to counsel is never downgraded.
package legal
