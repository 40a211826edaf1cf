// Package permit implements the building permit decision engine.
//
// # Input Fields
//
//   - zoning_compliance    [0,1], default 0.5
//   - structural_safety    [0,1], default 0.5
//   - environmental_impact [0,1], default 0.5 (higher is worse)
//   - plot_coverage_ratio  [0,1], default 0.5
//   - fire_safety_score    [0,1], default 0.5
//   - heritage_zone        bool, default false
//   - floodplain           bool, default false
//
// # Rule Table
//
//	P1  zoning_compliance < 0.4     -> REJECTED (hard)
//	P2  structural_safety < 0.5     -> REJECTED (hard)
//	P3  fire_safety_score < 0.4     -> REJECTED
//	P4  environmental_impact > 0.8  -> REJECTED
//	P5  plot_coverage_ratio > 0.8   -> NEEDS_REVISION
//	P6  heritage_zone               -> NEEDS_REVISION, heritage_review flag
//	P7  compliance composite        -> band by thresholds
//	P8  floodplain                  -> NEEDS_REVISION, flood_mitigation flag
//	P9  structural and fire >= 0.9  -> exemplary_safety flag
//	P10 >= 3 prior triggers         -> at least NEEDS_REVISION
//
// REJECTED is terminal. P10 escalates only from APPROVED; it never turns
// a revision request into a rejection.
package permit
