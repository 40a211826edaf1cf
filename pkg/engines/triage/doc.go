// Package triage implements the medical triage decision engine.
//
// # Input Fields
//
//   - vital_score         [0,1], default 0.5 (lower is worse)
//   - age                 years, default 40
//   - comorbidity_index   [0,1], default 0
//   - wait_time           minutes, default 0
//   - resource_score      [0,1], default 0.5 (ward resource availability)
//   - trauma_case         bool, default false
//   - maternal_case       bool, default false
//
// # Rule Table
//
//	H1  vital_score < 0.5                    -> priority HIGH, critical
//	H2  age >= 65 and comorbidity >= 0.5     -> priority HIGH
//	H3  wait_time >= 60                      -> escalate one level
//	H4  trauma case                          -> priority HIGH, critical
//	H5  maternal case                        -> priority HIGH
//	H6  comorbidity_index >= 0.8             -> at least MEDIUM
//	H7  vital >= 0.8 and comorbidity < 0.3   -> baseline LOW
//	H8  resource_score < 0.2                 -> resource_constrained flag
//	H9  urgency composite                    -> tier by thresholds
//	H10 >= 3 prior triggers                  -> escalate one level
//
// Rules H3 and H10 only escalate; a HIGH already set by an earlier rule is
// never lowered. The urgency composite is a fixed linear combination of
// normalized sub-scores, clamped to [0,1] and rounded to two decimals.
package triage
