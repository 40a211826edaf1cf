// Package govservice implements the government service decision engine
// for benefit and service eligibility determinations.
//
// # Input Fields
//
//   - eligibility_score    [0,1], default 0.5
//   - residency_verified   bool, default false
//   - income_ratio         applicant income over the program ceiling, default 1.0
//   - documentation_score  [0,1], default 0.5
//   - household_size       count, default 1
//   - prior_fraud          bool, default false
//   - urgent_need          bool, default false
//
// # Rule Table
//
//	G1  prior_fraud                          -> REFUSED (hard)
//	G2  income_ratio > 1.5                   -> REFUSED (hard)
//	G3  residency not verified               -> PENDING_DOCUMENTS
//	G4  documentation_score < 0.5            -> PENDING_DOCUMENTS
//	G5  eligibility_score < 0.2              -> REFUSED
//	G6  urgent need, eligible, resident      -> GRANTED (expedited)
//	G7  entitlement composite                -> band by thresholds
//	G8  household_size >= 5                  -> large_household flag
//	G9  strong profile, resident             -> GRANTED
//	G10 >= 3 prior triggers                  -> at least PENDING_DOCUMENTS
//
// REFUSED is terminal. Unverified residency always proposes
// PENDING_DOCUMENTS before any granting rule runs, so a grant without
// verified residency is structurally impossible.
package govservice
