// Package models defines the core domain models for Aequitally.
//
// # Models
//
//   - Tally: a named expense-sharing session owning participants and expenses
//   - Participant: a member of a tally, identified by a user ID unique within the tally
//   - Expense: a payment made by one participant and shared between several
//   - Share: one participant's allocation of an expense
//   - Transfer: a suggested payment that moves balances toward zero
//
// # Design Principles
//
//  1. **Value semantics**: a Tally is passed around by value and treated as an immutable
//     snapshot; writers produce a new Tally instead of editing one in place (see Clone)
//  2. **IDs over pointers**: expenses reference participants by user ID only
//  3. **Opaque extras**: descriptive expense fields (merchant, tags, receipt URL, ...) are
//     carried unchanged and never read by the balance engine
package models
