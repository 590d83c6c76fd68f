// Package announcement contains the Announcement aggregate: a client's request
// to have a parcel carried from a pickup point to a delivery point.
//
// The aggregate is owned by the client-facing CRUD subsystem. The matching
// core reads it (route points, status) and performs a single write, the
// Published -> Assigned transition, when a courier subscription wins
// arbitration. The Status state machine rejects every other transition the
// core might accidentally attempt, including double assignment.
package announcement
