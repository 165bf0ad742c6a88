package model

import "time"

// AuditDirection tells whether a staff adjustment added or removed points.
type AuditDirection string

const (
	AuditGrant  AuditDirection = "grant"
	AuditDeduct AuditDirection = "deduct"
)

// AuditRecord describes a staff balance adjustment for the log channel.
type AuditRecord struct {
	Actor     string         `json:"actor"`
	Target    string         `json:"target"`
	Amount    int64          `json:"amount"`
	Direction AuditDirection `json:"direction"`
	At        time.Time      `json:"at"`
}
