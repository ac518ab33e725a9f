package domain

// Group grants its members a flat bonus payout rate (currency per minute of
// active watch time). Sorting orders groups for display (descending) and for
// permission precedence (higher sorting wins).
type Group struct {
	ID          int32   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	BonusPayout float64 `db:"bonus_payout" json:"bonus_payout"`
	Sorting     int32   `db:"sorting" json:"sorting"`
}
