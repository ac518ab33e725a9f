package domain

// GroupPermission is an explicit grant or denial of a named permission for
// every member of a group. At most one record exists per (group, permission).
type GroupPermission struct {
	GroupID    int32  `db:"group_id" json:"group_id"`
	Permission string `db:"permission" json:"permission"`
	Granted    bool   `db:"granted" json:"granted"`
}

// UserPermission overrides every group-level record for the same permission
// name, regardless of group precedence.
type UserPermission struct {
	ChannelID  string `db:"channel_id" json:"channel_id"`
	Permission string `db:"permission" json:"permission"`
	Granted    bool   `db:"granted" json:"granted"`
}

// GroupMember links a viewer to a group. Precedence among a user's groups is
// carried by Group.Sorting, not by this record.
type GroupMember struct {
	GroupID   int32  `db:"group_id" json:"group_id"`
	ChannelID string `db:"channel_id" json:"channel_id"`
}
