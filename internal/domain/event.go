package domain

// ChatEvent is one message observed on the upstream chat feed. The feed
// delivers at-least-once with no timestamps; receipt time is used as the
// event time.
type ChatEvent struct {
	ChannelID   string `json:"channel_id"`
	DisplayName string `json:"display_name"`
}
