package shared

const (
	DEFAULT_DISCORD_CLIENT_ID = "1360519977819439134"

	CMUS_REMOTE_COMMAND = "cmus-remote"
	CMUS_QUERY_FLAG     = "-Q"

	PLAYER_STATE_PLAYING = "playing"
	PLAYER_STATE_PAUSED  = "paused"
	PLAYER_STATE_STOPPED = "stopped"

	EVENT_STREAM_PRESENCE = "presence"

)
