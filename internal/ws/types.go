package ws

const (
	// client - server
	MsgStart = "start"
	MsgMove  = "move"
	MsgReset = "reset"

	// server - client
	MsgState = "state"
	MsgError = "error"
)
