package proto

const (
	// ServiceName is the fully qualified name of the emojivoto voting service.
	ServiceName = "emojivoto.v1.VotingService"

	// VoteJoyMethod and VoteGhostMethod are the full method names used on the
	// wire. The service exposes one method per emoji; only these two are
	// consumed here.
	VoteJoyMethod   = "/" + ServiceName + "/VoteJoy"
	VoteGhostMethod = "/" + ServiceName + "/VoteGhost"
)
