package access

type AccessState string

const (
	AccessFull    AccessState = "full"
	AccessTrial   AccessState = "trial"
	AccessLimited AccessState = "limited"
	AccessLocked  AccessState = "locked"
)
