package access

func CapabilitiesFor(state AccessState, tier string) []string {
	if state == AccessLocked {
		return []string{}
	}

	if state == AccessTrial {
		return []string{"browse", "download_free", "download_premium"}
	}

	if state == AccessLimited {
		return []string{"browse", "download_free"}
	}

	// full
	switch tier {
	case "premium":
		return []string{"browse", "download_free", "download_premium"}
	default:
		return []string{"browse", "download_free"}
	}
}
