package redis

import "fmt"

// profilesKey returns the HASH of profile id -> name (the user cache)
func profilesKey(prefix string) string {
	return fmt.Sprintf("%s:profiles", prefix)
}

// nameIndexKey returns the HASH of name -> profile id
func nameIndexKey(prefix string) string {
	return fmt.Sprintf("%s:idx:names", prefix)
}

// sessionsKey returns the SET of connected profile ids
func sessionsKey(prefix string) string {
	return fmt.Sprintf("%s:sessions", prefix)
}

// whitelistKey returns the HASH of whitelisted profile id -> name
func whitelistKey(prefix string) string {
	return fmt.Sprintf("%s:whitelist", prefix)
}

// whitelistChannel returns the pub/sub channel notified on every save
func whitelistChannel(prefix string) string {
	return fmt.Sprintf("%s:whitelist:changed", prefix)
}
