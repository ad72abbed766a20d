package media

// AccessTier is the requester's resolved tier, supplied by the external
// auth/subscription system: anonymous < authenticated < subscriber < admin.
type AccessTier int

const (
	TierAnonymous AccessTier = iota
	TierAuthenticated
	TierSubscriber
	TierAdmin
)

// ParseTier maps the gateway's tier string onto an AccessTier.
// Unknown values resolve to anonymous.
func ParseTier(value string) AccessTier {
	switch value {
	case "authenticated":
		return TierAuthenticated
	case "subscriber":
		return TierSubscriber
	case "admin":
		return TierAdmin
	}
	return TierAnonymous
}

func (t AccessTier) String() string {
	switch t {
	case TierAuthenticated:
		return "authenticated"
	case TierSubscriber:
		return "subscriber"
	case TierAdmin:
		return "admin"
	}
	return "anonymous"
}

// Requester identifies the caller of a data-returning operation.
type Requester struct {
	UserID string
	Tier   AccessTier
}

// CanAccess decides whether a requester may read an item. Pure function,
// called before any operation that returns bytes, a locator, or metadata.
//
//   - public: always allowed
//   - authenticated: any non-anonymous tier
//   - restricted: subscriber tier or above, or the uploader
//   - private: the uploader, or an admin
func CanAccess(level AccessLevel, tier AccessTier, uploaderID, requesterID string) bool {
	switch level {
	case LevelPublic:
		return true
	case LevelAuthenticated:
		return tier >= TierAuthenticated
	case LevelRestricted:
		if tier >= TierSubscriber {
			return true
		}
		return requesterID != "" && requesterID == uploaderID
	case LevelPrivate:
		if tier >= TierAdmin {
			return true
		}
		return requesterID != "" && requesterID == uploaderID
	}
	return false
}
