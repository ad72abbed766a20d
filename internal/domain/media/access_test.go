package media_test

import (
	"testing"

	media "github.com/memberhub/media-api/internal/domain/media"
)

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name        string
		level       media.AccessLevel
		tier        media.AccessTier
		uploaderID  string
		requesterID string
		want        bool
	}{
		{
			name:  "public readable by anonymous",
			level: media.LevelPublic,
			tier:  media.TierAnonymous,
			want:  true,
		},
		{
			name:  "authenticated blocked for anonymous",
			level: media.LevelAuthenticated,
			tier:  media.TierAnonymous,
			want:  false,
		},
		{
			name:  "authenticated readable by authenticated",
			level: media.LevelAuthenticated,
			tier:  media.TierAuthenticated,
			want:  true,
		},
		{
			name:  "restricted blocked for authenticated non-uploader",
			level: media.LevelRestricted,
			tier:  media.TierAuthenticated,
			want:  false,
		},
		{
			name:        "restricted readable by its uploader below subscriber",
			level:       media.LevelRestricted,
			tier:        media.TierAuthenticated,
			uploaderID:  "user-a",
			requesterID: "user-a",
			want:        true,
		},
		{
			name:  "restricted readable by subscriber",
			level: media.LevelRestricted,
			tier:  media.TierSubscriber,
			want:  true,
		},
		{
			name:        "private blocked for subscriber non-uploader",
			level:       media.LevelPrivate,
			tier:        media.TierSubscriber,
			uploaderID:  "user-a",
			requesterID: "user-b",
			want:        false,
		},
		{
			name:        "private readable by its uploader",
			level:       media.LevelPrivate,
			tier:        media.TierAuthenticated,
			uploaderID:  "user-a",
			requesterID: "user-a",
			want:        true,
		},
		{
			name:        "private readable by admin",
			level:       media.LevelPrivate,
			tier:        media.TierAdmin,
			uploaderID:  "user-a",
			requesterID: "admin-1",
			want:        true,
		},
		{
			name:        "empty requester id never matches empty uploader",
			level:       media.LevelPrivate,
			tier:        media.TierAuthenticated,
			uploaderID:  "",
			requesterID: "",
			want:        false,
		},
		{
			name:  "unknown level denied",
			level: media.AccessLevel("secret"),
			tier:  media.TierAdmin,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := media.CanAccess(tt.level, tt.tier, tt.uploaderID, tt.requesterID)
			if got != tt.want {
				t.Errorf("CanAccess(%q, %v, %q, %q) = %v, want %v",
					tt.level, tt.tier, tt.uploaderID, tt.requesterID, got, tt.want)
			}
		})
	}
}

// Higher tiers must never lose a permission a lower tier has.
func TestCanAccessTierMonotonicity(t *testing.T) {
	levels := []media.AccessLevel{
		media.LevelPublic,
		media.LevelAuthenticated,
		media.LevelRestricted,
		media.LevelPrivate,
	}
	tiers := []media.AccessTier{
		media.TierAnonymous,
		media.TierAuthenticated,
		media.TierSubscriber,
		media.TierAdmin,
	}

	for _, level := range levels {
		prev := false
		for _, tier := range tiers {
			got := media.CanAccess(level, tier, "uploader", "someone-else")
			if prev && !got {
				t.Errorf("level %q: tier %v denied while a lower tier was allowed", level, tier)
			}
			prev = got
		}
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want media.AccessTier
	}{
		{"anonymous", media.TierAnonymous},
		{"authenticated", media.TierAuthenticated},
		{"subscriber", media.TierSubscriber},
		{"admin", media.TierAdmin},
		{"", media.TierAnonymous},
		{"superuser", media.TierAnonymous},
	}
	for _, tt := range tests {
		if got := media.ParseTier(tt.in); got != tt.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTierStringRoundTrip(t *testing.T) {
	for _, tier := range []media.AccessTier{
		media.TierAnonymous,
		media.TierAuthenticated,
		media.TierSubscriber,
		media.TierAdmin,
	} {
		if got := media.ParseTier(tier.String()); got != tier {
			t.Errorf("ParseTier(%q) = %v, want %v", tier.String(), got, tier)
		}
	}
}
